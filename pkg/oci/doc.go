// Package oci implements the remote object store on top of OCI registries.
//
// A container maps to a repository and an object maps to a tag. Each object
// is a single-layer OCI 1.1 artifact manifest whose layer is the uploaded
// file. Creating a container pushes an empty marker manifest tagged
// "container" so the repository appears in the registry catalog; the marker
// is hidden from object listings.
//
// # Stores
//
//   - Registry: a remote registry addressed as <account>.<endpoint-suffix>,
//     authenticated with a static account/key credential
//   - Layout: OCI image-layout directories under a local root, one per
//     container, for offline collection
//
// # Usage
//
//	reg, err := oci.NewRegistry(oci.RegistryOptions{
//	    Account:   "diagstore",
//	    AccessKey: key,
//	    Locality:  "global",
//	})
//	if err != nil {
//	    return err
//	}
//	err = reg.Upload(ctx, "rescue-vm-files", "messages-gzip-20240101", "/tmp/investigator/messages_archive.txt.gz")
package oci
