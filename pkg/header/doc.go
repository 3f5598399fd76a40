// Package header provides the common envelope written at the top of every
// document the investigator produces.
//
// A Header carries a Kind, an APIVersion and free-form Metadata:
//
//	h := header.New(
//		header.WithKind(header.KindRunManifest),
//		header.WithAPIVersion(header.APIVersion),
//		header.WithMetadata("host", "vm1"),
//	)
//
// Init stamps the creation time from the supplied clock and records the
// tool version, so manifests from different runs can be told apart.
package header
