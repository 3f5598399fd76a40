// Package serializer encodes investigator output (run manifests, device
// listings, error hit summaries) and decodes configuration files.
//
// Three formats are supported for writing:
//   - JSON: indented, machine readable
//   - YAML: the format of the run manifest and the config file
//   - Table: flattened FIELD/VALUE rows for terminals
//
// Writers and readers operate on an afero.Fs so the staging area can be
// backed by memory in tests:
//
//	w, err := serializer.NewFileWriter(fs, serializer.FormatYAML, "/tmp/investigator/manifest.yaml")
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	err = w.Serialize(ctx, manifest)
//
// Reading picks the format from the file extension:
//
//	cfg, err := serializer.FromFile[config.Config](fs, "/etc/investigator.yaml")
package serializer
