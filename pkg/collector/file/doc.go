// Package file parses small line-oriented configuration files found on
// rescued disks, such as os-release and grubenv.
//
// Files are read through an afero.Fs, capped in size and checked for valid
// UTF-8 before being split into entries:
//
//	p := file.NewParser(fs, file.WithVTrimChars(`"'`), file.WithSkipEmptyValues(true))
//	release, err := p.GetMap("/mnt/sdc1/etc/os-release")
//	// release["PRETTY_NAME"] == "Ubuntu 22.04.4 LTS"
//
// Comment lines (starting with '#') and blank lines are skipped by default.
package file
