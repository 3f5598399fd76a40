// Package kernel parses Linux kernel release strings as they appear in
// boot image names, e.g. "vmlinuz-5.15.0-1051-azure".
//
// A Release keeps the numeric Major.Minor.Patch components and preserves
// the distribution suffix (e.g. "-1051-azure", ".el8_7.x86_64") in Extras.
//
//	r, err := kernel.ParseImageName("vmlinuz-5.15.0-1051-azure")
//	// r.Major == 5, r.Minor == 15, r.Patch == 0, r.Extras == "-1051-azure"
package kernel
