// Package config holds the run configuration of the investigator.
//
// Values are layered: built-in defaults (see pkg/defaults), then an optional
// YAML or JSON file, then command-line flags and their environment variables.
// Validate is called before any device is touched so that a bad locality or a
// missing credential fails fast.
//
// Example file:
//
//	account: diagstore
//	locality: global
//	devicePrefix: sdc
//	mounter: systemd
//	uploadRate: 5
package config
