// Package cli implements the command-line interface of the investigator tool.
//
// # Commands
//
// collect - Mount attached disks, stage diagnostics and publish them:
//
//	investigator collect --account diagstore --access-key KEY --locality global [--verbose]
//
// Discovers candidate devices (sdc1, sdc2, ...), mounts each under /mnt,
// stages the system log (gzip and raw), the kernel inventory, bootloader
// configuration, the platform agent log and an error-hit report, then uploads
// everything not already present to the host's container. With --store-dir
// the results are written to local OCI layouts instead of a registry.
//
// devices - List candidate devices without mounting anything:
//
//	investigator devices [--device-prefix sdc] [--format yaml|json|table]
//
// scan - Scan a local log file for fatal-error signatures:
//
//	investigator scan /var/log/messages [--format yaml|json|table]
//
// # Global Flags
//
//	--log-level    Log level (debug, info, warn, error); overrides --verbose
//	--verbose      Show informational logs
//	--version, -v  Show version information
//	--config       YAML or JSON config file
//
// Credentials may come from the INVESTIGATOR_ACCOUNT and
// INVESTIGATOR_ACCESS_KEY environment variables.
package cli
