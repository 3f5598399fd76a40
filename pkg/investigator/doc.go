// Package investigator drives a single collection run on a host.
//
// The pipeline is strictly sequential:
//
//  1. scan the device namespace for candidate disks
//  2. ensure every candidate is mounted at its deterministic mount point
//  3. locate the system log, boot directory, bootloader directory and agent log
//  4. stage archives and copies, the kernel inventory and the error-hit report
//  5. write the run manifest and publish everything to the host's container
//
// Only device discovery, context cancellation and publish failures end a run
// with an error. Mount, locate and staging problems are recorded in the
// RunManifest and the run continues with what it has.
//
// Usage:
//
//	inv, err := investigator.FromConfig(cfg, version)
//	if err != nil {
//		return err
//	}
//	manifest, err := inv.Run(ctx)
//
// Run metrics are kept in a private Prometheus registry and, when MetricsFile
// is set, written in text exposition format for the node exporter textfile
// collector.
package investigator
