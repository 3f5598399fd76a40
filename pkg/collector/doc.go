// Package collector stages located artifacts for publishing.
//
// # Overview
//
// Every operation takes a source path that may be empty (the locator did not
// find it) and returns Artifact records describing what happened. An empty
// source yields a skipped artifact and no staging output; an I/O failure
// yields a failed artifact and removes any partial output. Neither stops the
// run.
//
// # Staged Artifacts
//
// All paths are relative to the staging directory, which is resolved at run
// time under the OS temp directory:
//
//   - messages_archive.txt.gz: gzip stream of the primary log
//   - messages.txt: raw copy of the primary log
//   - kernels.txt: kernel image inventory, newest first
//   - grub/<file>: bootloader configuration files
//   - agent/waagent.log: platform agent log
//   - error_hits.txt: fatal-signature report for the primary log
//
// # System Info
//
// System parses os-release and the GRUB environment block into a SystemInfo
// value. Nothing is staged for it; the run manifest carries the result.
//
// # Usage
//
//	c := collector.New(afero.NewOsFs(), stagingDir)
//	archive := c.ArchiveLog(locs[locator.TargetMessages])
//	inventory, kernels := c.KernelInventory(locs[locator.TargetBoot])
//	info := c.System(locs[locator.TargetOSRelease], locs[locator.TargetBootloader])
package collector
