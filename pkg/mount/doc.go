// Package mount ensures candidate devices are mounted at deterministic paths.
//
// Each device gets <mount-root>/<device-id>. The directory is created when
// absent, and the mount service is invoked only when the path is not already
// a mount point, so running the manager twice is a no-op the second time.
// Concurrent requests for the same device share a single mount attempt.
//
// Mount failures are recorded on the returned MountPoint and logged; they are
// never fatal for the run. There is no rollback.
//
// Two Mounter implementations are provided:
//   - ExecMounter runs the mount(8) binary
//   - SystemdMounter starts a transient .mount unit over D-Bus
//
// Both read the mount table through gopsutil to answer IsMountPoint.
package mount
