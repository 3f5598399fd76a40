// Package logscan searches a system log for known fatal-error signatures.
//
// Signatures are applied in declaration order. For every signature the file
// is reopened and read from the start, and every matching line becomes a Hit,
// so hits are ordered by signature first and line number second. A line that
// matches two signatures yields two hits.
//
// Lines go through an explicit lossy UTF-8 decode before matching: bytes that
// do not form valid UTF-8 are dropped rather than failing the scan.
package logscan
