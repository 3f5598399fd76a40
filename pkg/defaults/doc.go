// Package defaults provides centralized configuration constants for the investigator.
//
// This package defines timeout values, well-known host paths, and naming
// defaults used across the codebase. Centralizing these values keeps the
// pipeline components and the CLI consistent.
//
// # Categories
//
//   - Mount timeouts: For the external mount service
//   - Remote store timeouts: For registry calls made while publishing
//   - HTTP client timeouts: For the transport used by the registry client
//   - Paths and names: Device namespace, mount root, staging file names
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.MountTimeout)
//	defer cancel()
package defaults
