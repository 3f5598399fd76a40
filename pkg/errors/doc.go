// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeIO,
//	    "failed to create mount point",
//	    err,
//	    map[string]any{
//	        "device": "sdc1",
//	        "path":   "/mnt/sdc1",
//	    },
//	)
package errors
