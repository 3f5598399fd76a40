// Package publisher uploads staged artifacts to a remote object store.
//
// The container is named after the host (short name, lower-cased, with "_"
// mapped to "-" and "." removed) plus "-files", and is created only when the
// store does not list it yet. Objects already present in the container are
// never uploaded again; because dated objects carry a UTC YYYYMMDD stamp, each
// artifact is uploaded at most once per day.
//
// Listing and uploading are not transactional. Two concurrent runs against the
// same host may both upload an object; that race is accepted.
package publisher
