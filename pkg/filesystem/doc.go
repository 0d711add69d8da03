// Package filesystem provides filesystem implementations for bulkmv.
//
// This package contains implementations of the types.FS interface, the
// standard OS filesystem and an afero-backed one used by tests and dry runs,
// plus the existence and identity probes the executor relies on.
package filesystem
