// Package types defines the core types and interfaces used throughout bulkmv.
// This includes the rename data model (PathID, RenamePair, Outcome) and the
// FS interface every filesystem-touching component is written against.
package types
