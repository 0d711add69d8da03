// Package builder turns a selection of absolute paths into the rename pairs
// the scheduler consumes.
//
// Sources are reduced to paths relative to their deepest common ancestor.
// Those relative paths are what the operator edits, and the edited list is
// paired back with the originals one to one.
package builder
