// Package editor hands the old names of a batch to an external text editor
// and reads the edited names back.
//
// The exchange goes through a handoff file that is created fresh for every
// batch and removed when the batch ends, whatever the outcome.
package editor
