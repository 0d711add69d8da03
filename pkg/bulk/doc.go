// Package bulk runs one batch rename end to end.
//
// A batch relativizes the selected files, lets the operator edit their names,
// orders the renames so chains do not overwrite each other, asks for
// confirmation, renames while the watch subsystem is held off, announces
// what moved and finally reports what could not be renamed.
//
// Only global preconditions are returned as errors: no editor, a handoff
// file that cannot be written or read, a name count that does not match,
// and prompt I/O failures. Per-file failures are part of the Result.
package bulk
