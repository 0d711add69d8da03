// Package testutil provides helpers shared by bulkmv's tests.
//
// Key components:
//   - FileTree, WriteTree and ReadTree: declarative file trees on any types.FS
//     and snapshots of real directories
//   - FaultFS: a types.FS wrapper that injects errors and counts mutations
//   - Terminal: in-memory operator input and diagnostic output
//   - FakeEditor: an editor that writes prepared names into the handoff file
//
// All test data should be defined inline, not in external files.
package testutil
