// Package executor provides the rename execution engine for bulkmv.
//
// The executor walks a scheduled batch strictly in order, one rename at a
// time. Before each rename it checks the destination: an occupied
// destination that is not the source itself is recorded as a collision and
// skipped. Every pair is attempted exactly once and no failure stops the
// batch; failures and successes are collected into a types.Outcome.
package executor
