// Package scheduler orders a batch of renames so that no rename lands on a
// path that another rename in the batch still has to vacate.
//
// The pairs form an implicit dependency graph: (o1, n1) must wait for (o2, n2)
// whenever n1 == o2. Sort resolves that graph with a reverse Kahn pass. Pairs
// whose source nobody targets are resolved first and executed last; reversing
// the resolution order yields the execution order. When a cycle remains,
// the unresolved pairs are appended in input order and the executor's
// collision check becomes the safety net.
package scheduler
