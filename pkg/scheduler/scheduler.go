package scheduler

import (
	"slices"

	"github.com/arthur-debert/bulkmv/pkg/types"
)

// graph holds one node per input pair, addressed by input position.
type graph struct {
	pairs    []types.RenamePair
	bySource map[types.PathID][]int
	incoming []bool
	pending  []bool
	left     int
}

func newGraph(pairs []types.RenamePair) *graph {
	g := &graph{
		pairs:    pairs,
		bySource: make(map[types.PathID][]int, len(pairs)),
		incoming: make([]bool, len(pairs)),
		pending:  make([]bool, len(pairs)),
		left:     len(pairs),
	}
	for i, p := range pairs {
		g.bySource[p.Old] = append(g.bySource[p.Old], i)
		g.pending[i] = true
	}
	for _, p := range pairs {
		for _, i := range g.bySource[p.New] {
			g.incoming[i] = true
		}
	}
	return g
}

// ready returns the pending nodes without an incoming edge, latest input
// position first.
func (g *graph) ready() []int {
	var out []int
	for i := len(g.pairs) - 1; i >= 0; i-- {
		if g.pending[i] && !g.incoming[i] {
			out = append(out, i)
		}
	}
	return out
}

// resolve removes node i and clears the incoming flag of whatever it targets.
func (g *graph) resolve(i int) {
	g.pending[i] = false
	g.left--
	for _, j := range g.bySource[g.pairs[i].New] {
		if g.pending[j] {
			g.incoming[j] = false
		}
	}
}

// remaining returns the unresolved pairs in input order.
func (g *graph) remaining() []types.RenamePair {
	out := make([]types.RenamePair, 0, g.left)
	for i, p := range g.pairs {
		if g.pending[i] {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns pairs in a filesystem-safe execution order. It never fails:
// if the pairs contain a rename cycle, the already resolved pairs come first
// and the cyclic remainder follows in input order. Identical input always
// yields identical output.
func Sort(pairs []types.RenamePair) []types.RenamePair {
	g := newGraph(pairs)
	resolved := make([]types.RenamePair, 0, len(pairs))

	for g.left > 0 {
		next := g.ready()
		if len(next) == 0 {
			slices.Reverse(resolved)
			return append(resolved, g.remaining()...)
		}

		for _, i := range next {
			g.resolve(i)
			resolved = append(resolved, g.pairs[i])
		}
	}

	slices.Reverse(resolved)
	return resolved
}

// HasCycle reports whether Sort would have to fall back to input order for
// some of the pairs.
func HasCycle(pairs []types.RenamePair) bool {
	g := newGraph(pairs)
	for g.left > 0 {
		next := g.ready()
		if len(next) == 0 {
			return true
		}
		for _, i := range next {
			g.resolve(i)
		}
	}
	return false
}
