package csr

import (
	"fmt"

	"bmssp/pkg/apperror"
)

// Graph is the engine's immutable compressed adjacency representation.
// For vertex u, its out-edges occupy Neighbors[Offsets[u]:Offsets[u+1]]
// in a fixed order established at construction. Edge identity is the
// index into Neighbors; that same index addresses the weight and enabled
// arrays supplied at query time.
type Graph struct {
	N         int
	Offsets   []int
	Neighbors []int
}

// NewGraph constructs a Graph from pre-built CSR arrays, checking only the
// structural invariants that do not depend on a particular query's weight
// or enabled-mask arrays (those are checked by Validate on every query).
func NewGraph(n int, offsets, neighbors []int) (*Graph, error) {
	if n <= 0 {
		return nil, apperror.ErrEmptyGraph
	}
	if len(offsets) != n+1 {
		return nil, apperror.New(apperror.CodeShapeMismatch,
			fmt.Sprintf("offsets length must be n+1 (%d), got %d", n+1, len(offsets)))
	}
	if offsets[0] != 0 {
		return nil, apperror.New(apperror.CodeShapeMismatch, "offsets[0] must be 0")
	}
	for i := 1; i <= n; i++ {
		if offsets[i] < offsets[i-1] {
			return nil, apperror.New(apperror.CodeShapeMismatch, "offsets must be monotonically non-decreasing").
				WithField(fmt.Sprintf("offsets[%d]", i))
		}
	}
	if offsets[n] != len(neighbors) {
		return nil, apperror.New(apperror.CodeShapeMismatch,
			fmt.Sprintf("offsets[n] must equal len(neighbors) (%d), got %d", len(neighbors), offsets[n]))
	}
	for e, v := range neighbors {
		if v < 0 || v >= n {
			return nil, apperror.New(apperror.CodeInvalidVertex,
				fmt.Sprintf("neighbor %d out of range [0,%d)", v, n)).
				WithField(fmt.Sprintf("neighbors[%d]", e))
		}
	}

	return &Graph{N: n, Offsets: offsets, Neighbors: neighbors}, nil
}

// OutEdges returns the half-open range of edge indices [lo, hi) for
// vertex u's out-edges, in the fixed order established at construction.
func (g *Graph) OutEdges(u int) (lo, hi int) {
	return g.Offsets[u], g.Offsets[u+1]
}

// Degree returns the out-degree of vertex u.
func (g *Graph) Degree(u int) int {
	return g.Offsets[u+1] - g.Offsets[u]
}

// EdgeCount returns m, the total number of directed edges.
func (g *Graph) EdgeCount() int {
	return len(g.Neighbors)
}
