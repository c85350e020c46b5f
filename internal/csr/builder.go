package csr

import (
	"fmt"
	"sort"

	"bmssp/pkg/apperror"
)

// DedupePolicy selects how the builder collapses parallel (u, v) entries
// discovered while sorting an edge list into CSR order.
type DedupePolicy int

const (
	// DedupeMinWeight retains the smallest-weighted occurrence of a
	// duplicate edge; when weights are absent, it retains the first.
	DedupeMinWeight DedupePolicy = iota
	// DedupeFirst retains the first occurrence in input order.
	DedupeFirst
	// DedupeLast retains the last occurrence in input order.
	DedupeLast
)

// rawEdge is one (u, v, w) triple as submitted to the builder, tagged with
// its original input position so DedupeFirst/DedupeLast can recover
// input-order ties after a stable sort by (u, v).
type rawEdge struct {
	u, v  int
	w     float64
	input int
}

// Builder accumulates an edge list and produces an immutable Graph plus a
// parallel weight array in CSR order. It collects every structural defect
// before failing, in the same style as the engine's CSR validation.
type Builder struct {
	n      int
	edges  []rawEdge
	policy DedupePolicy
}

// NewBuilder creates a Builder for a graph with n vertices.
func NewBuilder(n int, policy DedupePolicy) *Builder {
	return &Builder{n: n, policy: policy}
}

// Add appends one (u, v, w) edge to the builder's input.
func (b *Builder) Add(u, v int, w float64) {
	b.edges = append(b.edges, rawEdge{u: u, v: v, w: w, input: len(b.edges)})
}

// Build sorts the accumulated edges lexicographically by (u, v), collapses
// duplicates per the configured DedupePolicy, and emits the resulting CSR
// Graph along with a parallel weight slice in the same edge order.
func (b *Builder) Build() (*Graph, []float64, error) {
	ve := apperror.NewValidationErrors()

	for i, e := range b.edges {
		if e.u < 0 || e.u >= b.n {
			ve.AddErrorWithField(apperror.CodeInvalidVertex,
				fmt.Sprintf("edge %d references out-of-range source vertex %d", i, e.u),
				fmt.Sprintf("edges[%d].u", i))
		}
		if e.v < 0 || e.v >= b.n {
			ve.AddErrorWithField(apperror.CodeInvalidVertex,
				fmt.Sprintf("edge %d references out-of-range target vertex %d", i, e.v),
				fmt.Sprintf("edges[%d].v", i))
		}
	}
	if ve.HasErrors() {
		return nil, nil, ve
	}

	sorted := make([]rawEdge, len(b.edges))
	copy(sorted, b.edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].u != sorted[j].u {
			return sorted[i].u < sorted[j].u
		}
		return sorted[i].v < sorted[j].v
	})

	deduped := make([]rawEdge, 0, len(sorted))
	for i := 0; i < len(sorted); {
		j := i + 1
		best := sorted[i]
		for j < len(sorted) && sorted[j].u == best.u && sorted[j].v == best.v {
			best = b.resolve(best, sorted[j])
			j++
		}
		deduped = append(deduped, best)
		i = j
	}

	offsets := make([]int, b.n+1)
	for _, e := range deduped {
		offsets[e.u+1]++
	}
	for u := 0; u < b.n; u++ {
		offsets[u+1] += offsets[u]
	}

	neighbors := make([]int, len(deduped))
	weights := make([]float64, len(deduped))
	cursor := make([]int, b.n)
	copy(cursor, offsets[:b.n])
	for _, e := range deduped {
		idx := cursor[e.u]
		neighbors[idx] = e.v
		weights[idx] = e.w
		cursor[e.u]++
	}

	g, err := NewGraph(b.n, offsets, neighbors)
	if err != nil {
		return nil, nil, err
	}
	return g, weights, nil
}

// resolve picks the surviving edge between two (u, v)-equal candidates
// according to the builder's DedupePolicy. incumbent was seen first.
func (b *Builder) resolve(incumbent, candidate rawEdge) rawEdge {
	switch b.policy {
	case DedupeFirst:
		return incumbent
	case DedupeLast:
		return candidate
	case DedupeMinWeight:
		fallthrough
	default:
		if candidate.w < incumbent.w {
			return candidate
		}
		return incumbent
	}
}
