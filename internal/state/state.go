// Package state implements the engine's reusable per-query buffers:
// distance, predecessor, and settled arrays sized for the largest graph
// a caller intends to query, reset in place between queries rather than
// reallocated.
package state

import (
	"math"

	"bmssp/internal/blockheap"
	"bmssp/internal/bmssp"
	"bmssp/internal/csr"
)

// State holds the distance, predecessor, and settled buffers for one
// SSSP query at a time, plus the heap used to drive the main loop. It
// is preallocated for up to NMax vertices and reused across queries via
// Prepare, eliminating per-query allocation in the steady state.
//
// State is not safe for concurrent use: a single query owns it
// exclusively for the duration of Run.
type State[W csr.Weight] struct {
	nMax int

	dist     []W
	pred     []int
	predEdge []int
	settled  []bool

	heap      blockheap.BlockHeap[W]
	variant   bmssp.HeapVariant
	blockSize int
}

// New preallocates a State for graphs with up to nMax vertices, using
// the given heap variant and block size.
func New[W csr.Weight](nMax int, variant bmssp.HeapVariant, blockSize int) *State[W] {
	if blockSize < 1 {
		blockSize = 1
	}
	s := &State[W]{
		nMax:      nMax,
		variant:   variant,
		blockSize: blockSize,
	}
	s.dist = make([]W, nMax)
	s.pred = make([]int, nMax)
	s.predEdge = make([]int, nMax)
	s.settled = make([]bool, nMax)
	s.heap = s.newHeap(nMax)
	return s
}

func (s *State[W]) newHeap(n int) blockheap.BlockHeap[W] {
	switch s.variant {
	case bmssp.HeapOrdered:
		return blockheap.NewOrderedHeap[W](n)
	default:
		return blockheap.NewLazyHeap[W](n, 0.5)
	}
}

// Prepare resets the state for a query over a graph with n vertices,
// n <= NMax. It does O(n) work and allocates only if n exceeds the
// capacity established at New.
func (s *State[W]) Prepare(n int) {
	if n > s.nMax {
		s.dist = make([]W, n)
		s.pred = make([]int, n)
		s.predEdge = make([]int, n)
		s.settled = make([]bool, n)
		s.nMax = n
	}

	var posInf W = W(math.Inf(1))
	for v := 0; v < n; v++ {
		s.dist[v] = posInf
		s.pred[v] = -1
		s.predEdge[v] = -1
		s.settled[v] = false
	}

	s.heap.Reset(n)
}

// Run executes the blocked-frontier engine against this state's buffers
// for a query over g from source, with the given weights and optional
// enabled mask. The caller must have already called Prepare(g.N). The
// returned slices are borrows into the state's buffers and are valid
// only until the next Prepare call.
func (s *State[W]) Run(g *csr.Graph, weights []W, enabled []bool, source int, returnPred bool) (dist []W, pred, predEdge []int) {
	n := g.N
	s.dist[source] = 0
	s.heap.Push(source, 0)

	bmssp.RunLoop(g, weights, enabled, s.blockSize, s.heap, s.dist[:n], s.pred[:n], s.predEdge[:n], s.settled[:n], returnPred)

	if returnPred {
		return s.dist[:n], s.pred[:n], s.predEdge[:n]
	}
	return s.dist[:n], nil, nil
}

// NMax reports the largest vertex count this state can currently serve
// without reallocating.
func (s *State[W]) NMax() int {
	return s.nMax
}

// heapStats mirrors the instrumentation counters LazyHeap exposes; heap
// variants that don't track them are reported as zero.
type heapStats interface {
	RebuildCount() int
	StaleCount() int
}

// HeapStats reports the backing heap's rebuild and stale-pop counters
// since the last Prepare, for feeding into metrics.
func (s *State[W]) HeapStats() (rebuilds, stales int) {
	if hs, ok := s.heap.(heapStats); ok {
		return hs.RebuildCount(), hs.StaleCount()
	}
	return 0, 0
}
