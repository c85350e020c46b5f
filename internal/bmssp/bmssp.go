// Package bmssp implements the blocked-frontier single-source shortest
// path engine: Dijkstra's settled-once discipline, but the frontier is
// extracted in blocks of up to B vertices that share the current minimum
// tentative distance, so graphs where many vertices tie are settled and
// relaxed a group at a time rather than one vertex at a time.
package bmssp

import (
	"math"

	"bmssp/internal/blockheap"
	"bmssp/internal/csr"
)

// HeapVariant selects which BlockHeap implementation an Engine uses.
type HeapVariant int

const (
	// HeapLazy is the default: a version-counter lazy binary heap.
	HeapLazy HeapVariant = iota
	// HeapOrdered is the sorted-slice ordered-container variant.
	HeapOrdered
)

// BlockSize derives the block parameter B from the vertex count n,
// following ceil(log2(max(n, 2))), clamped to [minB, maxB].
func BlockSize(n, minB, maxB int) int {
	b := minB
	if n > 1 {
		b = ceilLog2(n)
	}
	if b < minB {
		b = minB
	}
	if b > maxB {
		b = maxB
	}
	return b
}

func ceilLog2(n int) int {
	b := 0
	v := 1
	for v < n {
		v <<= 1
		b++
	}
	if b < 1 {
		b = 1
	}
	return b
}

// Result holds the distance vector and, when requested, predecessor
// vectors produced by a run of the engine. RebuildCount and StaleCount
// mirror the backing heap's own instrumentation counters (zero for heap
// variants that don't track them) so callers can feed them to metrics
// without reaching into the heap implementation themselves.
type Result[W csr.Weight] struct {
	Dist         []W
	Pred         []int
	PredEdge     []int
	RebuildCount int
	StaleCount   int
}

// heapStats reports the number of rebuilds and stale pops a heap has
// recorded since its last Reset, for heap variants that track them.
type heapStats interface {
	RebuildCount() int
	StaleCount() int
}

func readHeapStats[W csr.Weight](h blockheap.BlockHeap[W]) (rebuilds, stales int) {
	if s, ok := h.(heapStats); ok {
		return s.RebuildCount(), s.StaleCount()
	}
	return 0, 0
}

// Engine runs the blocked-frontier procedure over a fixed block size
// and heap variant. It holds no per-query state; callers either create
// a fresh Engine per call or drive it through a reusable State (see
// package state) for allocation-free repeated queries.
type Engine[W csr.Weight] struct {
	BlockSize int
	Variant   HeapVariant
}

// NewEngine creates an Engine with block size B and heap variant.
func NewEngine[W csr.Weight](blockSize int, variant HeapVariant) *Engine[W] {
	if blockSize < 1 {
		blockSize = 1
	}
	return &Engine[W]{BlockSize: blockSize, Variant: variant}
}

func (e *Engine[W]) newHeap(n int) blockheap.BlockHeap[W] {
	switch e.Variant {
	case HeapOrdered:
		return blockheap.NewOrderedHeap[W](n)
	default:
		return blockheap.NewLazyHeap[W](n, 0.5)
	}
}

// Run executes the blocked-frontier engine from source over g, using
// weights and the optional enabled mask. Predecessor tracking is
// populated only when returnPred is true. Caller must supply a valid
// (graph, weights, enabled, source) combination; validation is a
// caller-side concern.
func (e *Engine[W]) Run(g *csr.Graph, weights []W, enabled []bool, source int, returnPred bool) *Result[W] {
	n := g.N
	h := e.newHeap(n)
	dist, pred, predEdge, settled := allocateBuffers[W](n, returnPred)

	dist[source] = 0
	h.Push(source, 0)

	RunLoop(g, weights, enabled, e.BlockSize, h, dist, pred, predEdge, settled, returnPred)

	rebuilds, stales := readHeapStats[W](h)
	return &Result[W]{Dist: dist, Pred: pred, PredEdge: predEdge, RebuildCount: rebuilds, StaleCount: stales}
}

// allocateBuffers creates a fresh set of per-query buffers sized for n
// vertices, all distances initialized to +Inf and predecessors to the
// invalid sentinel -1.
func allocateBuffers[W csr.Weight](n int, returnPred bool) (dist []W, pred, predEdge []int, settled []bool) {
	dist = make([]W, n)
	var posInf W = W(math.Inf(1))
	for v := range dist {
		dist[v] = posInf
	}
	settled = make([]bool, n)
	if returnPred {
		pred = make([]int, n)
		predEdge = make([]int, n)
		for v := range pred {
			pred[v] = -1
			predEdge[v] = -1
		}
	}
	return
}

// RunLoop drives the main block-extraction loop against the supplied
// buffers, which may be freshly allocated or borrowed from a reusable
// state. It is the single place the settled-once and relaxation
// semantics are implemented, shared by Engine.Run and the reusable
// state's Run.
func RunLoop[W csr.Weight](
	g *csr.Graph,
	weights []W,
	enabled []bool,
	blockSize int,
	h blockheap.BlockHeap[W],
	dist []W,
	pred, predEdge []int,
	settled []bool,
	returnPred bool,
) {
	for !h.IsEmpty() {
		// A block holds up to blockSize entries sharing the current minimum
		// key. Only those are final: an entry with a larger key could still
		// be improved through a member of this block.
		block := h.PopBlock(1)
		for len(block) < blockSize {
			if k, ok := h.MinKey(); !ok || k != block[0].Key {
				break
			}
			block = append(block, h.PopBlock(1)...)
		}

		for _, entry := range block {
			u := entry.Vertex
			if entry.Key > dist[u] {
				// Stale: a better key already settled this vertex in an
				// earlier block.
				continue
			}
			settled[u] = true
		}

		for _, entry := range block {
			u := entry.Vertex
			if !settled[u] || entry.Key > dist[u] {
				continue
			}

			lo, hi := g.OutEdges(u)
			for e := lo; e < hi; e++ {
				if enabled != nil && !enabled[e] {
					continue
				}
				v := g.Neighbors[e]
				if settled[v] {
					continue
				}
				newDist := dist[u] + weights[e]
				if newDist < dist[v] {
					dist[v] = newDist
					if returnPred {
						pred[v] = u
						predEdge[v] = e
					}
					h.Push(v, newDist)
				}
			}
		}
	}
}
