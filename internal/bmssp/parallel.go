package bmssp

import (
	"runtime"
	"sync"

	"bmssp/internal/blockheap"
	"bmssp/internal/csr"
)

// shardCount bounds the number of per-vertex locks used by the parallel
// relaxation phase; vertices hash onto shards by index modulo this
// count, capping lock memory independent of graph size.
const shardCount = 256

// ParallelEngine runs the blocked-frontier procedure with the
// relaxation phase of each block fanned out across a bounded worker
// pool. Each worker improves dist[v] and pushes decrease-keys under a
// per-vertex-shard mutex; the block boundary is a hard barrier, so no
// worker begins relaxing block i+1 until every worker has finished
// block i. The settled-once invariant is unaffected: workers never
// touch a vertex already marked settled within the current block pass.
type ParallelEngine[W csr.Weight] struct {
	BlockSize  int
	Variant    HeapVariant
	NumWorkers int
}

// NewParallelEngine creates a ParallelEngine with the given block size,
// heap variant, and worker count. A non-positive worker count defaults
// to runtime.NumCPU().
func NewParallelEngine[W csr.Weight](blockSize int, variant HeapVariant, numWorkers int) *ParallelEngine[W] {
	if blockSize < 1 {
		blockSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &ParallelEngine[W]{BlockSize: blockSize, Variant: variant, NumWorkers: numWorkers}
}

func (e *ParallelEngine[W]) newHeap(n int) blockheap.BlockHeap[W] {
	switch e.Variant {
	case HeapOrdered:
		return blockheap.NewOrderedHeap[W](n)
	default:
		return blockheap.NewLazyHeap[W](n, 0.5)
	}
}

// Run executes the parallel-relaxation variant of the engine. Output is
// identical, up to floating-point summation order within a block's
// concurrent relaxation, to the sequential Engine.Run; the settled
// distances themselves do not depend on relaxation order because each
// out-edge contributes independently to a candidate distance for its
// target, and only the minimum candidate survives.
func (e *ParallelEngine[W]) Run(g *csr.Graph, weights []W, enabled []bool, source int, returnPred bool) *Result[W] {
	n := g.N
	h := e.newHeap(n)
	dist, pred, predEdge, settled := allocateBuffers[W](n, returnPred)

	dist[source] = 0
	h.Push(source, 0)

	shards := make([]sync.Mutex, shardCount)
	var heapMu sync.Mutex

	for !h.IsEmpty() {
		// Same block rule as RunLoop: up to BlockSize entries sharing the
		// current minimum key.
		block := h.PopBlock(1)
		for len(block) < e.BlockSize {
			if k, ok := h.MinKey(); !ok || k != block[0].Key {
				break
			}
			block = append(block, h.PopBlock(1)...)
		}

		live := block[:0:0]
		for _, entry := range block {
			u := entry.Vertex
			if entry.Key > dist[u] {
				continue
			}
			settled[u] = true
			live = append(live, entry)
		}

		e.relaxBlockParallel(g, weights, enabled, live, h, dist, pred, predEdge, settled, returnPred, shards, &heapMu)
	}

	rebuilds, stales := readHeapStats[W](h)
	return &Result[W]{Dist: dist, Pred: pred, PredEdge: predEdge, RebuildCount: rebuilds, StaleCount: stales}
}

// relaxBlockParallel fans the relaxation of one settled block across a
// bounded worker pool and blocks until every worker has committed,
// enforcing the block boundary as a synchronization barrier.
func (e *ParallelEngine[W]) relaxBlockParallel(
	g *csr.Graph,
	weights []W,
	enabled []bool,
	live []blockheap.Entry[W],
	h blockheap.BlockHeap[W],
	dist []W,
	pred, predEdge []int,
	settled []bool,
	returnPred bool,
	shards []sync.Mutex,
	heapMu *sync.Mutex,
) {
	if len(live) == 0 {
		return
	}

	sem := make(chan struct{}, e.NumWorkers)
	var wg sync.WaitGroup

	for _, entry := range live {
		u := entry.Vertex
		wg.Add(1)
		sem <- struct{}{}
		go func(u int) {
			defer wg.Done()
			defer func() { <-sem }()

			lo, hi := g.OutEdges(u)
			for edge := lo; edge < hi; edge++ {
				if enabled != nil && !enabled[edge] {
					continue
				}
				v := g.Neighbors[edge]
				if settled[v] {
					continue
				}
				candidate := dist[u] + weights[edge]

				shard := &shards[v%len(shards)]
				shard.Lock()
				if candidate < dist[v] {
					dist[v] = candidate
					if returnPred {
						pred[v] = u
						predEdge[v] = edge
					}
					heapMu.Lock()
					h.Push(v, candidate)
					heapMu.Unlock()
				}
				shard.Unlock()
			}
		}(u)
	}

	wg.Wait()
}
