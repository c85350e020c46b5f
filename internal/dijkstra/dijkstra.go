// Package dijkstra implements the engine's reference oracle: classic
// label-setting single-source shortest paths over a CSR graph. Tests use
// it to certify the blocked-frontier engine's output; the public sssp
// entry points do not call it.
package dijkstra

import (
	"container/heap"
	"math"

	"bmssp/internal/csr"
)

// Result holds the distance vector and, when requested, the
// predecessor vectors produced by a run of Dijkstra.
type Result[W csr.Weight] struct {
	Dist     []W
	Pred     []int // -1 when a vertex has no predecessor (source or unreached)
	PredEdge []int // -1 when a vertex has no predecessor edge
}

// Run computes single-source shortest distances from source over g
// using weights and, if non-nil, the per-edge enabled mask. Predecessor
// tracking is populated only when returnPred is true; pred/predEdge
// slices in the result are nil otherwise. Caller must supply a valid
// (graph, weights, enabled, source) combination — validation happens
// one layer up, not here.
func Run[W csr.Weight](g *csr.Graph, weights []W, enabled []bool, source int, returnPred bool) *Result[W] {
	n := g.N
	dist := make([]W, n)
	var pred, predEdge []int
	if returnPred {
		pred = make([]int, n)
		predEdge = make([]int, n)
		for v := range pred {
			pred[v] = -1
			predEdge[v] = -1
		}
	}

	var posInf W = W(math.Inf(1))
	for v := range dist {
		dist[v] = posInf
	}
	dist[source] = 0

	pq := make(priorityQueue[W], 0, n)
	heap.Init(&pq)
	heap.Push(&pq, &pqItem[W]{vertex: source, key: 0})

	settled := make([]bool, n)

	for pq.Len() > 0 {
		top := heap.Pop(&pq).(*pqItem[W])
		u := top.vertex

		if settled[u] {
			continue
		}
		if top.key > dist[u] {
			continue
		}
		settled[u] = true

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
				heap.Push(&pq, &pqItem[W]{vertex: v, key: newDist})
			}
		}
	}

	return &Result[W]{Dist: dist, Pred: pred, PredEdge: predEdge}
}

// pqItem is one entry in the oracle's binary heap.
type pqItem[W csr.Weight] struct {
	vertex int
	key    W
}

// priorityQueue is a container/heap min-heap over pqItem, tie-broken by
// ascending vertex index for deterministic pop order.
type priorityQueue[W csr.Weight] []*pqItem[W]

func (pq priorityQueue[W]) Len() int { return len(pq) }

func (pq priorityQueue[W]) Less(i, j int) bool {
	if pq[i].key != pq[j].key {
		return pq[i].key < pq[j].key
	}
	return pq[i].vertex < pq[j].vertex
}

func (pq priorityQueue[W]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue[W]) Push(x any) {
	*pq = append(*pq, x.(*pqItem[W]))
}

func (pq *priorityQueue[W]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
