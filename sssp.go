// Package sssp is the engine's public surface: single-source shortest
// path queries over a fixed compressed-adjacency graph against
// per-query weight vectors and edge-availability masks.
//
// A query validates its input synchronously and fails closed — no
// partial result is ever returned. The engine is generic over the
// weight's floating-point precision; callers select single or double
// precision by the type of the weight slice they pass in.
package sssp

import (
	"sync"
	"time"

	"bmssp/internal/bmssp"
	"bmssp/internal/csr"
	"bmssp/internal/state"
	"bmssp/pkg/apperror"
	"bmssp/pkg/metrics"
)

// engineLabel names the engine variant a query ran on, for the "engine"
// label on every metric recorded around Query and QueryWithState.
func engineLabel(parallel bool) string {
	if parallel {
		return "parallel"
	}
	return "sequential"
}

var (
	queryTracker     *metrics.QueryTracker
	queryTrackerOnce sync.Once
)

// tracker returns the package-level in-flight query tracker, initializing
// it against the default metrics container on first use.
func tracker() *metrics.QueryTracker {
	queryTrackerOnce.Do(func() {
		queryTracker = metrics.NewQueryTracker(metrics.Get().QueriesInFlight)
	})
	return queryTracker
}

// Graph is the CSR graph view queries run against. It is re-exported
// from internal/csr so callers never need to import an internal
// package to build one.
type Graph = csr.Graph

// NewGraph constructs a Graph from pre-built CSR arrays.
func NewGraph(n int, offsets, neighbors []int) (*Graph, error) {
	return csr.NewGraph(n, offsets, neighbors)
}

// DedupePolicy selects how Builder collapses parallel edges.
type DedupePolicy = csr.DedupePolicy

const (
	DedupeMinWeight = csr.DedupeMinWeight
	DedupeFirst     = csr.DedupeFirst
	DedupeLast      = csr.DedupeLast
)

// Builder accumulates an edge list and produces a Graph plus a parallel
// weight array in CSR order.
type Builder = csr.Builder

// NewBuilder creates a Builder for a graph with n vertices.
func NewBuilder(n int, policy DedupePolicy) *Builder {
	return csr.NewBuilder(n, policy)
}

// HeapVariant selects which BlockHeap implementation drives a query's
// main loop. The two variants are required to agree on every output;
// the choice affects only performance characteristics.
type HeapVariant = bmssp.HeapVariant

const (
	HeapLazy    = bmssp.HeapLazy
	HeapOrdered = bmssp.HeapOrdered
)

// Options controls how a query is executed.
type Options struct {
	// ReturnPredecessors requests the predecessor and predecessor-edge
	// vectors alongside distances. Leaving this false skips their
	// allocation and bookkeeping entirely.
	ReturnPredecessors bool

	// HeapVariant selects the BlockHeap implementation. Zero value is
	// HeapLazy, the default.
	HeapVariant HeapVariant

	// BlockSize overrides the engine's derived block size. Zero means
	// "derive from n" via bmssp.BlockSize with the configured floor and
	// ceiling.
	BlockSize int

	// BlockSizeMin and BlockSizeMax bound the derived block size when
	// BlockSize is zero. Zero values fall back to 1 and 4096.
	BlockSizeMin int
	BlockSizeMax int

	// Parallel enables the parallel-relaxation mode, fanning each
	// block's relaxation phase across a bounded worker pool.
	Parallel bool

	// Workers bounds the parallel worker pool size. Zero means
	// runtime.NumCPU().
	Workers int
}

// Result is a query's output: a distance array and, if requested,
// predecessor and predecessor-edge arrays. Unreachable vertices carry
// +Inf in Dist and -1 in Pred/PredEdge.
type Result[W csr.Weight] struct {
	Dist     []W
	Pred     []int
	PredEdge []int
}

func (o Options) resolveBlockSize(n int) int {
	if o.BlockSize > 0 {
		return o.BlockSize
	}
	minB, maxB := o.BlockSizeMin, o.BlockSizeMax
	if minB <= 0 {
		minB = 1
	}
	if maxB <= 0 {
		maxB = 4096
	}
	return bmssp.BlockSize(n, minB, maxB)
}

// Query runs a single SSSP query over g from source, using weights and
// the optional enabled mask, allocating fresh buffers for this call.
// Repeated queries against the same graph should prefer QueryWithState
// to amortize that allocation.
func Query[W csr.Weight](g *Graph, weights []W, enabled []bool, source int, opts Options) (*Result[W], error) {
	m := metrics.Get()
	engine := engineLabel(opts.Parallel)
	tracker().Start(engine)
	defer tracker().End(engine)
	start := time.Now()

	if err := validate(g, weights, enabled, source); err != nil {
		m.RecordQuery(engine, false, time.Since(start))
		return nil, err
	}

	blockSize := opts.resolveBlockSize(g.N)
	m.RecordBlockSize(engine, blockSize)
	m.RecordGraphSize(engine, g.N, len(g.Neighbors))

	var res *bmssp.Result[W]
	if opts.Parallel {
		eng := bmssp.NewParallelEngine[W](blockSize, opts.HeapVariant, opts.Workers)
		res = eng.Run(g, weights, enabled, source, opts.ReturnPredecessors)
	} else {
		eng := bmssp.NewEngine[W](blockSize, opts.HeapVariant)
		res = eng.Run(g, weights, enabled, source, opts.ReturnPredecessors)
	}

	recordHeapStats(m, engine, res.RebuildCount, res.StaleCount)
	m.RecordQuery(engine, true, time.Since(start))

	return &Result[W]{Dist: res.Dist, Pred: res.Pred, PredEdge: res.PredEdge}, nil
}

// recordHeapStats replays a heap's rebuild and stale-pop counters into
// their respective metrics, one increment per occurrence.
func recordHeapStats(m *metrics.Metrics, engine string, rebuilds, stales int) {
	for i := 0; i < rebuilds; i++ {
		m.RecordHeapRebuild(engine)
	}
	for i := 0; i < stales; i++ {
		m.RecordStalePop(engine)
	}
}

// State is a reusable set of query buffers, amortizing allocation
// across repeated queries against graphs of up to a fixed vertex count.
type State[W csr.Weight] = state.State[W]

// NewState preallocates a State for graphs with up to nMax vertices.
func NewState[W csr.Weight](nMax int, opts Options) *State[W] {
	blockSize := opts.resolveBlockSize(nMax)
	return state.New[W](nMax, opts.HeapVariant, blockSize)
}

// QueryWithState runs a query using a pre-allocated State, avoiding
// per-call allocation. The caller must not use s concurrently with
// another query, and the returned slices are borrows valid only until
// the state's next use.
func QueryWithState[W csr.Weight](s *State[W], g *Graph, weights []W, enabled []bool, source int, returnPred bool) (*Result[W], error) {
	m := metrics.Get()
	const engine = "stateful"
	tracker().Start(engine)
	defer tracker().End(engine)
	start := time.Now()

	if err := validate(g, weights, enabled, source); err != nil {
		m.RecordQuery(engine, false, time.Since(start))
		return nil, err
	}

	m.RecordGraphSize(engine, g.N, len(g.Neighbors))

	s.Prepare(g.N)
	dist, pred, predEdge := s.Run(g, weights, enabled, source, returnPred)

	rebuilds, stales := s.HeapStats()
	recordHeapStats(m, engine, rebuilds, stales)
	m.RecordQuery(engine, true, time.Since(start))

	return &Result[W]{Dist: dist, Pred: pred, PredEdge: predEdge}, nil
}

// validate runs the engine's structural and numeric preconditions and
// returns the first collected error set as a single error value. No
// reusable state is touched until validation has fully passed.
func validate[W csr.Weight](g *Graph, weights []W, enabled []bool, source int) error {
	ve := csr.Validate(g, weights, enabled, source)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Errors re-exported from apperror so callers can inspect failure codes
// without importing an internal package.
var (
	ErrEmptyGraph    = apperror.ErrEmptyGraph
	ErrInvalidSource = apperror.ErrInvalidSource
)

// ErrorCode re-exports apperror.ErrorCode for callers inspecting Query
// failures.
type ErrorCode = apperror.ErrorCode

const (
	CodeInvalidVertex              = apperror.CodeInvalidVertex
	CodeInvalidSource              = apperror.CodeInvalidSource
	CodeShapeMismatch              = apperror.CodeShapeMismatch
	CodeNegativeWeight             = apperror.CodeNegativeWeight
	CodeNonFiniteWeight            = apperror.CodeNonFiniteWeight
	CodeEmptyGraph                 = apperror.CodeEmptyGraph
	CodeInternalInvariantViolation = apperror.CodeInternalInvariantViolation
)
