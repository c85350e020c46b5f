package state

import (
	"sync"

	"bmssp/internal/bmssp"
	"bmssp/internal/csr"
)

// Pool provides sync.Pool-backed reuse of State instances across
// concurrent queries, each sized for up to nMax vertices. Acquire/
// Release discipline mirrors a single-resource-kind counterpart of a
// generic object pool: acquire before a query, release when done so the
// buffers can serve the next caller without reallocating.
//
// Pool is safe for concurrent use; the States it hands out are not —
// each acquired State must be owned by a single query at a time.
type Pool[W csr.Weight] struct {
	pool      sync.Pool
	nMax      int
	variant   bmssp.HeapVariant
	blockSize int
}

// NewPool creates a Pool whose States are preallocated for graphs with
// up to nMax vertices.
func NewPool[W csr.Weight](nMax int, variant bmssp.HeapVariant, blockSize int) *Pool[W] {
	p := &Pool[W]{nMax: nMax, variant: variant, blockSize: blockSize}
	p.pool.New = func() any {
		return New[W](p.nMax, p.variant, p.blockSize)
	}
	return p
}

// Acquire obtains a State from the pool, ready for Prepare.
func (p *Pool[W]) Acquire() *State[W] {
	return p.pool.Get().(*State[W])
}

// Release returns a State to the pool. The state must not be used again
// by the caller after this call. It is safe to pass nil.
func (p *Pool[W]) Release(s *State[W]) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}
