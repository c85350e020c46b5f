package bmssp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmssp/internal/csr"
	"bmssp/internal/dijkstra"
)

func TestParallelEngine_MatchesSequentialEngine(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	for trial := 0; trial < 20; trial++ {
		n := 8 + rng.Intn(30)
		b := csr.NewBuilder(n, csr.DedupeMinWeight)
		for i := 0; i < n*4; i++ {
			b.Add(rng.Intn(n), rng.Intn(n), rng.Float64()*10)
		}
		g, weights, err := b.Build()
		require.NoError(t, err)

		source := rng.Intn(n)
		blockSize := BlockSize(n, 1, 4096)

		seq := NewEngine[float64](blockSize, HeapLazy).Run(g, weights, nil, source, true)
		par := NewParallelEngine[float64](blockSize, HeapLazy, 4).Run(g, weights, nil, source, true)

		for v := 0; v < n; v++ {
			assert.InDelta(t, float64(seq.Dist[v]), float64(par.Dist[v]), 1e-9, "trial=%d vertex=%d", trial, v)
		}
	}
}

func TestParallelEngine_OracleParity(t *testing.T) {
	b := csr.NewBuilder(6, csr.DedupeMinWeight)
	b.Add(0, 1, 1.0)
	b.Add(0, 2, 4.0)
	b.Add(1, 2, 1.0)
	b.Add(1, 3, 5.0)
	b.Add(2, 3, 1.0)
	b.Add(3, 4, 1.0)
	b.Add(4, 5, 1.0)
	g, w, err := b.Build()
	require.NoError(t, err)

	oracle := dijkstra.Run(g, w, nil, 0, false)
	par := NewParallelEngine[float64](2, HeapLazy, 4).Run(g, w, nil, 0, false)

	for v := range oracle.Dist {
		assert.InDelta(t, float64(oracle.Dist[v]), float64(par.Dist[v]), 1e-9, "vertex=%d", v)
	}
}

func TestParallelEngine_DefaultsWorkerCountFromNumCPU(t *testing.T) {
	e := NewParallelEngine[float64](4, HeapLazy, 0)
	assert.Greater(t, e.NumWorkers, 0)
}

func TestParallelEngine_DisabledMaskReroutes(t *testing.T) {
	b := csr.NewBuilder(4, csr.DedupeMinWeight)
	b.Add(0, 1, 1.0)
	b.Add(1, 2, 1.0)
	b.Add(0, 3, 1.0)
	b.Add(3, 2, 5.0)
	g, w, err := b.Build()
	require.NoError(t, err)

	enabled := make([]bool, g.EdgeCount())
	for i := range enabled {
		enabled[i] = true
	}
	lo, _ := g.OutEdges(1)
	enabled[lo] = false

	par := NewParallelEngine[float64](4, HeapLazy, 4).Run(g, w, enabled, 0, false)
	assert.Equal(t, 6.0, par.Dist[2])
}
