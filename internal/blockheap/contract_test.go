package blockheap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHeaps returns one instance of every BlockHeap variant, sized for n
// vertices, so a single test body can exercise both against the same
// sequence of operations.
func newHeaps(n int) map[string]BlockHeap[float64] {
	return map[string]BlockHeap[float64]{
		"lazy":    NewLazyHeap[float64](n, 0.5),
		"ordered": NewOrderedHeap[float64](n),
	}
}

func TestBlockHeap_VariantsAgree_FixedSequence(t *testing.T) {
	pushes := []struct {
		vertex int
		key    float64
	}{
		{3, 7.0}, {1, 2.0}, {4, 5.0}, {0, 2.0}, {2, 9.0}, {1, 1.5},
	}

	results := make(map[string][]Entry[float64])
	for name, h := range newHeaps(5) {
		for _, p := range pushes {
			h.Push(p.vertex, p.key)
		}
		results[name] = h.PopBlock(5)
	}

	require.Equal(t, results["lazy"], results["ordered"])
}

func TestBlockHeap_VariantsAgree_RandomizedSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		n := 10
		heaps := newHeaps(n)

		numPushes := 30
		pushSeq := make([]struct {
			vertex int
			key    float64
		}, numPushes)
		for i := range pushSeq {
			pushSeq[i].vertex = rng.Intn(n)
			pushSeq[i].key = rng.Float64() * 100
		}

		results := make(map[string][]Entry[float64])
		for name, h := range heaps {
			for _, p := range pushSeq {
				h.Push(p.vertex, p.key)
			}
			var got []Entry[float64]
			for !h.IsEmpty() {
				got = append(got, h.PopBlock(3)...)
			}
			results[name] = got
		}

		assert.Equal(t, results["lazy"], results["ordered"], "trial %d", trial)
	}
}

func TestBlockHeap_VariantsAgree_AfterReset(t *testing.T) {
	for name, h := range newHeaps(4) {
		h.Push(0, 1.0)
		h.Push(1, 2.0)
		h.Reset(4)
		assert.True(t, h.IsEmpty(), name)

		h.Push(3, 0.5)
		h.Push(2, 0.5)
		block := h.PopBlock(2)
		assert.Equal(t, []Entry[float64]{{Vertex: 2, Key: 0.5}, {Vertex: 3, Key: 0.5}}, block, name)
	}
}
