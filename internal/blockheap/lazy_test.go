package blockheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLazyHeap_PushAndPopBlock(t *testing.T) {
	h := NewLazyHeap[float64](5, 0.5)
	h.Push(0, 3.0)
	h.Push(1, 1.0)
	h.Push(2, 2.0)

	block := h.PopBlock(2)
	assert.Equal(t, []Entry[float64]{{Vertex: 1, Key: 1.0}, {Vertex: 2, Key: 2.0}}, block)
}

func TestLazyHeap_TieBreakByVertex(t *testing.T) {
	h := NewLazyHeap[float64](5, 0.5)
	h.Push(2, 1.0)
	h.Push(0, 1.0)
	h.Push(1, 1.0)

	block := h.PopBlock(3)
	assert.Equal(t, 0, block[0].Vertex)
	assert.Equal(t, 1, block[1].Vertex)
	assert.Equal(t, 2, block[2].Vertex)
}

func TestLazyHeap_DecreaseKey(t *testing.T) {
	h := NewLazyHeap[float64](5, 0.5)
	h.Push(0, 10.0)
	h.Push(0, 3.0)

	k, ok := h.MinKey()
	assert.True(t, ok)
	assert.Equal(t, 3.0, k)

	block := h.PopBlock(1)
	assert.Equal(t, []Entry[float64]{{Vertex: 0, Key: 3.0}}, block)
	assert.True(t, h.IsEmpty())
}

func TestLazyHeap_WorseKeyIsNoOp(t *testing.T) {
	h := NewLazyHeap[float64](5, 0.5)
	h.Push(0, 3.0)
	h.Push(0, 10.0)

	k, _ := h.MinKey()
	assert.Equal(t, 3.0, k)
}

func TestLazyHeap_StaleEntriesSkippedOnPop(t *testing.T) {
	h := NewLazyHeap[float64](5, 0.9)
	h.Push(0, 5.0)
	h.Push(0, 1.0)
	h.Push(0, 0.5)

	block := h.PopBlock(5)
	assert.Len(t, block, 1)
	assert.Equal(t, 0.5, block[0].Key)
}

func TestLazyHeap_EmptyHeap(t *testing.T) {
	h := NewLazyHeap[float64](5, 0.5)
	assert.True(t, h.IsEmpty())
	_, ok := h.MinKey()
	assert.False(t, ok)
	assert.Empty(t, h.PopBlock(3))
}

func TestLazyHeap_RebuildTriggeredByStaleFraction(t *testing.T) {
	h := NewLazyHeap[float64](5, 0.5)
	for i := 0; i < 10; i++ {
		h.Push(0, float64(10-i))
	}
	h.IsEmpty()
	assert.GreaterOrEqual(t, h.RebuildCount(), 1)
}

func TestLazyHeap_ResetReusesCapacity(t *testing.T) {
	h := NewLazyHeap[float64](5, 0.5)
	h.Push(0, 1.0)
	h.Push(1, 2.0)
	h.Reset(5)

	assert.True(t, h.IsEmpty())
	assert.Equal(t, 0, h.RebuildCount())
}

func TestLazyHeap_PopBlockMoreThanAvailable(t *testing.T) {
	h := NewLazyHeap[float64](5, 0.5)
	h.Push(0, 1.0)
	h.Push(1, 2.0)

	block := h.PopBlock(10)
	assert.Len(t, block, 2)
}

func TestLazyHeap_Float32Precision(t *testing.T) {
	h := NewLazyHeap[float32](3, 0.5)
	h.Push(0, float32(1.5))
	h.Push(1, float32(0.5))

	block := h.PopBlock(2)
	assert.Equal(t, float32(0.5), block[0].Key)
}
