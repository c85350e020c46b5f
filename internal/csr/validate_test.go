package csr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmssp/pkg/apperror"
)

func mustGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(3, []int{0, 2, 3, 3}, []int{1, 2, 2})
	require.NoError(t, err)
	return g
}

func TestValidate_Valid(t *testing.T) {
	g := mustGraph(t)
	ve := Validate(g, []float64{1.0, 2.0, 3.0}, nil, 0)
	assert.True(t, ve.IsValid())
}

func TestValidate_WeightsShapeMismatch(t *testing.T) {
	g := mustGraph(t)
	ve := Validate(g, []float64{1.0}, nil, 0)
	require.True(t, ve.HasErrors())
	assert.Equal(t, apperror.CodeShapeMismatch, ve.Errors[0].Code)
}

func TestValidate_NegativeWeight(t *testing.T) {
	g := mustGraph(t)
	ve := Validate(g, []float64{1.0, -2.0, 3.0}, nil, 0)
	require.True(t, ve.HasErrors())
	assert.Equal(t, apperror.CodeNegativeWeight, ve.Errors[0].Code)
}

func TestValidate_NonFiniteWeight(t *testing.T) {
	g := mustGraph(t)
	ve := Validate(g, []float64{1.0, math.NaN(), 3.0}, nil, 0)
	require.True(t, ve.HasErrors())
	assert.Equal(t, apperror.CodeNonFiniteWeight, ve.Errors[0].Code)

	ve = Validate(g, []float64{1.0, math.Inf(1), 3.0}, nil, 0)
	require.True(t, ve.HasErrors())
	assert.Equal(t, apperror.CodeNonFiniteWeight, ve.Errors[0].Code)
}

func TestValidate_EnabledShapeMismatch(t *testing.T) {
	g := mustGraph(t)
	ve := Validate(g, []float64{1.0, 2.0, 3.0}, []bool{true, false}, 0)
	require.True(t, ve.HasErrors())
	assert.Equal(t, apperror.CodeShapeMismatch, ve.Errors[0].Code)
}

func TestValidate_InvalidSource(t *testing.T) {
	g := mustGraph(t)
	ve := Validate(g, []float64{1.0, 2.0, 3.0}, nil, 99)
	require.True(t, ve.HasErrors())
	assert.Equal(t, apperror.CodeInvalidSource, ve.Errors[len(ve.Errors)-1].Code)
}

func TestValidate_CollectsAllDefects(t *testing.T) {
	g := mustGraph(t)
	ve := Validate(g, []float64{-1.0}, []bool{true}, -1)
	assert.GreaterOrEqual(t, len(ve.Errors), 3)
}

func TestValidate_EmptyGraph(t *testing.T) {
	ve := Validate[float64](nil, nil, nil, 0)
	require.True(t, ve.HasErrors())
	assert.Equal(t, apperror.CodeEmptyGraph, ve.Errors[0].Code)
}

func TestValidate_Float32Precision(t *testing.T) {
	g := mustGraph(t)
	ve := Validate(g, []float32{1.0, 2.0, 3.0}, nil, 0)
	assert.True(t, ve.IsValid())
}
