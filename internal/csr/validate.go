package csr

import (
	"fmt"

	"bmssp/pkg/apperror"
)

// Validate checks every structural and numeric precondition a query must
// satisfy before the BMSSP or Dijkstra engines may begin: array shapes
// agree with the graph, every weight is finite and non-negative, the
// enabled mask (if present) has the right shape, and the source vertex is
// in range. Every defect found is collected rather than returned on first
// failure, matching the fail-fast-but-complete contract: validation
// finishes in full before the caller ever sees an error, and no partial
// computation has started.
func Validate[W Weight](g *Graph, weights []W, enabled []bool, source int) *apperror.ValidationErrors {
	ve := apperror.NewValidationErrors()

	if g == nil || g.N == 0 {
		ve.AddError(apperror.CodeEmptyGraph, "graph has no vertices")
		return ve
	}

	m := g.EdgeCount()

	if len(weights) != m {
		ve.AddErrorWithField(apperror.CodeShapeMismatch,
			fmt.Sprintf("weights length must equal edge count (%d), got %d", m, len(weights)),
			"weights")
	} else {
		for e, w := range weights {
			if !IsFinite(w) {
				ve.AddErrorWithField(apperror.CodeNonFiniteWeight,
					fmt.Sprintf("weight at edge %d is not finite", e),
					fmt.Sprintf("weights[%d]", e))
				continue
			}
			if w < 0 {
				ve.AddErrorWithField(apperror.CodeNegativeWeight,
					fmt.Sprintf("weight at edge %d is negative", e),
					fmt.Sprintf("weights[%d]", e))
			}
		}
	}

	if enabled != nil && len(enabled) != m {
		ve.AddErrorWithField(apperror.CodeShapeMismatch,
			fmt.Sprintf("enabled mask length must equal edge count (%d), got %d", m, len(enabled)),
			"enabled")
	}

	if source < 0 || source >= g.N {
		ve.AddErrorWithField(apperror.CodeInvalidSource,
			fmt.Sprintf("source %d out of range [0,%d)", source, g.N),
			"source")
	}

	return ve
}
