package cache

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/symbolic"
)

func TestSaveLoadSummariesRoundTrips(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	summaries := map[string]*interp.Summary{
		"f": {
			ArgExprs: []symbolic.Expr{d0},
			RetExpr:  d0,
			Constraints: []interp.RawConstraint{
				interp.ExprConstraint{
					Pred:   symbolic.IntCompare{Op: symbolic.CmpGt, LHS: d0, RHS: symbolic.IntLit{Value: 0}},
					Assume: symbolic.BoolTrue{},
					Origin: interp.Asserted,
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, SaveSummaries(&buf, summaries))

	got, err := LoadSummaries(&buf)
	require.NoError(t, err)
	require.Contains(t, got, "f")
	assert.Equal(t, d0.String(), got["f"].RetExpr.String())
	require.Len(t, got["f"].Constraints, 1)
	assert.Equal(t, interp.Asserted, got["f"].Constraints[0].(interp.ExprConstraint).Origin)
}

func TestSaveSummariesIsDeterministicAcrossMapIterationOrder(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	mkSummary := func() *interp.Summary {
		return &interp.Summary{RetExpr: d0}
	}
	summaries := map[string]*interp.Summary{
		"zebra": mkSummary(),
		"alpha": mkSummary(),
		"mid":   mkSummary(),
	}

	var first, second bytes.Buffer
	require.NoError(t, SaveSummaries(&first, summaries))
	require.NoError(t, SaveSummaries(&second, summaries))
	assert.Equal(t, first.Bytes(), second.Bytes())
}
