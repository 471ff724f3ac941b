package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"folproof/internal/formula"
	"folproof/internal/term"
)

func lit(pos bool, pred string, args ...term.Term) formula.Literal {
	return formula.Literal{Polarity: pos, Pred: pred, Args: args}
}

func TestSubsumesGroundMatch(t *testing.T) {
	d := New(lit(true, "P", term.Var("x")))
	e := New(lit(true, "P", term.Const("A")), lit(false, "Q", term.Const("B")))
	assert.True(t, Subsumes(d, e))
}

func TestSubsumesRequiresLiteralCoverage(t *testing.T) {
	d := New(lit(true, "P", term.Const("A")), lit(true, "R", term.Const("C")))
	e := New(lit(true, "P", term.Const("A")), lit(false, "Q", term.Const("B")))
	assert.False(t, Subsumes(d, e))
}

func TestEmptyClauseIsBottom(t *testing.T) {
	c := New()
	assert.True(t, c.Empty())
	assert.Equal(t, "⊥", c.String())
}

func TestIsTautology(t *testing.T) {
	c := New(lit(true, "P", term.Const("A")), lit(false, "P", term.Const("A")))
	assert.True(t, c.IsTautology())
}

func TestDeduplicatesOnConstruction(t *testing.T) {
	c := New(lit(true, "P", term.Const("A")), lit(true, "P", term.Const("A")))
	assert.Equal(t, 1, c.Size())
}
