package kb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folproof/internal/rank"
	"folproof/internal/resolve"
)

func newTestKB(t *testing.T) *KB {
	t.Helper()
	k, err := New(Config{Rank: rank.DefaultConfig(), Budget: resolve.DefaultBudget()}, nil)
	require.NoError(t, err)
	return k
}

func TestAddAxiomAndProve(t *testing.T) {
	k := newTestKB(t)

	_, err := k.AddAxiom("forall x (P(x) -> Q(x))", "modus ponens rule")
	require.NoError(t, err)
	_, err = k.AddAxiom("P(a)", "")
	require.NoError(t, err)

	outcome, err := k.Prove(context.Background(), "Q(a)", "")
	require.NoError(t, err)
	assert.Equal(t, ResultProof, outcome.Result)
	assert.Equal(t, 0, outcome.TheoremIndex)
	assert.Equal(t, 1, k.Stats().TheoremCount)
}

func TestProveSaturatedOnNonConsequence(t *testing.T) {
	k := newTestKB(t)
	_, err := k.AddAxiom("P(a)", "")
	require.NoError(t, err)

	outcome, err := k.Prove(context.Background(), "Q(a)", "")
	require.NoError(t, err)
	assert.Equal(t, ResultSaturated, outcome.Result)
	assert.Equal(t, 0, k.Stats().TheoremCount)
}

func TestLemmaReuse(t *testing.T) {
	k := newTestKB(t)
	_, err := k.AddAxiom("forall x !(Even(x) & Odd(x))", "")
	require.NoError(t, err)
	_, err = k.AddAxiom("forall x ((Even(x) -> Odd(addOne(x))) & (Odd(x) -> Even(addOne(x))))", "")
	require.NoError(t, err)
	_, err = k.AddAxiom("Integer(0) & Even(0)", "")
	require.NoError(t, err)

	first, err := k.Prove(context.Background(), "!Even(addOne(0))", "")
	require.NoError(t, err)
	require.Equal(t, ResultProof, first.Result)

	second, err := k.Prove(context.Background(), "!forall x Even(x)", "reuse the addOne parity lemma")
	require.NoError(t, err)
	assert.Equal(t, ResultProof, second.Result)
	assert.Equal(t, []int{0}, second.Selection.Selected)

	foundTheoremPremise := false
	for _, step := range second.Trace {
		if step.Just.Kind == resolve.JustPremise && step.Just.PremiseKind == resolve.SourceTheorem {
			foundTheoremPremise = true
		}
	}
	assert.True(t, foundTheoremPremise, "expected the prior theorem to appear as a premise")
}

// TestNoDescriptionNarrowsToAxiomsOnly: when the goal has no description,
// an existing theorem pool must be entirely omitted, not entirely
// included.
func TestNoDescriptionNarrowsToAxiomsOnly(t *testing.T) {
	k := newTestKB(t)
	_, err := k.AddAxiom("forall x !(Even(x) & Odd(x))", "")
	require.NoError(t, err)
	_, err = k.AddAxiom("forall x ((Even(x) -> Odd(addOne(x))) & (Odd(x) -> Even(addOne(x))))", "")
	require.NoError(t, err)
	_, err = k.AddAxiom("Integer(0) & Even(0)", "")
	require.NoError(t, err)

	first, err := k.Prove(context.Background(), "!Even(addOne(0))", "parity flips across addOne")
	require.NoError(t, err)
	require.Equal(t, ResultProof, first.Result)

	premises, selection, err := k.assemblePremises(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, selection.Selected)
	assert.Equal(t, []int{0}, selection.Omitted)
	for _, p := range premises {
		assert.NotEqual(t, resolve.SourceTheorem, p.Just.PremiseKind)
	}
}

func TestAxiomsAlwaysIncludedRegardlessOfSelectionLimit(t *testing.T) {
	k, err := New(Config{Rank: rank.DefaultConfig(), Budget: resolve.DefaultBudget(), SelectionLimit: 1}, nil)
	require.NoError(t, err)

	_, err = k.AddAxiom("forall x (P(x) -> Q(x))", "totally unrelated description")
	require.NoError(t, err)
	_, err = k.AddAxiom("P(a)", "another unrelated description")
	require.NoError(t, err)

	// Both axioms must be used even though SelectionLimit (1) is below the
	// axiom count and neither description resembles the goal description.
	outcome, err := k.Prove(context.Background(), "Q(a)", "something else entirely")
	require.NoError(t, err)
	assert.Equal(t, ResultProof, outcome.Result)
}

func TestSetDescription(t *testing.T) {
	k := newTestKB(t)
	idx, err := k.AddAxiom("P(a)", "original")
	require.NoError(t, err)

	require.NoError(t, k.SetDescription(KindAxiom, idx, "updated"))
	e, err := k.Get(KindAxiom, idx)
	require.NoError(t, err)
	assert.Equal(t, "updated", e.Description)
}

func TestSetDescriptionOutOfRange(t *testing.T) {
	k := newTestKB(t)
	err := k.SetDescription(KindAxiom, 0, "x")
	assert.Error(t, err)
}

func TestLoadSeedAggregatesErrors(t *testing.T) {
	k := newTestKB(t)
	err := k.LoadSeed([]SeedAxiom{
		{Formula: "P(a)", Description: "fine"},
		{Formula: "not a valid formula (((", Description: "broken"},
		{Formula: "Q(b)", Description: "also fine"},
	})
	require.Error(t, err)
	assert.Equal(t, 2, k.Stats().AxiomCount)
}

func TestDescribeFormatsWithAndWithoutDescription(t *testing.T) {
	k := newTestKB(t)
	idx, err := k.AddAxiom("P(a)", "")
	require.NoError(t, err)
	d, err := k.Describe(KindAxiom, idx)
	require.NoError(t, err)
	assert.Equal(t, "P(a)", d)

	idx2, err := k.AddAxiom("Q(b)", "a fact about b")
	require.NoError(t, err)
	d2, err := k.Describe(KindAxiom, idx2)
	require.NoError(t, err)
	assert.Contains(t, d2, "a fact about b")
}
