package resolve

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folproof/internal/clausify"
	"folproof/internal/formula"
	"folproof/internal/parser"
)

func inputsFor(t *testing.T, axioms []string, goal string) []Input {
	t.Helper()
	var inputs []Input
	skolem := 0
	for i, src := range axioms {
		f, err := parser.Parse(src)
		require.NoError(t, err)
		clauses, next, err := clausify.Clausify(f, skolem)
		require.NoError(t, err)
		skolem = next
		for _, c := range clauses {
			inputs = append(inputs, Input{Clause: c, Just: Justification{Kind: JustPremise, PremiseKind: SourceAxiom, PremiseIndex: i}})
		}
	}

	gf, err := parser.Parse(goal)
	require.NoError(t, err)
	goalClauses, _, err := clausify.Clausify(formula.Not(gf), skolem)
	require.NoError(t, err)
	for _, c := range goalClauses {
		inputs = append(inputs, Input{Clause: c, Just: Justification{Kind: JustPremise, PremiseKind: SourceConclusion}})
	}
	return inputs
}

// TestModusPonens proves Q(a) from P(a) and forall x (P(x) -> Q(x)).
// Three independent premise clauses (!P(x)|Q(x), P(a), !Q(a)) cannot merge
// into the empty clause in a single binary resolution step — deriving ⊥
// needs one intermediate resolvent first, for five trace entries
// (3 premises + 1 intermediate + ⊥).
func TestModusPonens(t *testing.T) {
	inputs := inputsFor(t, []string{
		"forall x (P(x) -> Q(x))",
		"P(a)",
	}, "Q(a)")

	out := Run(context.Background(), inputs, DefaultBudget(), nil)
	require.Equal(t, StatusProof, out.Status)
	assert.Len(t, out.Trace, 5)
	assert.True(t, out.Trace[len(out.Trace)-1].Clause.Empty())
}

// TestExistentialWitness proves an existential goal; the Skolem constant
// minted for the existential axiom must appear in the trace.
func TestExistentialWitness(t *testing.T) {
	inputs := inputsFor(t, []string{
		"forall animal (Cat(animal) -> Mammal(animal))",
		"exists animal (Pet(animal) & !Mammal(animal))",
	}, "exists animal (Pet(animal) & !Cat(animal))")

	out := Run(context.Background(), inputs, DefaultBudget(), nil)
	require.Equal(t, StatusProof, out.Status)

	found := false
	for _, step := range out.Trace {
		if strings.Contains(step.Clause.String(), "sk_0") || strings.Contains(step.Clause.String(), "sk_1") {
			found = true
		}
	}
	assert.True(t, found, "expected a Skolem constant in the trace")
}

func TestEvenOdd(t *testing.T) {
	inputs := inputsFor(t, []string{
		"forall x !(Even(x) & Odd(x))",
		"forall x ((Even(x) -> Odd(addOne(x))) & (Odd(x) -> Even(addOne(x))))",
		"Integer(0) & Even(0)",
	}, "!Even(addOne(0))")

	out := Run(context.Background(), inputs, DefaultBudget(), nil)
	assert.Equal(t, StatusProof, out.Status)
}

// TestNonConsequence: no axiom connects P to Q, so saturation must exhaust
// without deriving ⊥.
func TestNonConsequence(t *testing.T) {
	inputs := inputsFor(t, []string{"P(a)"}, "Q(a)")

	out := Run(context.Background(), inputs, DefaultBudget(), nil)
	assert.Equal(t, StatusSaturated, out.Status)
}

func TestTrivialTautologyNeedsNoAxioms(t *testing.T) {
	inputs := inputsFor(t, nil, "forall x (P(x) | !P(x))")

	out := Run(context.Background(), inputs, DefaultBudget(), nil)
	assert.Equal(t, StatusProof, out.Status)
}

// TestBudgetExhaustion: an axiom set generating unboundedly many ground
// terms, and a goal that is not a logical consequence, must exhaust the
// processed-clause budget rather than run forever.
func TestBudgetExhaustion(t *testing.T) {
	// forall x (P(x) -> P(f(x))) together with P(A) resolves forever,
	// minting P(f(A)), P(f(f(A))), ... without ever deriving the empty
	// clause against the unrelated goal Q(A); a tight processed-clause cap
	// (deliberately generous on term depth, so depth never becomes the
	// limiting factor) must force BudgetExhausted rather than looping.
	inputs := inputsFor(t, []string{
		"forall x (P(x) -> P(f(x)))",
		"P(A)",
	}, "Q(A)")

	tight := Budget{MaxResolvents: 1000, MaxProcessed: 5, MaxClauseLiterals: 64, MaxTermDepth: 1000}
	out := Run(context.Background(), inputs, tight, nil)
	assert.Equal(t, StatusBudgetExhausted, out.Status)
}

// TestDeterminism: with a fixed budget and fixed premise ordering,
// repeated runs produce byte-identical traces.
func TestDeterminism(t *testing.T) {
	inputs := inputsFor(t, []string{
		"forall x (P(x) -> Q(x))",
		"P(a)",
	}, "Q(a)")

	first := Run(context.Background(), inputs, DefaultBudget(), nil)
	second := Run(context.Background(), inputs, DefaultBudget(), nil)

	require.Equal(t, first.Status, second.Status)
	require.Len(t, second.Trace, len(first.Trace))
	for i := range first.Trace {
		assert.Equal(t, first.Trace[i].String(), second.Trace[i].String())
	}
}

// TestResolutionSoundness checks the structural trace invariant: every
// non-premise step follows from earlier indices, and the last clause is
// the empty clause.
func TestResolutionSoundness(t *testing.T) {
	inputs := inputsFor(t, []string{
		"forall x (P(x) -> Q(x))",
		"P(a)",
	}, "Q(a)")

	out := Run(context.Background(), inputs, DefaultBudget(), nil)
	require.Equal(t, StatusProof, out.Status)

	for _, step := range out.Trace {
		switch step.Just.Kind {
		case JustPremise:
			continue
		case JustResolve:
			assert.Less(t, step.Just.From1, step.Index)
			assert.Less(t, step.Just.From2, step.Index)
		case JustFactor:
			assert.Less(t, step.Just.From1, step.Index)
		}
	}
	last := out.Trace[len(out.Trace)-1]
	assert.True(t, last.Clause.Empty())
}

// TestBudgetParallelDeterminism checks that opting into parallel resolvent
// generation does not change the resulting trace.
func TestBudgetParallelDeterminism(t *testing.T) {
	inputs := inputsFor(t, []string{
		"forall x (P(x) -> Q(x))",
		"P(a)",
	}, "Q(a)")

	serial := DefaultBudget()
	parallelBudget := DefaultBudget()
	parallelBudget.Parallel = true

	out1 := Run(context.Background(), inputs, serial, nil)
	out2 := Run(context.Background(), inputs, parallelBudget, nil)

	require.Equal(t, out1.Status, out2.Status)
	require.Len(t, out2.Trace, len(out1.Trace))
	for i := range out1.Trace {
		assert.Equal(t, out1.Trace[i].String(), out2.Trace[i].String())
	}
}
