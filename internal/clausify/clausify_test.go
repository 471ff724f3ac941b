package clausify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folproof/internal/parser"
)

func TestClausifyModusPonensAxiom(t *testing.T) {
	f, err := parser.Parse("forall x (P(x) -> Q(x))")
	require.NoError(t, err)

	clauses, _, err := Clausify(f, 0)
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.Contains(t, clauses[0].String(), "!P")
	assert.Contains(t, clauses[0].String(), "Q")
}

func TestClausifyExistentialWitnessMintsSkolemConstant(t *testing.T) {
	f, err := parser.Parse("exists animal (Pet(animal) & !Mammal(animal))")
	require.NoError(t, err)

	clauses, next, err := Clausify(f, 0)
	require.NoError(t, err)
	require.Len(t, clauses, 2)
	assert.Equal(t, 1, next)

	joined := clauses[0].String() + clauses[1].String()
	assert.True(t, strings.Contains(joined, "sk_0"))
}

func TestClausifySkolemHighWaterMarkPersists(t *testing.T) {
	f1, err := parser.Parse("exists x P(x)")
	require.NoError(t, err)
	_, next1, err := Clausify(f1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, next1)

	f2, err := parser.Parse("exists x Q(x)")
	require.NoError(t, err)
	_, next2, err := Clausify(f2, next1)
	require.NoError(t, err)
	assert.Equal(t, 2, next2)
}

func TestClausifyTautologyDropped(t *testing.T) {
	f, err := parser.Parse("P(a) | !P(a)")
	require.NoError(t, err)

	clauses, _, err := Clausify(f, 0)
	require.NoError(t, err)
	assert.Empty(t, clauses)
}

func TestClausifyConjunctionSplitsIntoMultipleClauses(t *testing.T) {
	f, err := parser.Parse("Integer(0) & Even(0)")
	require.NoError(t, err)

	clauses, _, err := Clausify(f, 0)
	require.NoError(t, err)
	assert.Len(t, clauses, 2)
}
