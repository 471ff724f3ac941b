package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folproof/internal/formula"
	"folproof/internal/term"
)

// TestMGU checks the MGU property: if unify(s, t) = σ then sσ = tσ.
func TestMGU(t *testing.T) {
	x := term.Var("x")
	a := term.Const("A")
	fx := term.Func("f", x)
	fa := term.Func("f", a)

	sub, err := Terms(fx, fa)
	require.NoError(t, err)

	assert.True(t, sub.Apply(fx).Equal(sub.Apply(fa)))
	assert.True(t, sub.Apply(x).Equal(a))
}

// TestOccursCheck: unify(x, f(x)) must fail.
func TestOccursCheck(t *testing.T) {
	x := term.Var("x")
	fx := term.Func("f", x)

	_, err := Terms(x, fx)
	require.ErrorIs(t, err, ErrNoUnifier)
}

func TestTermsConstMismatch(t *testing.T) {
	_, err := Terms(term.Const("A"), term.Const("B"))
	require.ErrorIs(t, err, ErrNoUnifier)
}

func TestLiteralsRequireOppositePolarity(t *testing.T) {
	p1 := formula.Literal{Polarity: true, Pred: "P", Args: []term.Term{term.Var("x")}}
	p2 := formula.Literal{Polarity: true, Pred: "P", Args: []term.Term{term.Const("A")}}
	_, err := Literals(p1, p2)
	require.ErrorIs(t, err, ErrNoUnifier)

	p3 := formula.Literal{Polarity: false, Pred: "P", Args: []term.Term{term.Const("A")}}
	sub, err := Literals(p1, p3)
	require.NoError(t, err)
	assert.Equal(t, term.Const("A"), sub["x"])
}

func TestLiteralsSamePolarityForFactoring(t *testing.T) {
	l1 := formula.Literal{Polarity: true, Pred: "P", Args: []term.Term{term.Var("x")}}
	l2 := formula.Literal{Polarity: true, Pred: "P", Args: []term.Term{term.Const("A")}}
	sub, err := LiteralsSamePolarity(l1, l2)
	require.NoError(t, err)
	assert.Equal(t, term.Const("A"), sub["x"])

	l3 := formula.Literal{Polarity: false, Pred: "P", Args: []term.Term{term.Const("A")}}
	_, err = LiteralsSamePolarity(l1, l3)
	require.ErrorIs(t, err, ErrNoUnifier)
}

func TestIdempotentSubstitution(t *testing.T) {
	x, y := term.Var("x"), term.Var("y")
	sub, err := Terms(x, term.Func("f", y))
	require.NoError(t, err)
	once := sub.Apply(x)
	twice := sub.Apply(once)
	assert.True(t, once.Equal(twice))
}

// TestUnifyDeeplyNestedTerms: the implementation must survive a
// pathological case of nested Skolem-shaped terms eight levels deep
// without exponential blowup or a stack failure.
func TestUnifyDeeplyNestedTerms(t *testing.T) {
	const depth = 8

	nested := func(v term.Term) term.Term {
		t := v
		for i := 0; i < depth; i++ {
			t = term.Func("sk_0", t)
		}
		return t
	}

	x := term.Var("x")
	ground := nested(term.Const("A"))

	sub, err := Terms(x, ground)
	require.NoError(t, err)
	assert.True(t, sub.Apply(x).Equal(ground))
	assert.Equal(t, depth, ground.Depth())

	// Two distinct variables both wrapped in the same depth-8 shell must
	// still unify at the leaf.
	y := term.Var("y")
	lhs := nested(x)
	rhs := nested(y)
	sub2, err := Terms(lhs, rhs)
	require.NoError(t, err)
	assert.True(t, sub2.Apply(lhs).Equal(sub2.Apply(rhs)))
}
