// Package formula implements the pre-clausal formula algebra: literals and
// the quantifier/connective tree produced by the parser and consumed by the
// clausifier.
package formula

import (
	"fmt"
	"sort"
	"strings"

	"folproof/internal/term"
)

// Literal is a predicate application, optionally negated. Literals are the
// only atomic building block shared between Formula (as Atom) and Clause.
type Literal struct {
	Polarity bool // true = positive occurrence
	Pred     string
	Args     []term.Term
}

// Negate returns the complementary literal.
func (l Literal) Negate() Literal {
	return Literal{Polarity: !l.Polarity, Pred: l.Pred, Args: l.Args}
}

// Equal reports structural equality, polarity included.
func (l Literal) Equal(o Literal) bool {
	if l.Polarity != o.Polarity || l.Pred != o.Pred || len(l.Args) != len(o.Args) {
		return false
	}
	for i := range l.Args {
		if !l.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// ComplementOf reports whether l and o are the same predicate/arity with
// opposite polarity — the precondition for a resolvable literal pair,
// independent of whether their arguments actually unify.
func (l Literal) ComplementOf(o Literal) bool {
	return l.Polarity != o.Polarity && l.Pred == o.Pred && len(l.Args) == len(o.Args)
}

// Apply substitutes every argument term via s.
func (l Literal) Apply(s term.Substitution) Literal {
	if len(s) == 0 {
		return l
	}
	args := make([]term.Term, len(l.Args))
	for i, a := range l.Args {
		args[i] = s.Apply(a)
	}
	return Literal{Polarity: l.Polarity, Pred: l.Pred, Args: args}
}

// String renders the literal in surface syntax ("!P(x)" / "P(x)").
func (l Literal) String() string {
	var b strings.Builder
	if !l.Polarity {
		b.WriteByte('!')
	}
	b.WriteString(l.Pred)
	if len(l.Args) > 0 {
		parts := make([]string, len(l.Args))
		for i, a := range l.Args {
			parts[i] = a.String()
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(parts, ", "))
		b.WriteByte(')')
	}
	return b.String()
}

// Kind tags a Formula node.
type Kind int

const (
	KindAtom Kind = iota
	KindNot
	KindAnd
	KindOr
	KindImp
	KindIff
	KindForAll
	KindExists
)

// Formula is the tagged connective/quantifier tree. Only between parsing
// and clausification is this type used; clauses never contain a Formula.
type Formula struct {
	Kind Kind

	// KindAtom
	Lit Literal

	// KindNot
	Sub *Formula

	// KindAnd / KindOr / KindImp / KindIff
	L, R *Formula

	// KindForAll / KindExists
	Var  string
	Body *Formula
}

func Atom(l Literal) *Formula { return &Formula{Kind: KindAtom, Lit: l} }
func Not(f *Formula) *Formula { return &Formula{Kind: KindNot, Sub: f} }
func And(l, r *Formula) *Formula { return &Formula{Kind: KindAnd, L: l, R: r} }
func Or(l, r *Formula) *Formula  { return &Formula{Kind: KindOr, L: l, R: r} }
func Imp(l, r *Formula) *Formula { return &Formula{Kind: KindImp, L: l, R: r} }
func Iff(l, r *Formula) *Formula { return &Formula{Kind: KindIff, L: l, R: r} }
func ForAll(v string, body *Formula) *Formula { return &Formula{Kind: KindForAll, Var: v, Body: body} }
func Exists(v string, body *Formula) *Formula { return &Formula{Kind: KindExists, Var: v, Body: body} }

// Equal reports structural (alpha-insensitive-free, name-sensitive) equality.
func Equal(a, b *Formula) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindAtom:
		return a.Lit.Equal(b.Lit)
	case KindNot:
		return Equal(a.Sub, b.Sub)
	case KindAnd, KindOr, KindImp, KindIff:
		return Equal(a.L, b.L) && Equal(a.R, b.R)
	case KindForAll, KindExists:
		return a.Var == b.Var && Equal(a.Body, b.Body)
	}
	return false
}

// FreeVars returns the sorted distinct names of free (non-bound) variables
// occurring in f.
func FreeVars(f *Formula) []string {
	set := freeVars(f, map[string]struct{}{})
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func freeVars(f *Formula, bound map[string]struct{}) map[string]struct{} {
	out := map[string]struct{}{}
	switch f.Kind {
	case KindAtom:
		for _, a := range f.Lit.Args {
			for _, v := range term.VarNames(a) {
				if _, isBound := bound[v]; !isBound {
					out[v] = struct{}{}
				}
			}
		}
	case KindNot:
		for v := range freeVars(f.Sub, bound) {
			out[v] = struct{}{}
		}
	case KindAnd, KindOr, KindImp, KindIff:
		for v := range freeVars(f.L, bound) {
			out[v] = struct{}{}
		}
		for v := range freeVars(f.R, bound) {
			out[v] = struct{}{}
		}
	case KindForAll, KindExists:
		nb := make(map[string]struct{}, len(bound)+1)
		for k := range bound {
			nb[k] = struct{}{}
		}
		nb[f.Var] = struct{}{}
		for v := range freeVars(f.Body, nb) {
			out[v] = struct{}{}
		}
	}
	return out
}

// String renders f using the parser's grammar, with full parenthesization
// around binary connectives so that pretty-print -> parse -> pretty-print
// is a fixed point.
func (f *Formula) String() string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case KindAtom:
		return f.Lit.String()
	case KindNot:
		return "!" + wrapUnary(f.Sub)
	case KindAnd:
		return fmt.Sprintf("(%s & %s)", f.L.String(), f.R.String())
	case KindOr:
		return fmt.Sprintf("(%s | %s)", f.L.String(), f.R.String())
	case KindImp:
		return fmt.Sprintf("(%s -> %s)", f.L.String(), f.R.String())
	case KindIff:
		return fmt.Sprintf("(%s <-> %s)", f.L.String(), f.R.String())
	case KindForAll:
		return fmt.Sprintf("forall %s %s", f.Var, f.Body.String())
	case KindExists:
		return fmt.Sprintf("exists %s %s", f.Var, f.Body.String())
	}
	return ""
}

func wrapUnary(f *Formula) string {
	if f.Kind == KindAtom {
		return f.String()
	}
	return "(" + f.String() + ")"
}
