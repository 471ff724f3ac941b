// Package unify implements Robinson-style most-general-unifier computation
// over terms and literal pairs, with an occurs check.
package unify

import (
	"errors"

	"folproof/internal/formula"
	"folproof/internal/term"
)

// ErrNoUnifier is returned when two terms or literals cannot be unified.
var ErrNoUnifier = errors.New("unify: no unifier exists")

// Terms computes the MGU of s and t, or ErrNoUnifier.
func Terms(s, t term.Term) (term.Substitution, error) {
	return unify(s, t, term.Substitution{})
}

// TermLists unifies two equal-length term sequences left-to-right under a
// single growing substitution.
func TermLists(a, b []term.Term) (term.Substitution, error) {
	if len(a) != len(b) {
		return nil, ErrNoUnifier
	}
	sub := term.Substitution{}
	for i := range a {
		next, err := unify(sub.Apply(a[i]), sub.Apply(b[i]), sub)
		if err != nil {
			return nil, err
		}
		sub = next
	}
	return sub, nil
}

// Literals unifies the arguments of two literals for resolution: they must
// have opposite polarity and the same predicate/arity, and their argument
// lists must unify.
func Literals(a, b formula.Literal) (term.Substitution, error) {
	if !a.ComplementOf(b) {
		return nil, ErrNoUnifier
	}
	return TermLists(a.Args, b.Args)
}

// LiteralsSamePolarity unifies the arguments of two same-polarity,
// same-predicate literals — used by factoring, which merges two literals
// within one clause rather than resolving across clauses.
func LiteralsSamePolarity(a, b formula.Literal) (term.Substitution, error) {
	if a.Polarity != b.Polarity || a.Pred != b.Pred || len(a.Args) != len(b.Args) {
		return nil, ErrNoUnifier
	}
	return TermLists(a.Args, b.Args)
}

func unify(s, t term.Term, sub term.Substitution) (term.Substitution, error) {
	s = sub.Apply(s)
	t = sub.Apply(t)

	if s.Kind == term.KindVar {
		return bind(s.Name, t, sub)
	}
	if t.Kind == term.KindVar {
		return bind(t.Name, s, sub)
	}
	if s.Kind == term.KindConst && t.Kind == term.KindConst {
		if s.Name == t.Name {
			return sub, nil
		}
		return nil, ErrNoUnifier
	}
	if s.Kind == term.KindFunc && t.Kind == term.KindFunc {
		if s.Name != t.Name || len(s.Args) != len(t.Args) {
			return nil, ErrNoUnifier
		}
		cur := sub
		for i := range s.Args {
			next, err := unify(s.Args[i], t.Args[i], cur)
			if err != nil {
				return nil, err
			}
			cur = next
		}
		return cur, nil
	}
	return nil, ErrNoUnifier
}

// bind extends sub with v := t, rejecting the binding if v occurs in t
// (occurs check) unless t is syntactically v itself.
func bind(v string, t term.Term, sub term.Substitution) (term.Substitution, error) {
	if t.Kind == term.KindVar && t.Name == v {
		return sub, nil
	}
	if term.Occurs(v, t) {
		return nil, ErrNoUnifier
	}
	next := make(term.Substitution, len(sub)+1)
	for k, val := range sub {
		next[k] = val
	}
	next[v] = t
	// Keep the substitution idempotent: rewrite any existing binding whose
	// value mentions v.
	for k, val := range next {
		if k == v {
			continue
		}
		next[k] = term.Substitution{v: t}.Apply(val)
	}
	return next, nil
}
