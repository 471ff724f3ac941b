// Package clause implements the Clause type: an unordered, duplicate-free
// set of literals interpreted as their disjunction, plus the structural
// operations (tautology check, subsumption, freshening) the resolution
// engine relies on.
package clause

import (
	"sort"
	"strings"

	"folproof/internal/formula"
	"folproof/internal/term"
)

// Clause is a set of Literals, implicitly universally closed over its
// remaining variables. The empty Clause represents ⊥.
type Clause struct {
	Literals []formula.Literal
}

// New builds a Clause from literals, deduplicating but preserving the
// input order for the remainder (first occurrence wins).
func New(lits ...formula.Literal) Clause {
	out := make([]formula.Literal, 0, len(lits))
	for _, l := range lits {
		dup := false
		for _, seen := range out {
			if seen.Equal(l) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	return Clause{Literals: out}
}

// Empty reports whether c is ⊥ (no literals).
func (c Clause) Empty() bool { return len(c.Literals) == 0 }

// IsTautology reports whether c contains both L and ¬L for some literal L.
func (c Clause) IsTautology() bool {
	for i := range c.Literals {
		for j := i + 1; j < len(c.Literals); j++ {
			if c.Literals[i].ComplementOf(c.Literals[j]) && argsEqual(c.Literals[i], c.Literals[j]) {
				return true
			}
		}
	}
	return false
}

func argsEqual(a, b formula.Literal) bool {
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !a.Args[i].Equal(b.Args[i]) {
			return false
		}
	}
	return true
}

// Apply substitutes every literal's arguments via s, re-deduplicating the
// result (a substitution can make two previously-distinct literals equal).
func (c Clause) Apply(s term.Substitution) Clause {
	lits := make([]formula.Literal, len(c.Literals))
	for i, l := range c.Literals {
		lits[i] = l.Apply(s)
	}
	return New(lits...)
}

// VarNames returns the sorted distinct variable names occurring in c.
func (c Clause) VarNames() []string {
	set := map[string]struct{}{}
	for _, l := range c.Literals {
		for _, a := range l.Args {
			for _, v := range term.VarNames(a) {
				set[v] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(set))
	for v := range set {
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}

// Rename returns a copy of c with every variable substituted per mapping.
func (c Clause) Rename(mapping map[string]string) Clause {
	lits := make([]formula.Literal, len(c.Literals))
	for i, l := range c.Literals {
		args := make([]term.Term, len(l.Args))
		for j, a := range l.Args {
			args[j] = term.Rename(a, mapping)
		}
		lits[i] = formula.Literal{Polarity: l.Polarity, Pred: l.Pred, Args: args}
	}
	return Clause{Literals: lits}
}

// Size is the literal count, used as the given-clause selection weight
// (smallest clause first).
func (c Clause) Size() int { return len(c.Literals) }

// String renders c as a comma-separated literal list, or "⊥" when empty —
// the form proof traces print.
func (c Clause) String() string {
	if c.Empty() {
		return "⊥"
	}
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}

// Subsumes reports whether c subsumes o: there exists a substitution τ
// such that cτ ⊆ o as a multiset of literals. Variables in c and o are
// assumed already disjoint (the engine standardizes apart before calling
// this).
func Subsumes(c, o Clause) bool {
	if len(c.Literals) > len(o.Literals) {
		return false
	}
	return matchLiterals(c.Literals, o.Literals, make([]bool, len(o.Literals)), term.Substitution{})
}

// matchLiterals tries to match every literal in remaining against a
// distinct, not yet used literal in pool under an extensible
// one-directional (match, not unify) substitution, backtracking across
// choices.
func matchLiterals(remaining, pool []formula.Literal, used []bool, s term.Substitution) bool {
	if len(remaining) == 0 {
		return true
	}
	head := remaining[0]
	rest := remaining[1:]
	for i, cand := range pool {
		if used[i] || head.Polarity != cand.Polarity || head.Pred != cand.Pred || len(head.Args) != len(cand.Args) {
			continue
		}
		if ext, ok := matchArgs(head.Args, cand.Args, s); ok {
			used[i] = true
			if matchLiterals(rest, pool, used, ext) {
				return true
			}
			used[i] = false
		}
	}
	return false
}

// matchArgs extends s so that applying it to each of from maps it onto the
// corresponding element of to; unlike unification this never binds
// variables in `to`, only in `from` (a one-sided match, as subsumption
// requires: Dτ ⊆ E, τ ranges over D's variables only).
func matchArgs(from, to []term.Term, s term.Substitution) (term.Substitution, bool) {
	cur := s
	for i := range from {
		ext, ok := matchTerm(from[i], to[i], cur)
		if !ok {
			return nil, false
		}
		cur = ext
	}
	return cur, true
}

func matchTerm(from, to term.Term, s term.Substitution) (term.Substitution, bool) {
	switch from.Kind {
	case term.KindVar:
		if bound, ok := s[from.Name]; ok {
			if bound.Equal(to) {
				return s, true
			}
			return nil, false
		}
		next := make(term.Substitution, len(s)+1)
		for k, v := range s {
			next[k] = v
		}
		next[from.Name] = to
		return next, true
	case term.KindConst:
		if to.Kind == term.KindConst && to.Name == from.Name {
			return s, true
		}
		return nil, false
	case term.KindFunc:
		if to.Kind != term.KindFunc || to.Name != from.Name || len(to.Args) != len(from.Args) {
			return nil, false
		}
		cur := s
		for i := range from.Args {
			ext, ok := matchTerm(from.Args[i], to.Args[i], cur)
			if !ok {
				return nil, false
			}
			cur = ext
		}
		return cur, true
	}
	return nil, false
}
