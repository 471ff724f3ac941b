// Package term implements the FOL term algebra: variables, constants, and
// function applications, plus the structural helpers (free variables,
// substitution, equality, depth) shared by the clausifier, unifier, and
// resolution engine.
package term

import (
	"fmt"
	"sort"
	"strings"
)

// Kind distinguishes the three term variants.
type Kind int

const (
	// Var is a logic variable; by convention its Name begins with a
	// lowercase letter and it carries no Args.
	KindVar Kind = iota
	// KindConst is a 0-ary constant symbol (uppercase-led or numeric).
	KindConst
	// KindFunc is an n-ary (n >= 1) function application.
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "Var"
	case KindConst:
		return "Const"
	case KindFunc:
		return "Func"
	default:
		return "Unknown"
	}
}

// Term is the tagged variant: Var and Const carry only Name; Func
// additionally carries Args (non-empty).
type Term struct {
	Kind Kind
	Name string
	Args []Term
}

// Var constructs a variable term.
func Var(name string) Term { return Term{Kind: KindVar, Name: name} }

// Const constructs a 0-ary constant term.
func Const(name string) Term { return Term{Kind: KindConst, Name: name} }

// Func constructs a function application. Panics if args is empty — a
// nullary "function" is a Const in the surface grammar.
func Func(name string, args ...Term) Term {
	if len(args) == 0 {
		panic("term: Func requires at least one argument; use Const for nullary symbols")
	}
	return Term{Kind: KindFunc, Name: name, Args: args}
}

// IsVar reports whether t is a variable.
func (t Term) IsVar() bool { return t.Kind == KindVar }

// Equal reports structural equality (no unification, no substitution).
func (t Term) Equal(o Term) bool {
	if t.Kind != o.Kind || t.Name != o.Name || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// String renders the term in the surface syntax accepted by the parser.
func (t Term) String() string {
	if t.Kind != KindFunc {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(parts, ", "))
}

// Depth returns the term's structural depth: 0 for Var/Const, 1 +
// max(child depth) for Func. Used to bound pathological Skolem nesting.
func (t Term) Depth() int {
	if t.Kind != KindFunc {
		return 0
	}
	max := 0
	for _, a := range t.Args {
		if d := a.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// FreeVars adds t's variable names into the set seen (allocating it when
// nil) and returns the updated set; VarNames gives them sorted.
func FreeVars(t Term, seen map[string]struct{}) map[string]struct{} {
	if seen == nil {
		seen = make(map[string]struct{})
	}
	switch t.Kind {
	case KindVar:
		seen[t.Name] = struct{}{}
	case KindFunc:
		for _, a := range t.Args {
			FreeVars(a, seen)
		}
	}
	return seen
}

// VarNames returns the sorted distinct variable names occurring in t.
func VarNames(t Term) []string {
	set := FreeVars(t, nil)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Occurs reports whether variable name v occurs anywhere inside t
// (the occurs-check primitive used by the unifier).
func Occurs(v string, t Term) bool {
	switch t.Kind {
	case KindVar:
		return t.Name == v
	case KindFunc:
		for _, a := range t.Args {
			if Occurs(v, a) {
				return true
			}
		}
	}
	return false
}

// Substitution maps variable names to replacement Terms. It is applied
// recursively by Apply, and callers are expected to keep it idempotent
// (no Name in the map's keys occurs in any of its values) — both the
// unifier and the standardize-apart rename step maintain this invariant
// by construction.
type Substitution map[string]Term

// Apply substitutes every variable in t bound by s, recursively.
func (s Substitution) Apply(t Term) Term {
	if len(s) == 0 {
		return t
	}
	switch t.Kind {
	case KindVar:
		if repl, ok := s[t.Name]; ok {
			return repl
		}
		return t
	case KindFunc:
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}
		return Term{Kind: KindFunc, Name: t.Name, Args: args}
	default:
		return t
	}
}

// Compose returns a substitution equivalent to applying s first, then
// outer (outer ∘ s): every value already bound by s is itself rewritten
// by outer, and any binding in outer not already in s is added.
func Compose(outer, s Substitution) Substitution {
	result := make(Substitution, len(s)+len(outer))
	for k, v := range s {
		result[k] = outer.Apply(v)
	}
	for k, v := range outer {
		if _, ok := result[k]; !ok {
			result[k] = v
		}
	}
	return result
}

// Rename returns a copy of t with every variable name replaced per mapping.
// Unmapped variables are left unchanged.
func Rename(t Term, mapping map[string]string) Term {
	switch t.Kind {
	case KindVar:
		if nn, ok := mapping[t.Name]; ok {
			return Var(nn)
		}
		return t
	case KindFunc:
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = Rename(a, mapping)
		}
		return Term{Kind: KindFunc, Name: t.Name, Args: args}
	default:
		return t
	}
}
