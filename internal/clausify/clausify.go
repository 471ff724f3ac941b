// Package clausify rewrites a Formula into an equisatisfiable set of
// Clauses through a fixed rewrite order: implication removal,
// negation-normal-form, alpha-renaming, Skolemization, prenex (folded into
// dropping universals), and CNF distribution.
package clausify

import (
	"fmt"

	"folproof/internal/clause"
	"folproof/internal/formula"
	"folproof/internal/term"
)

// Fresh supplies the monotonically increasing names the clausifier mints.
// Bound-variable names reset to v_0 on every Clausify call — resolution's
// standardize-apart pass makes their absolute spelling irrelevant to
// soundness, so resetting keeps repeated clausifications of the same
// formula reproducible. Skolem symbols, by contrast, must never collide
// across two different axioms that both contain existentials (two
// genuinely distinct functions both spelled sk_0 would let the engine
// unify unrelated witnesses) — so the caller seeds SkolemStart from a
// running, KB-wide high-water mark rather than resetting it to zero.
type Fresh struct {
	varN    int
	skolemN int
}

// NewFresh creates a Fresh generator whose Skolem sequence starts at
// skolemStart (0 for the very first clausification the KB ever performs).
func NewFresh(skolemStart int) *Fresh {
	return &Fresh{skolemN: skolemStart}
}

// NextSkolem reports the counter value that will be used by the next
// Skolem symbol minted — callers persist this after clausifying an axiom
// so later axioms never reuse a Skolem name.
func (fr *Fresh) NextSkolem() int { return fr.skolemN }

func (fr *Fresh) freshVar() string {
	n := fr.varN
	fr.varN++
	return fmt.Sprintf("v_%d", n)
}

func (fr *Fresh) freshSkolemName() string {
	n := fr.skolemN
	fr.skolemN++
	return fmt.Sprintf("sk_%d", n)
}

// Clausify transforms f into a clause set using a fresh local Fresh
// generator seeded at skolemStart, returning the clauses, the updated
// Skolem high-water mark (pass this back as the next call's skolemStart to
// keep Skolem symbols globally distinct), and any error.
func Clausify(f *formula.Formula, skolemStart int) ([]clause.Clause, int, error) {
	fr := NewFresh(skolemStart)

	step1 := eliminateIffImp(f)
	step2 := nnf(step1, true)
	step3 := alphaRename(step2, map[string]string{}, fr)

	free := formula.FreeVars(step3)
	initialUniversals := make([]string, len(free))
	copy(initialUniversals, free)

	step4 := skolemize(step3, initialUniversals, fr)

	lists := distribute(step4)
	clauses := make([]clause.Clause, 0, len(lists))
	for _, lits := range lists {
		c := clause.New(lits...)
		if c.IsTautology() {
			continue
		}
		if containsClause(clauses, c) {
			continue
		}
		clauses = append(clauses, c)
	}
	return clauses, fr.NextSkolem(), nil
}

func containsClause(set []clause.Clause, c clause.Clause) bool {
	for _, existing := range set {
		if sameClause(existing, c) {
			return true
		}
	}
	return false
}

func sameClause(a, b clause.Clause) bool {
	if len(a.Literals) != len(b.Literals) {
		return false
	}
	used := make([]bool, len(b.Literals))
	for _, la := range a.Literals {
		found := false
		for j, lb := range b.Literals {
			if !used[j] && la.Equal(lb) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// --- Step 1: A -> B ≡ ¬A ∨ B ;  A <-> B ≡ (¬A ∨ B) ∧ (A ∨ ¬B) ---

func eliminateIffImp(f *formula.Formula) *formula.Formula {
	switch f.Kind {
	case formula.KindAtom:
		return f
	case formula.KindNot:
		return formula.Not(eliminateIffImp(f.Sub))
	case formula.KindAnd:
		return formula.And(eliminateIffImp(f.L), eliminateIffImp(f.R))
	case formula.KindOr:
		return formula.Or(eliminateIffImp(f.L), eliminateIffImp(f.R))
	case formula.KindImp:
		l := eliminateIffImp(f.L)
		r := eliminateIffImp(f.R)
		return formula.Or(formula.Not(l), r)
	case formula.KindIff:
		l := eliminateIffImp(f.L)
		r := eliminateIffImp(f.R)
		left := formula.Or(formula.Not(l), r)
		right := formula.Or(l, formula.Not(r))
		return formula.And(left, right)
	case formula.KindForAll:
		return formula.ForAll(f.Var, eliminateIffImp(f.Body))
	case formula.KindExists:
		return formula.Exists(f.Var, eliminateIffImp(f.Body))
	}
	return f
}

// --- Step 2: push ¬ to literals ---

func nnf(f *formula.Formula, positive bool) *formula.Formula {
	switch f.Kind {
	case formula.KindAtom:
		if positive {
			return f
		}
		return formula.Atom(f.Lit.Negate())
	case formula.KindNot:
		return nnf(f.Sub, !positive)
	case formula.KindAnd:
		if positive {
			return formula.And(nnf(f.L, true), nnf(f.R, true))
		}
		return formula.Or(nnf(f.L, false), nnf(f.R, false))
	case formula.KindOr:
		if positive {
			return formula.Or(nnf(f.L, true), nnf(f.R, true))
		}
		return formula.And(nnf(f.L, false), nnf(f.R, false))
	case formula.KindForAll:
		if positive {
			return formula.ForAll(f.Var, nnf(f.Body, true))
		}
		return formula.Exists(f.Var, nnf(f.Body, false))
	case formula.KindExists:
		if positive {
			return formula.Exists(f.Var, nnf(f.Body, true))
		}
		return formula.ForAll(f.Var, nnf(f.Body, false))
	}
	return f
}

// --- Step 3: every bound variable gets a globally fresh name ---

// alphaRename operates on the output of nnf, which never contains a Not
// node (negation has already been pushed into literal polarity).
func alphaRename(f *formula.Formula, env map[string]string, fr *Fresh) *formula.Formula {
	switch f.Kind {
	case formula.KindAtom:
		args := make([]term.Term, len(f.Lit.Args))
		for i, a := range f.Lit.Args {
			args[i] = term.Rename(a, env)
		}
		return formula.Atom(formula.Literal{Polarity: f.Lit.Polarity, Pred: f.Lit.Pred, Args: args})
	case formula.KindAnd:
		return formula.And(alphaRename(f.L, env, fr), alphaRename(f.R, env, fr))
	case formula.KindOr:
		return formula.Or(alphaRename(f.L, env, fr), alphaRename(f.R, env, fr))
	case formula.KindForAll, formula.KindExists:
		fresh := fr.freshVar()
		nenv := make(map[string]string, len(env)+1)
		for k, v := range env {
			nenv[k] = v
		}
		nenv[f.Var] = fresh
		body := alphaRename(f.Body, nenv, fr)
		if f.Kind == formula.KindForAll {
			return formula.ForAll(fresh, body)
		}
		return formula.Exists(fresh, body)
	}
	return f
}

// --- Step 4: replace each ∃v by a fresh Skolem term over the enclosing
// universals, folding in step 5/6 (prenex + drop-universals) by simply
// never re-emitting a ForAll node. ---

func skolemize(f *formula.Formula, universals []string, fr *Fresh) *formula.Formula {
	switch f.Kind {
	case formula.KindAtom:
		return f
	case formula.KindAnd:
		return formula.And(skolemize(f.L, universals, fr), skolemize(f.R, universals, fr))
	case formula.KindOr:
		return formula.Or(skolemize(f.L, universals, fr), skolemize(f.R, universals, fr))
	case formula.KindForAll:
		nu := append(append([]string{}, universals...), f.Var)
		return skolemize(f.Body, nu, fr)
	case formula.KindExists:
		name := fr.freshSkolemName()
		var witness term.Term
		if len(universals) == 0 {
			witness = term.Const(name)
		} else {
			args := make([]term.Term, len(universals))
			for i, u := range universals {
				args[i] = term.Var(u)
			}
			witness = term.Func(name, args...)
		}
		sub := term.Substitution{f.Var: witness}
		body := applySubToFormula(f.Body, sub)
		return skolemize(body, universals, fr)
	}
	return f
}

func applySubToFormula(f *formula.Formula, sub term.Substitution) *formula.Formula {
	switch f.Kind {
	case formula.KindAtom:
		return formula.Atom(f.Lit.Apply(sub))
	case formula.KindAnd:
		return formula.And(applySubToFormula(f.L, sub), applySubToFormula(f.R, sub))
	case formula.KindOr:
		return formula.Or(applySubToFormula(f.L, sub), applySubToFormula(f.R, sub))
	case formula.KindForAll:
		return formula.ForAll(f.Var, applySubToFormula(f.Body, sub))
	case formula.KindExists:
		return formula.Exists(f.Var, applySubToFormula(f.Body, sub))
	}
	return f
}

// --- Step 7: distribute ∨ over ∧, then split on the top-level ∧ ---

// distribute operates on the fully Skolemized, quantifier-free tree, which
// contains only Atom/And/Or nodes.
func distribute(f *formula.Formula) [][]formula.Literal {
	switch f.Kind {
	case formula.KindAtom:
		return [][]formula.Literal{{f.Lit}}
	case formula.KindAnd:
		return append(distribute(f.L), distribute(f.R)...)
	case formula.KindOr:
		left := distribute(f.L)
		right := distribute(f.R)
		out := make([][]formula.Literal, 0, len(left)*len(right))
		for _, lc := range left {
			for _, rc := range right {
				merged := make([]formula.Literal, 0, len(lc)+len(rc))
				merged = append(merged, lc...)
				merged = append(merged, rc...)
				out = append(out, merged)
			}
		}
		return out
	}
	return nil
}
