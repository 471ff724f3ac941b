// Package resolve implements the given-clause resolution-refutation
// engine: clause-set maintenance, literal-pair selection, resolvent
// generation, factoring, subsumption/tautology filtering, termination on
// the empty clause, and proof-trace reconstruction.
package resolve

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"folproof/internal/clause"
	"folproof/internal/formula"
	"folproof/internal/unify"
)

// SourceKind names where a premise clause came from, for trace printing.
type SourceKind int

const (
	SourceAxiom SourceKind = iota
	SourceTheorem
	SourceConclusion
)

// JustKind tags how a clause entered the trace.
type JustKind int

const (
	JustPremise JustKind = iota
	JustResolve
	JustFactor
)

// Justification records a Step's derivation: a premise tagged with its
// source (Axiom(i), Theorem(i), or the negated conclusion), a binary
// resolution Resolve(i, j), or a factoring step Factor(i).
type Justification struct {
	Kind         JustKind
	PremiseKind  SourceKind
	PremiseIndex int // meaningful when PremiseKind is Axiom or Theorem
	From1, From2 int // clause indices; From2 unused for JustFactor
}

func (j Justification) String() string {
	switch j.Kind {
	case JustPremise:
		switch j.PremiseKind {
		case SourceAxiom:
			return fmt.Sprintf("Premise, Axiom %d", j.PremiseIndex)
		case SourceTheorem:
			return fmt.Sprintf("Premise, Theorem %d", j.PremiseIndex)
		default:
			return "Conclusion"
		}
	case JustResolve:
		return fmt.Sprintf("Resolve %d, %d", j.From1, j.From2)
	case JustFactor:
		return fmt.Sprintf("Factor %d", j.From1)
	}
	return "?"
}

// Step is one line of a Proof trace.
type Step struct {
	Index  int
	Clause clause.Clause
	Just   Justification
}

func (s Step) String() string {
	return fmt.Sprintf("%d. %s (%s)", s.Index, s.Clause.String(), s.Just.String())
}

// Input is a premise clause handed to the engine, tagged with its origin.
type Input struct {
	Clause clause.Clause
	Just   Justification
}

// Status is the engine's total result: it always returns exactly one of
// these three.
type Status int

const (
	StatusProof Status = iota
	StatusSaturated
	StatusBudgetExhausted
)

func (s Status) String() string {
	switch s {
	case StatusProof:
		return "Proof"
	case StatusSaturated:
		return "Saturated"
	case StatusBudgetExhausted:
		return "BudgetExhausted"
	}
	return "Unknown"
}

// Budget bounds the saturation loop.
type Budget struct {
	MaxResolvents     int
	MaxProcessed      int
	MaxClauseLiterals int
	MaxTermDepth      int
	Deadline          time.Time // zero value means no deadline
	Parallel          bool      // opt into concurrent resolvent generation
}

// DefaultBudget returns bounds generous enough for textbook examples to
// complete in well under a second.
func DefaultBudget() Budget {
	return Budget{
		MaxResolvents:     20000,
		MaxProcessed:      5000,
		MaxClauseLiterals: 64,
		MaxTermDepth:      32,
	}
}

// Stats reports saturation-loop counters, surfaced by the KB façade to the
// `verbose` command.
type Stats struct {
	ResolventsGenerated int
	ClausesProcessed    int
	Duration            time.Duration
}

// Outcome is the engine's full result.
type Outcome struct {
	Status Status
	Trace  []Step // populated only when Status == StatusProof
	Stats  Stats
}

type poolEntry struct {
	step  Step
	inUse bool // false once evicted by backward subsumption
}

// engine holds the mutable saturation state for one Run call.
type engine struct {
	logger      *zap.Logger
	budget      Budget
	ctx         context.Context
	unprocessed []int // indices into all, in insertion order
	all         []*poolEntry
	resolvents  int
	processed   int
}

// Run saturates premises under budget, returning a total Outcome. ctx, if
// non-nil, is polled once per given-clause iteration in addition to the
// counter/deadline checks, so cancellation is bounded by one iteration's
// work.
func Run(ctx context.Context, premises []Input, budget Budget, logger *zap.Logger) Outcome {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	e := &engine{logger: logger, budget: budget, ctx: ctx}

	status := StatusSaturated
	for _, in := range premises {
		if idx, ok := e.admit(in.Clause, in.Just); ok && e.all[idx].step.Clause.Empty() {
			status = StatusProof
		}
	}
	if status != StatusProof {
		status = e.saturate()
	}

	out := Outcome{
		Status: status,
		Stats: Stats{
			ResolventsGenerated: e.resolvents,
			ClausesProcessed:    e.processed,
			Duration:            time.Since(start),
		},
	}
	if status == StatusProof {
		out.Trace = e.reconstructTrace()
	}
	return out
}

// admit renames c apart using its freshly assigned index as a namespace,
// then — unless it is a tautology or is subsumed by a live clause already
// in the pool — adds it to the pool and (optionally) evicts any live
// clause it backward-subsumes.
func (e *engine) admit(c clause.Clause, just Justification) (int, bool) {
	idx := len(e.all)
	renamed := standardizeApart(c, idx)
	if renamed.IsTautology() {
		return -1, false
	}
	for _, pe := range e.all {
		if pe.inUse && clause.Subsumes(pe.step.Clause, renamed) {
			return -1, false
		}
	}
	entry := &poolEntry{step: Step{Index: idx, Clause: renamed, Just: just}, inUse: true}
	e.all = append(e.all, entry)
	e.unprocessed = append(e.unprocessed, idx)

	for _, other := range e.all[:idx] {
		if other.inUse && clause.Subsumes(renamed, other.step.Clause) {
			other.inUse = false
			e.removeFromUnprocessed(other.step.Index)
		}
	}
	return idx, true
}

func (e *engine) removeFromUnprocessed(idx int) {
	for i, u := range e.unprocessed {
		if u == idx {
			e.unprocessed = append(e.unprocessed[:i], e.unprocessed[i+1:]...)
			return
		}
	}
}

// standardizeApart renames every variable in c to a name namespaced by
// idx, guaranteeing that once admitted, no two pool clauses ever share a
// variable name. Clause variables are universally quantified and locally
// scoped, so the rename never changes meaning, and it makes a per-pair
// rename before each resolution attempt unnecessary.
func standardizeApart(c clause.Clause, idx int) clause.Clause {
	mapping := map[string]string{}
	for _, v := range c.VarNames() {
		mapping[v] = fmt.Sprintf("c%d_%s", idx, v)
	}
	return c.Rename(mapping)
}

// saturate runs the given-clause loop until ⊥ is derived, the pool is
// exhausted, or the budget is spent.
func (e *engine) saturate() Status {
	for len(e.unprocessed) > 0 {
		select {
		case <-e.ctx.Done():
			return StatusBudgetExhausted
		default:
		}
		if !e.budget.Deadline.IsZero() && time.Now().After(e.budget.Deadline) {
			return StatusBudgetExhausted
		}
		if e.budget.MaxProcessed > 0 && e.processed >= e.budget.MaxProcessed {
			return StatusBudgetExhausted
		}

		gIdx := e.pickGivenClause()
		e.removeFromUnprocessed(gIdx)
		e.processed++
		g := e.all[gIdx].step

		if g.Clause.Empty() {
			return StatusProof
		}

		candidates := e.enumerateCandidates(gIdx)
		resolvents := e.computeResolvents(gIdx, candidates)
		for _, rc := range resolvents {
			if e.budget.MaxResolvents > 0 && e.resolvents >= e.budget.MaxResolvents {
				return StatusBudgetExhausted
			}
			if e.budget.MaxClauseLiterals > 0 && len(rc.clause.Literals) > e.budget.MaxClauseLiterals {
				continue
			}
			if e.budget.MaxTermDepth > 0 && exceedsDepth(rc.clause, e.budget.MaxTermDepth) {
				continue
			}
			e.resolvents++
			if newIdx, ok := e.admit(rc.clause, rc.just); ok {
				if e.all[newIdx].step.Clause.Empty() {
					return StatusProof
				}
				if done := e.factorInto(newIdx); done {
					return StatusProof
				}
			}
		}

		if done := e.factorInto(gIdx); done {
			return StatusProof
		}
	}
	return StatusSaturated
}

// pickGivenClause selects the smallest clause in unprocessed, ties broken
// by insertion order.
func (e *engine) pickGivenClause() int {
	best := e.unprocessed[0]
	bestSize := e.all[best].step.Clause.Size()
	for _, idx := range e.unprocessed[1:] {
		if sz := e.all[idx].step.Clause.Size(); sz < bestSize {
			best, bestSize = idx, sz
		}
	}
	return best
}

type candidate struct {
	otherIdx int
	gLit     int
	oLit     int
}

// enumerateCandidates lists every resolvable literal pair between the
// given clause g and every other distinct live clause already processed,
// in clause-then-literal insertion order, so proof traces come out
// deterministic under a fixed budget.
func (e *engine) enumerateCandidates(gIdx int) []candidate {
	g := e.all[gIdx].step.Clause
	var out []candidate
	for _, other := range e.all {
		if !other.inUse || other.step.Index == gIdx {
			continue
		}
		if e.isUnprocessed(other.step.Index) {
			continue
		}
		oc := other.step.Clause
		for gi, gl := range g.Literals {
			for oi, ol := range oc.Literals {
				if gl.ComplementOf(ol) {
					out = append(out, candidate{otherIdx: other.step.Index, gLit: gi, oLit: oi})
				}
			}
		}
	}
	return out
}

func (e *engine) isUnprocessed(idx int) bool {
	for _, u := range e.unprocessed {
		if u == idx {
			return true
		}
	}
	return false
}

type resolventResult struct {
	clause clause.Clause
	just   Justification
}

// computeResolvents unifies each candidate pair and builds the resolvent.
// When budget.Parallel is set, the (pure, independent) unification work is
// farmed out to an errgroup, but results are always re-assembled in the
// deterministic candidate order before the caller admits them, so proof
// traces stay reproducible regardless of scheduling.
func (e *engine) computeResolvents(gIdx int, candidates []candidate) []resolventResult {
	g := e.all[gIdx].step.Clause
	results := make([]*resolventResult, len(candidates))

	build := func(c candidate) *resolventResult {
		other := e.all[c.otherIdx].step.Clause
		gl := g.Literals[c.gLit]
		ol := other.Literals[c.oLit]
		sigma, err := unify.Literals(gl, ol)
		if err != nil {
			return nil
		}
		var lits []formula.Literal
		for i, l := range g.Literals {
			if i == c.gLit {
				continue
			}
			lits = append(lits, l.Apply(sigma))
		}
		for i, l := range other.Literals {
			if i == c.oLit {
				continue
			}
			lits = append(lits, l.Apply(sigma))
		}
		idx1, idx2 := gIdx, c.otherIdx
		if idx1 > idx2 {
			idx1, idx2 = idx2, idx1
		}
		return &resolventResult{clause: clause.New(lits...), just: Justification{Kind: JustResolve, From1: idx1, From2: idx2}}
	}

	if e.budget.Parallel && len(candidates) > 1 {
		grp, _ := errgroup.WithContext(context.Background())
		for i := range candidates {
			i := i
			grp.Go(func() error {
				results[i] = build(candidates[i])
				return nil
			})
		}
		_ = grp.Wait()
	} else {
		for i, c := range candidates {
			results[i] = build(c)
		}
	}

	out := make([]resolventResult, 0, len(candidates))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// factorInto applies the factoring pre-step to the clause at idx: for
// every pair of same-polarity, same-predicate literals
// that unify, the factored (shorter) clause is generated and offered
// alongside the original. Returns true if a factored clause is ⊥.
func (e *engine) factorInto(idx int) bool {
	pe := e.all[idx]
	if !pe.inUse {
		return false
	}
	c := pe.step.Clause
	for i := 0; i < len(c.Literals); i++ {
		for j := i + 1; j < len(c.Literals); j++ {
			sigma, err := unify.LiteralsSamePolarity(c.Literals[i], c.Literals[j])
			if err != nil {
				continue
			}
			factored := c.Apply(sigma)
			if len(factored.Literals) >= len(c.Literals) {
				continue
			}
			if e.budget.MaxResolvents > 0 && e.resolvents >= e.budget.MaxResolvents {
				return false
			}
			e.resolvents++
			if newIdx, ok := e.admit(factored, Justification{Kind: JustFactor, From1: idx}); ok {
				if e.all[newIdx].step.Clause.Empty() {
					return true
				}
			}
		}
	}
	return false
}

func exceedsDepth(c clause.Clause, max int) bool {
	for _, l := range c.Literals {
		for _, a := range l.Args {
			if a.Depth() > max {
				return true
			}
		}
	}
	return false
}

// reconstructTrace walks justification back-references from the derived
// ⊥ to the premises, retaining only ancestors and renumbering them densely
// from 0 in a stable topological order.
func (e *engine) reconstructTrace() []Step {
	emptyIdx := -1
	for _, pe := range e.all {
		if pe.step.Clause.Empty() {
			emptyIdx = pe.step.Index
			break
		}
	}
	if emptyIdx == -1 {
		return nil
	}

	keep := map[int]bool{}
	var walk func(idx int)
	walk = func(idx int) {
		if keep[idx] {
			return
		}
		keep[idx] = true
		j := e.all[idx].step.Just
		switch j.Kind {
		case JustResolve:
			walk(j.From1)
			walk(j.From2)
		case JustFactor:
			walk(j.From1)
		}
	}
	walk(emptyIdx)

	kept := make([]int, 0, len(keep))
	for idx := range keep {
		kept = append(kept, idx)
	}
	sort.Ints(kept)

	renumber := make(map[int]int, len(kept))
	for newIdx, oldIdx := range kept {
		renumber[oldIdx] = newIdx
	}

	steps := make([]Step, len(kept))
	for newIdx, oldIdx := range kept {
		old := e.all[oldIdx].step
		nj := old.Just
		switch nj.Kind {
		case JustResolve:
			nj.From1, nj.From2 = renumber[nj.From1], renumber[nj.From2]
		case JustFactor:
			nj.From1 = renumber[nj.From1]
		}
		steps[newIdx] = Step{Index: newIdx, Clause: old.Clause, Just: nj}
	}
	return steps
}
