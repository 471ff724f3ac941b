// Package kb implements the knowledge base façade: an append-only list of
// axioms and proved theorems, the prove operation that
// clausifies a negated goal and hands everything to the resolution engine,
// and the describe/list/get accessors the interactive shell exposes.
package kb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"folproof/internal/clause"
	"folproof/internal/clausify"
	"folproof/internal/formula"
	"folproof/internal/parser"
	"folproof/internal/rank"
	"folproof/internal/resolve"
)

// Entry is one stored axiom or theorem.
type Entry struct {
	Formula     *formula.Formula
	Description string
	Clauses     []clause.Clause
	// CreatedAt is stamped at insertion and never modified afterward (not
	// even by SetDescription), so `show` can report display-ordering
	// diagnostics independent of index renumbering concerns.
	CreatedAt time.Time
}

// Kind distinguishes the two entry lists for Describe/List/Get.
type Kind int

const (
	KindAxiom Kind = iota
	KindTheorem
)

// Config parameterizes a KB: the embedding backend for premise ranking and
// the cap the premise-selection adapter applies to ranked theorems.
type Config struct {
	Rank rank.Config
	// SelectionLimit caps how many ranked theorems (lemmas) are kept as
	// premises once a goal description is supplied and at least one theorem
	// exists. It does not gate whether the ranker runs at all:
	// axioms are always included unranked, and a goal with no description
	// always narrows to axioms only, regardless of theorem count or
	// SelectionLimit. SelectionLimit <= 0 means no cap: every ranked
	// theorem is kept, having still been routed through the adapter.
	SelectionLimit int
	Budget         resolve.Budget
	// Timeout, when non-zero, bounds each Prove call's wall-clock duration.
	// Budget.Deadline is an absolute time.Time and Budget is held fixed for
	// the KB's lifetime, so Timeout is converted into a fresh deadline on
	// every call instead of being baked into Budget once.
	Timeout time.Duration
}

// KB is the prover's knowledge base.
type KB struct {
	axioms     []Entry
	theorems   []Entry
	skolemHigh int
	engine     rank.Engine
	cfg        Config
	logger     *zap.Logger
}

// New builds a KB with the given configuration.
func New(cfg Config, logger *zap.Logger) (*KB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine, err := rank.NewEngine(cfg.Rank, logger)
	if err != nil {
		return nil, fmt.Errorf("kb: building rank engine: %w", err)
	}
	return &KB{engine: engine, cfg: cfg, logger: logger}, nil
}

// AddAxiom parses src, clausifies it, and appends it to the axiom list,
// returning its index. The Skolem high-water mark is persisted afterward so
// no later axiom or goal ever mints a colliding Skolem symbol.
func (kb *KB) AddAxiom(src, description string) (int, error) {
	f, err := parser.Parse(src)
	if err != nil {
		return 0, fmt.Errorf("kb: parsing axiom: %w", err)
	}
	return kb.addAxiomFormula(f, description)
}

func (kb *KB) addAxiomFormula(f *formula.Formula, description string) (int, error) {
	clauses, nextSkolem, err := clausify.Clausify(f, kb.skolemHigh)
	if err != nil {
		return 0, fmt.Errorf("kb: clausifying axiom: %w", err)
	}
	kb.skolemHigh = nextSkolem
	idx := len(kb.axioms)
	kb.axioms = append(kb.axioms, Entry{Formula: f, Description: description, Clauses: clauses, CreatedAt: time.Now()})
	kb.logger.Debug("axiom added", zap.Int("index", idx), zap.String("formula", f.String()))
	return idx, nil
}

// Result is Prove's total outcome, mirroring resolve.Status but named at
// the KB's vocabulary level.
type Result int

const (
	ResultProof Result = iota
	ResultSaturated
	ResultBudgetExhausted
)

func (r Result) String() string {
	switch r {
	case ResultProof:
		return "Proof"
	case ResultSaturated:
		return "Saturated"
	case ResultBudgetExhausted:
		return "BudgetExhausted"
	}
	return "Unknown"
}

// ProveOutcome is the result of a prove call: the result kind, the trace,
// the engine's counters, and the premise-selection verdict.
type ProveOutcome struct {
	Result Result
	Trace  []resolve.Step
	Stats  resolve.Stats
	// TheoremIndex is set when Result == ResultProof: the index the proved
	// formula was appended to the theorem list under.
	TheoremIndex int
	// SessionID is attached to the logger this call uses, so its log lines
	// can be correlated.
	SessionID uuid.UUID
	// Selection reports which theorem indices the premise-selection adapter
	// kept versus omitted for this call, for the shell's verbose diagnostics.
	Selection Selection
}

// Selection is the premise-selection adapter's verdict on the theorem pool
// for one Prove call: which indices were kept as premises and which were
// left out.
type Selection struct {
	Selected []int
	Omitted  []int
}

// Prove attempts to derive src from the current axioms and theorems: it
// negates the goal, clausifies the negation with a transient (not
// persisted) Skolem-start snapshot, assembles every axiom clause plus the
// premise-selection adapter's chosen theorems as premises, and runs the
// resolution engine. On a Proof result, the original (un-negated) goal
// formula is appended to the theorem list so later proofs can reuse it as
// a lemma.
func (kb *KB) Prove(ctx context.Context, src, description string) (ProveOutcome, error) {
	sessionID := uuid.New()
	logger := kb.logger.With(zap.String("session_id", sessionID.String()))

	f, err := parser.Parse(src)
	if err != nil {
		return ProveOutcome{}, fmt.Errorf("kb: parsing goal: %w", err)
	}

	negated := formula.Not(f)
	goalClauses, _, err := clausify.Clausify(negated, kb.skolemHigh)
	if err != nil {
		return ProveOutcome{}, fmt.Errorf("kb: clausifying negated goal: %w", err)
	}

	premises, selection, err := kb.assemblePremises(ctx, description)
	if err != nil {
		return ProveOutcome{}, err
	}
	for _, c := range goalClauses {
		premises = append(premises, resolve.Input{
			Clause: c,
			Just:   resolve.Justification{Kind: resolve.JustPremise, PremiseKind: resolve.SourceConclusion},
		})
	}

	budget := kb.cfg.Budget
	if kb.cfg.Timeout > 0 {
		budget.Deadline = time.Now().Add(kb.cfg.Timeout)
	}

	logger.Info("prove started", zap.String("goal", f.String()), zap.Int("premises", len(premises)))
	outcome := resolve.Run(ctx, premises, budget, logger)

	result := ProveOutcome{Stats: outcome.Stats, Trace: outcome.Trace, SessionID: sessionID, Selection: selection}
	switch outcome.Status {
	case resolve.StatusProof:
		result.Result = ResultProof
		// Clausify the proved (un-negated) formula itself, with a persisted
		// Skolem high-water mark, so the theorem can contribute its own
		// clauses as a premise the next time it is selected as a lemma.
		theoremClauses, nextSkolem, err := clausify.Clausify(f, kb.skolemHigh)
		if err != nil {
			return ProveOutcome{}, fmt.Errorf("kb: clausifying proved theorem: %w", err)
		}
		kb.skolemHigh = nextSkolem
		idx := len(kb.theorems)
		kb.theorems = append(kb.theorems, Entry{Formula: f, Description: description, Clauses: theoremClauses, CreatedAt: time.Now()})
		result.TheoremIndex = idx
	case resolve.StatusSaturated:
		result.Result = ResultSaturated
	case resolve.StatusBudgetExhausted:
		result.Result = ResultBudgetExhausted
	}
	return result, nil
}

// assemblePremises collects every axiom clause unconditionally, then applies
// the premise-selection adapter to the theorem (lemma) pool: when the goal
// has no description, or no theorems exist yet, selection yields nothing
// and the engine proceeds with axioms only. Otherwise every theorem is
// ranked by cosine similarity to description and the top SelectionLimit are
// kept (SelectionLimit <= 0 means no cap: every ranked theorem is kept,
// having still been routed through the ranker). Axioms are never ranked or
// omitted.
func (kb *KB) assemblePremises(ctx context.Context, description string) ([]resolve.Input, Selection, error) {
	theoremSelected := make([]bool, len(kb.theorems))

	if len(kb.theorems) > 0 && description != "" {
		candidates := make([]rank.Candidate, 0, len(kb.theorems))
		for i, e := range kb.theorems {
			candidates = append(candidates, rank.Candidate{Index: i, Description: e.Description})
		}
		ranked, err := rank.Select(ctx, kb.engine, description, candidates)
		if err != nil {
			return nil, Selection{}, fmt.Errorf("kb: ranking premises: %w", err)
		}
		keep := len(ranked)
		if kb.cfg.SelectionLimit > 0 && kb.cfg.SelectionLimit < keep {
			keep = kb.cfg.SelectionLimit
		}
		for _, idx := range ranked[:keep] {
			theoremSelected[idx] = true
		}
	}

	var selection Selection
	for i, selected := range theoremSelected {
		if selected {
			selection.Selected = append(selection.Selected, i)
		} else {
			selection.Omitted = append(selection.Omitted, i)
		}
	}

	var out []resolve.Input
	for i, e := range kb.axioms {
		for _, c := range e.Clauses {
			out = append(out, resolve.Input{
				Clause: c,
				Just:   resolve.Justification{Kind: resolve.JustPremise, PremiseKind: resolve.SourceAxiom, PremiseIndex: i},
			})
		}
	}
	for i, e := range kb.theorems {
		if !theoremSelected[i] {
			continue
		}
		for _, c := range e.Clauses {
			out = append(out, resolve.Input{
				Clause: c,
				Just:   resolve.Justification{Kind: resolve.JustPremise, PremiseKind: resolve.SourceTheorem, PremiseIndex: i},
			})
		}
	}
	return out, selection, nil
}

// Describe renders the formula and description stored at (kind, index).
func (kb *KB) Describe(kind Kind, index int) (string, error) {
	e, err := kb.Get(kind, index)
	if err != nil {
		return "", err
	}
	if e.Description == "" {
		return e.Formula.String(), nil
	}
	return fmt.Sprintf("%s  -- %s", e.Formula.String(), e.Description), nil
}

// Get returns the entry at (kind, index).
func (kb *KB) Get(kind Kind, index int) (Entry, error) {
	list := kb.list(kind)
	if index < 0 || index >= len(list) {
		return Entry{}, fmt.Errorf("kb: index %d out of range for %d entries", index, len(list))
	}
	return list[index], nil
}

// List returns every entry of the given kind, in insertion order.
func (kb *KB) List(kind Kind) []Entry {
	return kb.list(kind)
}

func (kb *KB) list(kind Kind) []Entry {
	if kind == KindTheorem {
		return kb.theorems
	}
	return kb.axioms
}

// Stats reports the current KB size, surfaced by the `show` command with
// no arguments.
type Stats struct {
	AxiomCount   int
	TheoremCount int
}

func (kb *KB) Stats() Stats {
	return Stats{AxiomCount: len(kb.axioms), TheoremCount: len(kb.theorems)}
}

// SeedAxiom is one entry of a batch load (the --seed flag).
type SeedAxiom struct {
	Formula     string
	Description string
}

// LoadSeed adds every seed axiom, continuing past individual parse/clausify
// failures and combining them with multierr so one malformed entry in a
// large seed file doesn't block the rest from loading.
func (kb *KB) LoadSeed(seed []SeedAxiom) error {
	var errs []error
	for i, s := range seed {
		if _, err := kb.AddAxiom(s.Formula, s.Description); err != nil {
			errs = append(errs, fmt.Errorf("seed axiom %d (%q): %w", i, s.Formula, err))
		}
	}
	return multierr.Combine(errs...)
}

// SetDescription replaces the stored description of an existing entry
// (the `describe <kind> <index> <description>` command). The formula and
// clause set are immutable; only the description may change.
func (kb *KB) SetDescription(kind Kind, index int, description string) error {
	list := kb.list(kind)
	if index < 0 || index >= len(list) {
		return fmt.Errorf("kb: index %d out of range for %d entries", index, len(list))
	}
	list[index].Description = description
	return nil
}
