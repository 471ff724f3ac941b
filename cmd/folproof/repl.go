package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"folproof/internal/kb"
)

// repl is the interactive read-eval-print loop: a line-oriented prompt
// accepting axiom/theorem/describe/show/verbose/exit.
type repl struct {
	kb      *kb.KB
	logger  *zap.Logger
	in      *bufio.Reader
	out     io.Writer
	verbose bool
}

func newREPL(store *kb.KB, logger *zap.Logger, in io.Reader, out io.Writer) *repl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &repl{kb: store, logger: logger, in: bufio.NewReader(in), out: out}
}

// Run drives the loop until `exit` or EOF on stdin.
func (r *repl) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Fprint(r.out, ">>> ")
		line, err := r.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, rest := splitCommand(line)
		r.logger.Info("command received", zap.String("command", cmd))
		switch cmd {
		case "axiom":
			r.handleAxiom(rest)
		case "theorem":
			r.handleTheorem(ctx, rest)
		case "describe":
			r.handleDescribe(rest)
		case "show":
			r.handleShow(rest)
		case "verbose":
			r.verbose = !r.verbose
			fmt.Fprintf(r.out, "verbose: %v\n", r.verbose)
		case "exit":
			return nil
		default:
			fmt.Fprintf(r.out, "error: unknown command %q\n", cmd)
		}
	}
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func (r *repl) prompt(label string) string {
	fmt.Fprintf(r.out, "%s", label)
	line, _ := r.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (r *repl) handleAxiom(formula string) {
	if formula == "" {
		fmt.Fprintln(r.out, "error: axiom requires a formula")
		return
	}
	description := r.prompt("Enter description (Optional): ")
	idx, err := r.kb.AddAxiom(formula, description)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "axiom %d added\n", idx)
}

func (r *repl) handleTheorem(ctx context.Context, formula string) {
	if formula == "" {
		fmt.Fprintln(r.out, "error: theorem requires a formula")
		return
	}
	description := r.prompt("Enter description (Optional): ")

	outcome, err := r.kb.Prove(ctx, formula, description)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}

	switch outcome.Result {
	case kb.ResultProof:
		for _, step := range outcome.Trace {
			fmt.Fprintln(r.out, step.String())
		}
		fmt.Fprintf(r.out, "theorem %d added\n", outcome.TheoremIndex)
	case kb.ResultSaturated:
		fmt.Fprintln(r.out, "Proof failed: Saturated")
	case kb.ResultBudgetExhausted:
		fmt.Fprintln(r.out, "Proof failed: BudgetExhausted")
	}

	if r.verbose {
		fmt.Fprintf(r.out, "premise selection: selected theorems %v, omitted %v\n",
			outcome.Selection.Selected, outcome.Selection.Omitted)
		fmt.Fprintf(r.out, "resolvents generated: %d, clauses processed: %d, duration: %s\n",
			outcome.Stats.ResolventsGenerated, outcome.Stats.ClausesProcessed, outcome.Stats.Duration)
	}
}

func (r *repl) handleDescribe(rest string) {
	parts := strings.SplitN(rest, " ", 3)
	if len(parts) < 3 {
		fmt.Fprintln(r.out, "error: describe requires <kind> <index> <description>")
		return
	}
	kind, err := parseKind(parts[0])
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil {
		fmt.Fprintf(r.out, "error: invalid index %q\n", parts[1])
		return
	}
	if err := r.kb.SetDescription(kind, idx, strings.TrimSpace(parts[2])); err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, "description updated")
}

func (r *repl) handleShow(rest string) {
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		stats := r.kb.Stats()
		fmt.Fprintf(r.out, "axioms: %d, theorems: %d\n", stats.AxiomCount, stats.TheoremCount)
		return
	}

	kind, err := parseKind(parts[0])
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}

	if len(parts) == 1 {
		r.showList(kind)
		return
	}

	idx, err := strconv.Atoi(parts[1])
	if err != nil {
		fmt.Fprintf(r.out, "error: invalid index %q\n", parts[1])
		return
	}
	desc, err := r.kb.Describe(kind, idx)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, desc)
}

// showList prints one numbered line per entry: index, formula, description
// (or "<no description>"), clause-set size, and the entry's CreatedAt.
func (r *repl) showList(kind kb.Kind) {
	entries := r.kb.List(kind)
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "(none)")
		return
	}
	for i, e := range entries {
		desc := e.Description
		if desc == "" {
			desc = "<no description>"
		}
		fmt.Fprintf(r.out, "%d. %s -- %s (%d clauses, created %s)\n",
			i, e.Formula.String(), desc, len(e.Clauses), e.CreatedAt.Format(time.RFC3339Nano))
	}
}

func parseKind(s string) (kb.Kind, error) {
	switch strings.ToLower(s) {
	case "axiom", "axioms":
		return kb.KindAxiom, nil
	case "theorem", "theorems":
		return kb.KindTheorem, nil
	default:
		return 0, fmt.Errorf("unknown kind %q (use axiom or theorem)", s)
	}
}
