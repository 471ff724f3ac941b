// Package main implements the folproof CLI: an interactive first-order
// logic theorem prover driven by a line-oriented read-eval-print loop.
//
// The root command wires up configuration, logging, and the knowledge base,
// then hands control to the REPL (repl.go) unless a subcommand was given.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"folproof/internal/config"
	"folproof/internal/kb"
	"folproof/internal/logging"
)

var (
	verbose        bool
	workspace      string
	seedPath       string
	budgetSteps    int
	selectionLimit int

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "folproof",
	Short: "folproof - an interactive first-order logic theorem prover",
	Long: `folproof is an interactive first-order logic theorem prover.

Register axioms, pose theorems, and watch resolution refutation search for
a proof. Proved theorems are added to the knowledge base so later proofs
may reuse them as lemmas.

Run without arguments to start the interactive prompt.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		ws := workspace
		if ws == "" {
			ws, _ = os.Getwd()
		}
		cfg, err = config.Load(filepath.Join(ws, ".folproof.yaml"))
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if verbose {
			cfg.Logging.Verbose = true
		}
		if budgetSteps > 0 {
			cfg.Limits.MaxProcessed = budgetSteps
		}
		if selectionLimit > 0 {
			cfg.Selection.Limit = selectionLimit
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Limits.Validate(); err != nil {
			return fmt.Errorf("invalid resource limits: %w", err)
		}

		store, err := kb.New(kb.Config{
			Rank:           toRankConfig(cfg.Embedding),
			SelectionLimit: cfg.Selection.Limit,
			Budget:         cfg.Limits.ToBudget(),
			Timeout:        cfg.Limits.Timeout(),
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to start ranker: %w", err)
		}

		if seedPath != "" {
			seed, err := loadSeedFile(seedPath)
			if err != nil {
				return fmt.Errorf("failed to load seed file %s: %w", seedPath, err)
			}
			if err := store.LoadSeed(seed); err != nil {
				fmt.Fprintf(os.Stderr, "warning: some seed axioms failed to load: %v\n", err)
			}
		}

		repl := newREPL(store, logger, os.Stdin, os.Stdout)
		return repl.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&seedPath, "seed", "", "YAML file of {formula, description} axioms to load before the prompt")
	rootCmd.PersistentFlags().IntVar(&budgetSteps, "budget-steps", 0, "override the maximum number of processed clauses per proof (0: use config default)")
	rootCmd.PersistentFlags().IntVar(&selectionLimit, "selection-limit", 0, "cap the number of ranked theorems used as premises per proof (0: use config default)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the folproof version",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := "1.0.0"
		if cfg != nil {
			v = cfg.Version
		}
		fmt.Println(v)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
