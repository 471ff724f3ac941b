package config

import (
	"fmt"
	"time"

	"folproof/internal/resolve"
)

// ProverLimits bounds the resolution engine's saturation loop.
type ProverLimits struct {
	MaxResolvents     int  `yaml:"max_resolvents" json:"max_resolvents"`
	MaxProcessed      int  `yaml:"max_processed" json:"max_processed"`
	MaxClauseLiterals int  `yaml:"max_clause_literals" json:"max_clause_literals"`
	MaxTermDepth      int  `yaml:"max_term_depth" json:"max_term_depth"`
	DeadlineSeconds   int  `yaml:"deadline_seconds" json:"deadline_seconds"` // 0 means no deadline
	Parallel          bool `yaml:"parallel" json:"parallel"`
}

// DefaultProverLimits mirrors resolve.DefaultBudget.
func DefaultProverLimits() ProverLimits {
	d := resolve.DefaultBudget()
	return ProverLimits{
		MaxResolvents:     d.MaxResolvents,
		MaxProcessed:      d.MaxProcessed,
		MaxClauseLiterals: d.MaxClauseLiterals,
		MaxTermDepth:      d.MaxTermDepth,
	}
}

// Validate checks that limits are within acceptable ranges.
func (l ProverLimits) Validate() error {
	if l.MaxResolvents < 1 {
		return fmt.Errorf("max_resolvents must be >= 1")
	}
	if l.MaxProcessed < 1 {
		return fmt.Errorf("max_processed must be >= 1")
	}
	if l.MaxClauseLiterals < 1 {
		return fmt.Errorf("max_clause_literals must be >= 1")
	}
	if l.MaxTermDepth < 1 {
		return fmt.Errorf("max_term_depth must be >= 1")
	}
	return nil
}

// ToBudget converts configuration limits into the engine's resolve.Budget.
// Deadline is left zero here deliberately: it is an absolute time.Time, and
// this Budget value is reused across every Prove call for the life of a KB,
// so a fixed deadline baked in here would only ever be valid for the first
// call. Callers that want the configured deadline enforced should call
// Timeout() and add it to time.Now() fresh before each Run.
func (l ProverLimits) ToBudget() resolve.Budget {
	return resolve.Budget{
		MaxResolvents:     l.MaxResolvents,
		MaxProcessed:      l.MaxProcessed,
		MaxClauseLiterals: l.MaxClauseLiterals,
		MaxTermDepth:      l.MaxTermDepth,
		Parallel:          l.Parallel,
	}
}

// Timeout converts DeadlineSeconds into a time.Duration (0 meaning no
// deadline), for callers to turn into a fresh per-call resolve.Budget.Deadline.
func (l ProverLimits) Timeout() time.Duration {
	if l.DeadlineSeconds <= 0 {
		return 0
	}
	return time.Duration(l.DeadlineSeconds) * time.Second
}
