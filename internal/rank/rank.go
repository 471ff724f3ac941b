// Package rank implements the premise-selection adapter: a pure function
// from a goal description and a set of candidate lemma descriptions to a
// ranked preference order, backed by a pluggable embedding engine and
// cosine similarity.
package rank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

// Engine generates vector embeddings for text. Any backend that can embed
// a string is pluggable here.
type Engine interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	Name() string
}

// Config selects and parameterizes an Engine.
type Config struct {
	Provider string // "hash" (deterministic, no network), "genai", "ollama"

	GenAIAPIKey string
	GenAIModel  string
	TaskType    string

	OllamaEndpoint string
	OllamaModel    string
}

// DefaultConfig selects the dependency-free hash backend, so `prove` works
// offline and deterministically out of the box; Provider can be switched to
// "genai" or "ollama" for semantic ranking over larger knowledge bases.
func DefaultConfig() Config {
	return Config{
		Provider:       "hash",
		GenAIModel:     "gemini-embedding-001",
		TaskType:       "RETRIEVAL_QUERY",
		OllamaEndpoint: "http://localhost:11434",
		OllamaModel:    "embeddinggemma",
	}
}

// NewEngine builds an Engine per cfg.Provider.
func NewEngine(cfg Config, logger *zap.Logger) (Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Provider {
	case "", "hash":
		return newHashEngine(), nil
	case "genai":
		return newGenAIEngine(cfg.GenAIAPIKey, cfg.GenAIModel, cfg.TaskType, logger)
	case "ollama":
		return newOllamaEngine(cfg.OllamaEndpoint, cfg.OllamaModel, logger), nil
	default:
		return nil, fmt.Errorf("rank: unsupported provider %q (use hash, genai, or ollama)", cfg.Provider)
	}
}

// CosineSimilarity calculates the cosine similarity between two vectors in
// [-1, 1]; 0 if either is a zero vector.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("rank: vector dimension mismatch: %d != %d", len(a), len(b))
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// Candidate is one selectable lemma, identified by its index into the
// caller's axiom/theorem list.
type Candidate struct {
	Index       int
	Description string
}

// Select embeds goalDescription and every candidate's description, then
// returns candidate indices ordered by descending cosine similarity to the
// goal. Ties keep the caller's input order.
func Select(ctx context.Context, engine Engine, goalDescription string, candidates []Candidate) ([]int, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	goalVec, err := engine.Embed(ctx, goalDescription)
	if err != nil {
		return nil, fmt.Errorf("rank: embedding goal: %w", err)
	}

	type scored struct {
		idx   int
		order int
		score float64
	}
	scores := make([]scored, len(candidates))
	for i, c := range candidates {
		vec, err := engine.Embed(ctx, c.Description)
		if err != nil {
			return nil, fmt.Errorf("rank: embedding candidate %d: %w", c.Index, err)
		}
		sim, err := CosineSimilarity(goalVec, vec)
		if err != nil {
			return nil, err
		}
		scores[i] = scored{idx: c.Index, order: i, score: sim}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	out := make([]int, len(scores))
	for i, s := range scores {
		out[i] = s.idx
	}
	return out, nil
}
