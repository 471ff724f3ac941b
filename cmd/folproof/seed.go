package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"folproof/internal/config"
	"folproof/internal/kb"
	"folproof/internal/rank"
)

func toRankConfig(e config.EmbeddingConfig) rank.Config {
	return rank.Config{
		Provider:       e.Provider,
		GenAIAPIKey:    e.GenAIAPIKey,
		GenAIModel:     e.GenAIModel,
		TaskType:       e.TaskType,
		OllamaEndpoint: e.OllamaEndpoint,
		OllamaModel:    e.OllamaModel,
	}
}

// seedFile is the on-disk shape of a --seed YAML file: a flat list of
// axioms to load before the prompt is shown.
type seedFile struct {
	Axioms []kb.SeedAxiom `yaml:"axioms"`
}

func loadSeedFile(path string) ([]kb.SeedAxiom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sf.Axioms, nil
}
