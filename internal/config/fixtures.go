package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FixtureInstruction is the on-disk shape of one seed instruction: a
// "row" instruction sets ID (often a placeholder string), an "update"
// instruction leaves ID set to the row being modified. cmd/relgraph
// translates these into relgraph.SeedRow/SeedUpdate after loading, so
// this package never depends on the root module.
type FixtureInstruction struct {
	Kind  string         `yaml:"kind"` // "row" or "update"
	Table string         `yaml:"table"`
	ID    string         `yaml:"id,omitempty"`
	Value map[string]any `yaml:"value"`
}

// LoadFixtures parses a seed fixtures file: an ordered instruction
// sequence given a concrete wire format.
func LoadFixtures(path string) ([]FixtureInstruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read fixtures %s: %w", path, err)
	}
	var out []FixtureInstruction
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("config: parse fixtures %s: %w", path, err)
	}
	return out, nil
}
