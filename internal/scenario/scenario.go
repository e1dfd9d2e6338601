// Package scenario runs declarative translation scenarios described in
// YAML files. A scenario feeds one SVRF deck through the translator and
// asserts on the parsed deck, the diagnostics, and the generated output.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one translation test case.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Deck is inline SVRF source. Exactly one of Deck and DeckFile
	// must be set.
	Deck string `yaml:"deck,omitempty"`

	// DeckFile is the path to an SVRF file, resolved relative to the
	// scenario file.
	DeckFile string `yaml:"deck_file,omitempty"`

	// Assertions validate the translation outcome.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one property of a translation.
type Assertion struct {
	// Type selects the assertion:
	//   - "layer_count", "rule_count", "diagnostic_count" compare
	//     against Count
	//   - "output_contains" requires Text to appear in the generated deck
	//   - "layer_order" requires Names to appear, in order, in the
	//     generated layer section (GDS-sorted)
	//   - "rule_order" requires Names to appear, in order, in the
	//     generated checks
	Type string `yaml:"type"`

	Count int      `yaml:"count,omitempty"`
	Text  string   `yaml:"text,omitempty"`
	Names []string `yaml:"names,omitempty"`
}

// Assertion type constants.
const (
	AssertLayerCount      = "layer_count"
	AssertRuleCount       = "rule_count"
	AssertDiagnosticCount = "diagnostic_count"
	AssertOutputContains  = "output_contains"
	AssertLayerOrder      = "layer_order"
	AssertRuleOrder       = "rule_order"
)

// Load reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly, and DeckFile is resolved relative to
// the scenario file before validation.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if s.DeckFile != "" && !filepath.IsAbs(s.DeckFile) {
		s.DeckFile = filepath.Join(filepath.Dir(path), s.DeckFile)
	}

	if err := validate(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &s, nil
}

func validate(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Deck == "" && s.DeckFile == "" {
		return fmt.Errorf("one of deck or deck_file is required")
	}
	if s.Deck != "" && s.DeckFile != "" {
		return fmt.Errorf("deck and deck_file are mutually exclusive")
	}

	if s.DeckFile != "" {
		if _, err := os.Stat(s.DeckFile); os.IsNotExist(err) {
			return fmt.Errorf("deck file not found: %s", s.DeckFile)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}

	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertLayerCount, AssertRuleCount, AssertDiagnosticCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertOutputContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_contains", index)
		}
	case AssertLayerOrder, AssertRuleOrder:
		if len(a.Names) == 0 {
			return fmt.Errorf("assertions[%d]: names list is required for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
