package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/deckport/deckport/internal/deck"
	"github.com/deckport/deckport/internal/pxl"
	"github.com/deckport/deckport/internal/svrf"
)

// Outcome is the result of running one scenario.
type Outcome struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

func (o *Outcome) addError(msg string) {
	o.Errors = append(o.Errors, msg)
	o.Pass = false
}

// AssertionError describes one failed assertion.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s\n  expected: %s\n  actual: %s", e.Type, e.Expected, e.Actual)
}

// Run translates the scenario's deck and evaluates its assertions. All
// failures, including parse failures, land in the outcome rather than an
// error so that callers can report per-scenario results uniformly.
func Run(s *Scenario, opts pxl.Options) *Outcome {
	outcome := &Outcome{Name: s.Name, Pass: true}

	src := s.Deck
	if s.DeckFile != "" {
		data, err := os.ReadFile(s.DeckFile)
		if err != nil {
			outcome.addError(fmt.Sprintf("read deck file: %v", err))
			return outcome
		}
		src = string(data)
	}

	res, err := svrf.Parse(src)
	if err != nil {
		outcome.addError(fmt.Sprintf("parse deck: %v", err))
		return outcome
	}

	output, err := pxl.Generate(res.Deck, opts)
	if err != nil {
		outcome.addError(fmt.Sprintf("generate output: %v", err))
		return outcome
	}

	for _, a := range s.Assertions {
		if err := evaluate(a, res, output); err != nil {
			outcome.addError(err.Error())
		}
	}

	return outcome
}

func evaluate(a Assertion, res *svrf.Result, output string) error {
	switch a.Type {
	case AssertLayerCount:
		return assertCount(a.Type, a.Count, len(res.Deck.Layers))
	case AssertRuleCount:
		return assertCount(a.Type, a.Count, len(res.Deck.Checks))
	case AssertDiagnosticCount:
		return assertCount(a.Type, a.Count, len(res.Diagnostics))
	case AssertOutputContains:
		if !strings.Contains(output, a.Text) {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("output contains %q", a.Text),
				Actual:   "not found",
			}
		}
		return nil
	case AssertLayerOrder:
		return assertOrder(a.Type, a.Names, layerNames(res.Deck))
	case AssertRuleOrder:
		return assertOrder(a.Type, a.Names, ruleNames(res.Deck))
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertCount(typ string, expected, actual int) error {
	if actual != expected {
		return &AssertionError{
			Type:     typ,
			Expected: fmt.Sprintf("%d", expected),
			Actual:   fmt.Sprintf("%d", actual),
		}
	}
	return nil
}

// assertOrder checks that expected names appear as a subsequence of
// actual, so a scenario can pin the relative order of a few names
// without listing every one.
func assertOrder(typ string, expected, actual []string) error {
	next := 0
	for _, name := range actual {
		if next < len(expected) && name == expected[next] {
			next++
		}
	}
	if next != len(expected) {
		return &AssertionError{
			Type:     typ,
			Expected: fmt.Sprintf("names in order: %v", expected),
			Actual:   fmt.Sprintf("missing or out of order: %s (got %v)", expected[next], actual),
		}
	}
	return nil
}

// layerNames is the generated layer section order, which sorts by GDS
// layer number.
func layerNames(d *deck.RuleDeck) []string {
	layers := d.LayersByGDS()
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = l.Name
	}
	return names
}

// ruleNames is the generated check order, which preserves source order.
func ruleNames(d *deck.RuleDeck) []string {
	names := make([]string, len(d.Checks))
	for i, c := range d.Checks {
		names[i] = c.Name()
	}
	return names
}
