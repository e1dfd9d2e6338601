// Package testutil provides shared deck and report fixtures for command
// tests. The fixtures are small but exercise every statement form the
// translator supports, so command-level tests don't each invent their
// own deck dialect.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deckport/deckport/internal/deck"
)

// SampleDeck exercises every supported SVRF statement form: layer
// declarations with and without DATATYPE, annotated and plain rule
// blocks of all three check kinds, and boolean layer assignments.
const SampleDeck = `// Process layer map
LAYER POLY 5
LAYER METAL1 10
LAYER METAL2 11 DATATYPE 0
LAYER VIA1 15

M1_WIDTH { @ Minimum METAL1 width
    WIDTH METAL1 < 0.5
}

M1_SPACE {
    EXTERNAL METAL1 < 0.4
}

V1_ENC {
    ENC VIA1 METAL1 >= 0.1
}

STACK = AND METAL1 METAL2
INV = NOT POLY @ poly-free regions
`

// SampleDeckStats is what SampleDeck parses to.
func SampleDeckStats() deck.Stats {
	return deck.Stats{Layers: 4, Rules: 5, Width: 1, Spacing: 1, Enclosure: 1, BooleanOps: 2}
}

// SampleCalibreReport and SampleICVLog describe the same violations,
// each ICV coordinate offset from its Calibre partner by less than the
// default tolerance, so comparing them is a perfect match.
const SampleCalibreReport = `DRC RESULTS DATABASE deck.results
RULECHECK M1.W.1 .......................... TOTAL Result Count = 2
POLYGON (10.5 20.3)
POLYGON (31.2 8.7)
RULECHECK V1.ENC.1 ........................ TOTAL Result Count = 1
EDGE (1.25 -4.5)
`

const SampleICVLog = `IC Validator DRC summary
M1.W.1 violation at (10.5003, 20.2997)
M1.W.1 violation at (31.2001, 8.7002)
V1.ENC.1 violation at (1.2498, -4.4997)
`

// WriteFile writes content under dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
