package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/deckport/deckport/internal/deck"
)

// Run is one recorded translation.
type Run struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	InputPath   string     `json:"input_path"`
	OutputPath  string     `json:"output_path"`
	Stats       deck.Stats `json:"stats"`
	Diagnostics int        `json:"diagnostics"`
}

// NewRun builds a Run with a fresh ID and the current time.
func NewRun(inputPath, outputPath string, stats deck.Stats, diagnostics int) Run {
	return Run{
		ID:          uuid.NewString(),
		StartedAt:   time.Now().UTC(),
		InputPath:   inputPath,
		OutputPath:  outputPath,
		Stats:       stats,
		Diagnostics: diagnostics,
	}
}
