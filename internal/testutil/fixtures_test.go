package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckport/deckport/internal/report"
	"github.com/deckport/deckport/internal/svrf"
)

func TestSampleDeckParsesClean(t *testing.T) {
	res, err := svrf.Parse(SampleDeck)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, SampleDeckStats(), res.Deck.Stats())
}

func TestSampleReportsMatch(t *testing.T) {
	cal, err := report.ParseCalibre(strings.NewReader(SampleCalibreReport))
	require.NoError(t, err)
	icv, err := report.ParseICV(strings.NewReader(SampleICVLog))
	require.NoError(t, err)

	result := report.NewComparator(0).Compare(cal, icv)
	assert.True(t, result.PerfectMatch)
	assert.Len(t, result.Matching, 2)
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "deck.svrf", SampleDeck)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SampleDeck, string(data))
}
