package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSplitsByPresence(t *testing.T) {
	source := Table{
		"A": {Name: "A", Kind: KindLayer},
		"B": {Name: "B", Kind: KindDerived},
		"C": {Name: "C", Kind: KindDerived},
		"D": {Name: "D", Kind: KindCheck},
	}
	target := Table{
		"B": {Name: "B", Kind: KindDerived},
		"C": {Name: "C", Kind: KindDerived},
		"E": {Name: "E", Kind: KindLayer},
	}

	d := Compare(source, target)

	assert.Equal(t, 4, d.TotalSource)
	assert.Equal(t, 3, d.TotalTarget)
	require.Len(t, d.Matching, 2)
	assert.Equal(t, "B", d.Matching[0].Name)
	assert.Equal(t, "C", d.Matching[1].Name)
	require.Len(t, d.SourceOnly, 2)
	assert.Equal(t, "A", d.SourceOnly[0].Name)
	assert.Equal(t, "D", d.SourceOnly[1].Name)
	require.Len(t, d.TargetOnly, 1)
	assert.Equal(t, "E", d.TargetOnly[0].Name)
	assert.InDelta(t, 0.5, d.MatchRate, 1e-9)
	assert.False(t, d.InSync)
}

func TestCompareEmptySource(t *testing.T) {
	d := Compare(Table{}, Table{"X": {Name: "X"}})
	assert.Zero(t, d.MatchRate)
	assert.Zero(t, d.TotalSource)
	assert.False(t, d.InSync)
}

func TestCompareInSync(t *testing.T) {
	tbl := Table{"A": {Name: "A"}, "B": {Name: "B"}}
	d := Compare(tbl, tbl)
	assert.True(t, d.InSync)
	assert.Equal(t, 1.0, d.MatchRate)
	assert.Empty(t, d.SourceOnly)
	assert.Empty(t, d.TargetOnly)
}

func TestByKindPreservesOrderWithinGroups(t *testing.T) {
	syms := []Symbol{
		{Name: "A", Kind: KindDerived},
		{Name: "B", Kind: KindLayer},
		{Name: "C", Kind: KindDerived},
	}
	groups := ByKind(syms)
	require.Len(t, groups[KindDerived], 2)
	assert.Equal(t, "A", groups[KindDerived][0].Name)
	assert.Equal(t, "C", groups[KindDerived][1].Name)
	require.Len(t, groups[KindLayer], 1)
	assert.Empty(t, groups[KindCheck])
}
