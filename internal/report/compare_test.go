package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareWithinToleranceMatches(t *testing.T) {
	cal := map[string][]Violation{
		"M1.W.1": {{Rule: "M1.W.1", X: 10.5, Y: 20.3, Shape: ShapePolygon}},
	}
	icv := map[string][]Violation{
		"M1.W.1": {{Rule: "M1.W.1", X: 10.5003, Y: 20.2997, Shape: ShapeUnknown}},
	}

	res := NewComparator(0.001).Compare(cal, icv)

	require.Len(t, res.Matching, 1)
	assert.Equal(t, RuleCount{Rule: "M1.W.1", Count: 1}, res.Matching[0])
	assert.True(t, res.PerfectMatch)
	assert.Equal(t, 1, res.TotalCalibre)
	assert.Equal(t, 1, res.TotalICV)
}

func TestCompareToleranceIsStrict(t *testing.T) {
	cal := map[string][]Violation{"R": {{Rule: "R", X: 0, Y: 0}}}
	icv := map[string][]Violation{"R": {{Rule: "R", X: 0.001, Y: 0}}}

	res := NewComparator(0.001).Compare(cal, icv)

	require.Len(t, res.Mismatched, 1)
	assert.Equal(t, "locations differ", res.Mismatched[0].Reason)
	assert.False(t, res.PerfectMatch)
}

func TestCompareCountsDiffer(t *testing.T) {
	cal := map[string][]Violation{"R": {{Rule: "R", X: 1, Y: 1}, {Rule: "R", X: 2, Y: 2}}}
	icv := map[string][]Violation{"R": {{Rule: "R", X: 1, Y: 1}}}

	res := NewComparator(0).Compare(cal, icv)

	require.Len(t, res.Mismatched, 1)
	assert.Equal(t, Mismatch{Rule: "R", CalibreCount: 2, ICVCount: 1, Reason: "counts differ"}, res.Mismatched[0])
	assert.Equal(t, 2, res.TotalCalibre)
	assert.Equal(t, 1, res.TotalICV)
}

func TestCompareRulesPresentOnOneSideOnly(t *testing.T) {
	cal := map[string][]Violation{"ONLY_CAL": {{Rule: "ONLY_CAL", X: 1, Y: 1}}}
	icv := map[string][]Violation{"ONLY_ICV": {{Rule: "ONLY_ICV", X: 2, Y: 2}}}

	res := NewComparator(0).Compare(cal, icv)

	require.Len(t, res.OnlyCalibre, 1)
	assert.Equal(t, "ONLY_CAL", res.OnlyCalibre[0].Rule)
	require.Len(t, res.OnlyICV, 1)
	assert.Equal(t, "ONLY_ICV", res.OnlyICV[0].Rule)
	assert.False(t, res.PerfectMatch)
}

func TestCompareOrdersRulesByName(t *testing.T) {
	cal := map[string][]Violation{
		"Z_RULE": {{Rule: "Z_RULE", X: 1, Y: 1}},
		"A_RULE": {{Rule: "A_RULE", X: 2, Y: 2}},
	}
	icv := map[string][]Violation{
		"Z_RULE": {{Rule: "Z_RULE", X: 1, Y: 1}},
		"A_RULE": {{Rule: "A_RULE", X: 2, Y: 2}},
	}

	res := NewComparator(0).Compare(cal, icv)

	require.Len(t, res.Matching, 2)
	assert.Equal(t, "A_RULE", res.Matching[0].Rule)
	assert.Equal(t, "Z_RULE", res.Matching[1].Rule)
	assert.True(t, res.PerfectMatch)
}

func TestCompareUnorderedViolationsStillMatch(t *testing.T) {
	cal := map[string][]Violation{"R": {
		{Rule: "R", X: 1, Y: 1},
		{Rule: "R", X: 2, Y: 2},
	}}
	icv := map[string][]Violation{"R": {
		{Rule: "R", X: 2.0002, Y: 1.9999},
		{Rule: "R", X: 0.9999, Y: 1.0001},
	}}

	res := NewComparator(0.001).Compare(cal, icv)
	assert.True(t, res.PerfectMatch)
}

func TestNewComparatorDefaultTolerance(t *testing.T) {
	c := NewComparator(0)
	assert.Equal(t, DefaultTolerance, c.tolerance)

	c = NewComparator(-1)
	assert.Equal(t, DefaultTolerance, c.tolerance)

	c = NewComparator(0.01)
	assert.Equal(t, 0.01, c.tolerance)
}

func TestCompareEmptyInputsIsPerfect(t *testing.T) {
	res := NewComparator(0).Compare(nil, nil)
	assert.True(t, res.PerfectMatch)
	assert.Zero(t, res.TotalCalibre)
	assert.Zero(t, res.TotalICV)
}
