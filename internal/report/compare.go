package report

import (
	"math"
	"sort"
)

// DefaultTolerance is the coordinate tolerance applied when none is
// configured: 0.001 units, one nanometer at micron scale.
const DefaultTolerance = 0.001

// RuleCount pairs a rule name with how many violations it reported.
type RuleCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// Mismatch describes a rule present in both reports whose violations
// do not line up.
type Mismatch struct {
	Rule         string `json:"rule"`
	CalibreCount int    `json:"calibre_count"`
	ICVCount     int    `json:"icv_count"`
	Reason       string `json:"reason"`
}

// Result is a full comparison: rule buckets sorted by rule name, so
// the same inputs always produce the same report.
type Result struct {
	Matching     []RuleCount `json:"matching_rules"`
	Mismatched   []Mismatch  `json:"mismatched_rules"`
	OnlyCalibre  []RuleCount `json:"only_calibre"`
	OnlyICV      []RuleCount `json:"only_icv"`
	TotalCalibre int         `json:"total_calibre"`
	TotalICV     int         `json:"total_icv"`
	PerfectMatch bool        `json:"perfect_match"`
}

// Comparator matches violations by rule name and coordinate proximity.
type Comparator struct {
	tolerance float64
}

// NewComparator builds a Comparator. Tolerances at or below zero fall
// back to DefaultTolerance.
func NewComparator(tolerance float64) *Comparator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Comparator{tolerance: tolerance}
}

// Compare reconciles the two per-rule violation maps. A rule matches
// when both tools report it, the counts agree, and every violation on
// the Calibre side has an ICV violation within tolerance on both axes.
func (c *Comparator) Compare(cal, icv map[string][]Violation) Result {
	var res Result

	names := make(map[string]struct{}, len(cal)+len(icv))
	for rule := range cal {
		names[rule] = struct{}{}
	}
	for rule := range icv {
		names[rule] = struct{}{}
	}
	rules := make([]string, 0, len(names))
	for rule := range names {
		rules = append(rules, rule)
	}
	sort.Strings(rules)

	for _, rule := range rules {
		calViols, inCal := cal[rule]
		icvViols, inICV := icv[rule]
		res.TotalCalibre += len(calViols)
		res.TotalICV += len(icvViols)

		switch {
		case !inICV:
			res.OnlyCalibre = append(res.OnlyCalibre, RuleCount{Rule: rule, Count: len(calViols)})
		case !inCal:
			res.OnlyICV = append(res.OnlyICV, RuleCount{Rule: rule, Count: len(icvViols)})
		case len(calViols) != len(icvViols):
			res.Mismatched = append(res.Mismatched, Mismatch{
				Rule:         rule,
				CalibreCount: len(calViols),
				ICVCount:     len(icvViols),
				Reason:       "counts differ",
			})
		case c.allMatched(calViols, icvViols):
			res.Matching = append(res.Matching, RuleCount{Rule: rule, Count: len(calViols)})
		default:
			res.Mismatched = append(res.Mismatched, Mismatch{
				Rule:         rule,
				CalibreCount: len(calViols),
				ICVCount:     len(icvViols),
				Reason:       "locations differ",
			})
		}
	}

	res.PerfectMatch = len(res.Mismatched) == 0 &&
		len(res.OnlyCalibre) == 0 &&
		len(res.OnlyICV) == 0
	return res
}

func (c *Comparator) allMatched(calViols, icvViols []Violation) bool {
	for _, cv := range calViols {
		found := false
		for _, iv := range icvViols {
			if math.Abs(cv.X-iv.X) < c.tolerance && math.Abs(cv.Y-iv.Y) < c.tolerance {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
