package symbols

import "sort"

// Match pairs the two definitions of a symbol present in both decks.
type Match struct {
	Name   string `json:"name"`
	Source Symbol `json:"source"`
	Target Symbol `json:"target"`
}

// Diff is the name-set comparison of two symbol tables. All slices are
// sorted by symbol name. MatchRate is the fraction of source symbols that
// also appear in the target, zero when the source table is empty.
type Diff struct {
	Matching    []Match  `json:"matching"`
	SourceOnly  []Symbol `json:"source_only"`
	TargetOnly  []Symbol `json:"target_only"`
	TotalSource int      `json:"total_source"`
	TotalTarget int      `json:"total_target"`
	MatchRate   float64  `json:"match_rate"`
	InSync      bool     `json:"in_sync"`
}

// Compare reconciles source against target by symbol name.
func Compare(source, target Table) Diff {
	d := Diff{TotalSource: len(source), TotalTarget: len(target)}

	for _, name := range sortedNames(source) {
		if tgt, ok := target[name]; ok {
			d.Matching = append(d.Matching, Match{Name: name, Source: source[name], Target: tgt})
		} else {
			d.SourceOnly = append(d.SourceOnly, source[name])
		}
	}
	for _, name := range sortedNames(target) {
		if _, ok := source[name]; !ok {
			d.TargetOnly = append(d.TargetOnly, target[name])
		}
	}

	if d.TotalSource > 0 {
		d.MatchRate = float64(len(d.Matching)) / float64(d.TotalSource)
	}
	d.InSync = len(d.SourceOnly) == 0 && len(d.TargetOnly) == 0
	return d
}

// ByKind groups symbols by kind, preserving the order of the input slice
// within each group.
func ByKind(syms []Symbol) map[Kind][]Symbol {
	groups := make(map[Kind][]Symbol)
	for _, s := range syms {
		groups[s.Kind] = append(groups[s.Kind], s)
	}
	return groups
}

func sortedNames(t Table) []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
