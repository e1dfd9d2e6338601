// Package deck defines the intermediate representation shared by the
// translator pipeline: the layer table, the rule checks, and the RuleDeck
// that carries both from the SVRF front end to the PXL generator.
//
// The IR is deliberately small. It captures exactly what the supported
// rule subset expresses and nothing else, so the generator can be an
// exhaustive switch with no speculative cases.
package deck

import "sort"

// LayerDef binds a symbolic layer name to its GDS layer number and
// datatype. Datatype defaults to 0 when the source omits it.
type LayerDef struct {
	Name     string
	GDSLayer int
	Datatype int
}

// RuleDeck is the complete translation unit: every layer definition and
// every recognized check, in source encounter order. A RuleDeck is built
// once by a Builder and must not be modified afterwards; the generator
// and the scenario runner rely on it being stable.
type RuleDeck struct {
	// Layers holds layer definitions in encounter order. Redefining a
	// name overwrites the earlier definition in place.
	Layers []LayerDef

	// Checks holds rule checks and derived-layer operations in source
	// order. Emission order follows this slice.
	Checks []CheckNode
}

// Layer returns the definition bound to name.
func (d *RuleDeck) Layer(name string) (LayerDef, bool) {
	for _, l := range d.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return LayerDef{}, false
}

// LayersByGDS returns a copy of the layer table sorted by ascending GDS
// layer number, breaking ties by name. This is the order the generator
// emits layer definitions in.
func (d *RuleDeck) LayersByGDS() []LayerDef {
	out := make([]LayerDef, len(d.Layers))
	copy(out, d.Layers)
	sort.Slice(out, func(i, j int) bool {
		if out[i].GDSLayer != out[j].GDSLayer {
			return out[i].GDSLayer < out[j].GDSLayer
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Stats summarizes a RuleDeck for --stats output and run history.
type Stats struct {
	Layers     int `json:"layers"`
	Rules      int `json:"rules"`
	Width      int `json:"width_checks"`
	Spacing    int `json:"spacing_checks"`
	Enclosure  int `json:"enclosure_checks"`
	BooleanOps int `json:"boolean_ops"`
}

// Stats counts the deck's contents by node kind.
func (d *RuleDeck) Stats() Stats {
	s := Stats{Layers: len(d.Layers), Rules: len(d.Checks)}
	for _, c := range d.Checks {
		switch c.(type) {
		case WidthCheck:
			s.Width++
		case SpacingCheck:
			s.Spacing++
		case EnclosureCheck:
			s.Enclosure++
		case BooleanOp:
			s.BooleanOps++
		}
	}
	return s
}
