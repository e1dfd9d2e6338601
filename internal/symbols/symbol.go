// Package symbols extracts variable definitions from native SVRF and PXL
// decks and reconciles the two symbol tables by name.
package symbols

// Kind classifies how a symbol is defined in its source deck.
type Kind string

const (
	// KindLayer is a physical layer bound to a GDS layer number.
	KindLayer Kind = "layer"
	// KindDerived is a layer computed from other layers.
	KindDerived Kind = "derived"
	// KindCheck is a variable assigned inside a rule block or bound to a
	// comparison expression.
	KindCheck Kind = "check"
)

// Symbol is one variable definition found in a deck. Line is the 1-based
// line of the definition in the source text. LayerNum and Datatype are set
// only for KindLayer symbols.
type Symbol struct {
	Name       string `json:"name"`
	Kind       Kind   `json:"kind"`
	Definition string `json:"definition"`
	Line       int    `json:"line"`
	LayerNum   string `json:"layer_num,omitempty"`
	Datatype   string `json:"datatype,omitempty"`
}

// Table maps symbol names to their definitions. Names are NFC-normalized
// so that visually identical identifiers from differently encoded files
// compare equal.
type Table map[string]Symbol
