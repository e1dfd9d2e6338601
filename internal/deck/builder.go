package deck

// Builder accumulates layers and checks during parsing and produces an
// independent RuleDeck. The zero value is not usable; call NewBuilder.
type Builder struct {
	layers []LayerDef
	index  map[string]int
	checks []CheckNode
}

func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// AddLayer records a layer definition. Redefining an existing name
// overwrites it in place, keeping the original position in the table.
func (b *Builder) AddLayer(def LayerDef) {
	if i, ok := b.index[def.Name]; ok {
		b.layers[i] = def
		return
	}
	b.index[def.Name] = len(b.layers)
	b.layers = append(b.layers, def)
}

// AddCheck appends a check in source order.
func (b *Builder) AddCheck(c CheckNode) {
	b.checks = append(b.checks, c)
}

// Build returns a RuleDeck holding copies of the accumulated state, so
// further Builder use cannot alias the returned deck.
func (b *Builder) Build() *RuleDeck {
	d := &RuleDeck{
		Layers: make([]LayerDef, len(b.layers)),
		Checks: make([]CheckNode, len(b.checks)),
	}
	copy(d.Layers, b.layers)
	copy(d.Checks, b.checks)
	return d
}
