package symbols

import (
	"fmt"
	"strings"
)

// Stub renders a PXL fragment covering the given missing symbols, layer
// definitions first as ready-to-paste lines, then derived layers and
// checks as commented translation stubs. The slice order is preserved
// within each section.
func Stub(missing []Symbol) string {
	var b strings.Builder
	b.WriteString("// AUTO-GENERATED: Missing variables to add to ICV file\n")
	b.WriteString("// Generated from Calibre->ICV comparison\n")
	fmt.Fprintf(&b, "// Total missing: %d\n\n", len(missing))

	groups := ByKind(missing)

	if layers := groups[KindLayer]; len(layers) > 0 {
		b.WriteString("// ===== MISSING LAYER DEFINITIONS =====\n")
		for _, s := range layers {
			fmt.Fprintf(&b, "%s = layer(%s, %s);\n", s.Name, s.LayerNum, s.Datatype)
			fmt.Fprintf(&b, "// Original Calibre: %s\n\n", s.Definition)
		}
	}

	if derived := groups[KindDerived]; len(derived) > 0 {
		b.WriteString("\n// ===== MISSING DERIVED LAYERS =====\n")
		for _, s := range derived {
			fmt.Fprintf(&b, "// TODO: Translate this to ICV syntax:\n")
			fmt.Fprintf(&b, "// %s\n", s.Definition)
			fmt.Fprintf(&b, "// %s = ...;\n\n", s.Name)
		}
	}

	if checks := groups[KindCheck]; len(checks) > 0 {
		b.WriteString("\n// ===== MISSING DRC CHECKS =====\n")
		for _, s := range checks {
			fmt.Fprintf(&b, "// TODO: Translate this to ICV syntax:\n")
			fmt.Fprintf(&b, "// %s\n", s.Definition)
			fmt.Fprintf(&b, "// %s = ...;\n", s.Name)
			fmt.Fprintf(&b, "// drc_deck(%s, \"RULE_NAME\", \"Description\");\n\n", s.Name)
		}
	}

	return b.String()
}
