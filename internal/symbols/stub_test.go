package symbols

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestStubGolden(t *testing.T) {
	missing := []Symbol{
		{Name: "M2", Kind: KindLayer, Definition: "LAYER M2 11 DATATYPE 0", LayerNum: "11", Datatype: "0"},
		{Name: "VIA1", Kind: KindLayer, Definition: "LAYER VIA1 15 DATATYPE 0", LayerNum: "15", Datatype: "0"},
		{Name: "RESULT", Kind: KindDerived, Definition: "RESULT = AND METAL1 METAL2"},
		{Name: "TMP", Kind: KindCheck, Definition: "TMP = OR A B"},
	}

	g := newGoldie(t)
	g.Assert(t, "missing_stub", []byte(Stub(missing)))
}

func TestStubEmpty(t *testing.T) {
	out := Stub(nil)
	assert.Equal(t, "// AUTO-GENERATED: Missing variables to add to ICV file\n"+
		"// Generated from Calibre->ICV comparison\n"+
		"// Total missing: 0\n\n", out)
}

func TestStubOmitsEmptySections(t *testing.T) {
	out := Stub([]Symbol{{Name: "X", Kind: KindCheck, Definition: "X = OR A B"}})
	assert.NotContains(t, out, "MISSING LAYER DEFINITIONS")
	assert.NotContains(t, out, "MISSING DERIVED LAYERS")
	assert.Contains(t, out, "// ===== MISSING DRC CHECKS =====\n")
	assert.Contains(t, out, "// drc_deck(X, \"RULE_NAME\", \"Description\");\n")
}
