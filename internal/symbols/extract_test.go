package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSVRFLayers(t *testing.T) {
	src := "LAYER METAL1 10 DATATYPE 0\nLAYER POLY 5\n"
	table := ExtractSVRF(src)
	require.Len(t, table, 2)

	m1 := table["METAL1"]
	assert.Equal(t, KindLayer, m1.Kind)
	assert.Equal(t, "LAYER METAL1 10 DATATYPE 0", m1.Definition)
	assert.Equal(t, 1, m1.Line)
	assert.Equal(t, "10", m1.LayerNum)
	assert.Equal(t, "0", m1.Datatype)

	poly := table["POLY"]
	assert.Equal(t, "0", poly.Datatype, "missing datatype defaults to zero")
	assert.Equal(t, "LAYER POLY 5 DATATYPE 0", poly.Definition)
	assert.Equal(t, 2, poly.Line)
}

func TestExtractSVRFDerivedAssignments(t *testing.T) {
	src := "LAYER METAL1 10\nLAYER METAL2 11\n\nRESULT = AND METAL1 METAL2\nGAPS = NOT METAL1\n"
	table := ExtractSVRF(src)
	require.Len(t, table, 4)

	res := table["RESULT"]
	assert.Equal(t, KindDerived, res.Kind)
	assert.Equal(t, "RESULT = AND METAL1 METAL2", res.Definition)
	assert.Equal(t, 4, res.Line)
	assert.Equal(t, KindDerived, table["GAPS"].Kind)
}

func TestExtractSVRFRuleBlockAssignmentIsCheck(t *testing.T) {
	src := "W1 {\n    TMP = OR A B\n    WIDTH TMP < 0.5\n}\n"
	table := ExtractSVRF(src)

	tmp, ok := table["TMP"]
	require.True(t, ok)
	assert.Equal(t, KindCheck, tmp.Kind)
	assert.Equal(t, "TMP = OR A B", tmp.Definition)
	assert.Equal(t, 2, tmp.Line)
}

func TestExtractSVRFLayerWinsOverAssignment(t *testing.T) {
	src := "METAL1 = AND A B\nLAYER METAL1 10\n"
	table := ExtractSVRF(src)
	require.Len(t, table, 1)
	assert.Equal(t, KindLayer, table["METAL1"].Kind)
}

func TestExtractSVRFLowercaseOperationIgnored(t *testing.T) {
	table := ExtractSVRF("result = and m1 m2\n")
	assert.Empty(t, table)
}

func TestExtractSVRFDuplicateLayerLastWins(t *testing.T) {
	src := "LAYER METAL1 10\nLAYER METAL1 12\n"
	table := ExtractSVRF(src)
	require.Len(t, table, 1)
	assert.Equal(t, "12", table["METAL1"].LayerNum)
	assert.Equal(t, 2, table["METAL1"].Line)
}

func TestExtractPXLLayers(t *testing.T) {
	src := "POLY = layer(5, 0);\nMETAL1 = layer(10, 0);\n"
	table := ExtractPXL(src)
	require.Len(t, table, 2)

	m1 := table["METAL1"]
	assert.Equal(t, KindLayer, m1.Kind)
	assert.Equal(t, "METAL1 = layer(10, 0);", m1.Definition)
	assert.Equal(t, 2, m1.Line)
	assert.Equal(t, "10", m1.LayerNum)
	assert.Equal(t, "0", m1.Datatype)
}

func TestExtractPXLFunctionCallIsDerived(t *testing.T) {
	table := ExtractPXL("GROWN = grow(METAL1, 0.1);\n")
	g, ok := table["GROWN"]
	require.True(t, ok)
	assert.Equal(t, KindDerived, g.Kind)
	assert.Equal(t, "GROWN = grow(METAL1, 0.1);", g.Definition)
}

func TestExtractPXLComparisonIsCheck(t *testing.T) {
	table := ExtractPXL("NARROW = M1_W < 0.5;\n")
	c, ok := table["NARROW"]
	require.True(t, ok)
	assert.Equal(t, KindCheck, c.Kind)
	assert.Equal(t, "NARROW = M1_W < 0.5;", c.Definition)
}

func TestExtractPXLSkipsViolationVariables(t *testing.T) {
	src := "W1_violations = width(METAL1) < 0.5;\n" +
		"drc_deck(W1_violations, \"W1\", \"Width violation: < 0.5um\");\n"
	table := ExtractPXL(src)
	assert.Empty(t, table)
}

func TestExtractPXLPlainAssignmentIsDerived(t *testing.T) {
	table := ExtractPXL("RESULT = METAL1 and METAL2;\n")
	r, ok := table["RESULT"]
	require.True(t, ok)
	assert.Equal(t, KindDerived, r.Kind)
	assert.Equal(t, "RESULT = METAL1 and METAL2;", r.Definition)
}

func TestExtractNormalizesNames(t *testing.T) {
	// Decomposed E plus combining acute on one side, precomposed on the
	// other. Both must land on the same table key.
	svrf := ExtractSVRF("RÉSULT = AND A B\n")
	pxl := ExtractPXL("RÉSULT = A and B;\n")

	d := Compare(svrf, pxl)
	require.Len(t, d.Matching, 1)
	assert.Equal(t, "RÉSULT", d.Matching[0].Name)
	assert.True(t, d.InSync)
}

func TestExtractRoundTripParity(t *testing.T) {
	svrfSrc := "LAYER METAL1 10\nLAYER METAL2 11\nRESULT = AND METAL1 METAL2\n"
	pxlSrc := "METAL1 = layer(10, 0);\nMETAL2 = layer(11, 0);\n\nRESULT = METAL1 and METAL2;\n"

	d := Compare(ExtractSVRF(svrfSrc), ExtractPXL(pxlSrc))
	assert.True(t, d.InSync)
	assert.Equal(t, 1.0, d.MatchRate)
	assert.Len(t, d.Matching, 3)
}
