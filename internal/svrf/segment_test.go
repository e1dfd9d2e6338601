package svrf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentClassifiesStatements(t *testing.T) {
	src := `LAYER METAL1 10

// a comment line
RESULT = AND METAL1 METAL2
W1 { WIDTH METAL1 < 0.5 }
`
	stmts, diags := segment(src)
	require.Empty(t, diags)
	require.Len(t, stmts, 3)

	assert.Equal(t, StmtLayer, stmts[0].Kind)
	assert.Equal(t, 1, stmts[0].Line)

	assert.Equal(t, StmtAssign, stmts[1].Kind)
	assert.Equal(t, 4, stmts[1].Line)

	assert.Equal(t, StmtBlock, stmts[2].Kind)
	assert.Equal(t, 5, stmts[2].Line)
	assert.Equal(t, "W1", stmts[2].Name)
}

func TestSegmentCollectsMultiLineBlock(t *testing.T) {
	src := `M1_W { @ annotation
    WIDTH METAL1 < 0.25
}
LAYER NEXT 5
`
	stmts, diags := segment(src)
	require.Empty(t, diags)
	require.Len(t, stmts, 2)

	block := stmts[0]
	assert.Equal(t, StmtBlock, block.Kind)
	assert.Equal(t, "M1_W", block.Name)
	assert.Equal(t, "annotation", block.Comment)
	assert.Contains(t, block.Text, "WIDTH METAL1 < 0.25")
	assert.NotContains(t, block.Text, "annotation")

	assert.Equal(t, StmtLayer, stmts[1].Kind)
	assert.Equal(t, 4, stmts[1].Line)
}

func TestSegmentTracksNestedBraces(t *testing.T) {
	src := `OUTER {
    INNER {
        WIDTH METAL1 < 0.5
    }
}
LAYER AFTER 1
`
	stmts, _ := segment(src)
	require.Len(t, stmts, 2)
	assert.Equal(t, StmtBlock, stmts[0].Kind)
	assert.Equal(t, "OUTER", stmts[0].Name)
	assert.Equal(t, StmtLayer, stmts[1].Kind)
	assert.Equal(t, 6, stmts[1].Line)
}

func TestSegmentAnnotationDelimitedByClosingBrace(t *testing.T) {
	stmts, _ := segment("W1 { @ Min width }\n")
	require.Len(t, stmts, 1)
	assert.Equal(t, "W1", stmts[0].Name)
	assert.Equal(t, "Min width", stmts[0].Comment)
}

func TestSegmentUnterminatedBlockRunsToEnd(t *testing.T) {
	src := `W1 {
    WIDTH METAL1 < 0.5
`
	stmts, _ := segment(src)
	require.Len(t, stmts, 1)
	assert.Equal(t, StmtBlock, stmts[0].Kind)
	assert.Contains(t, stmts[0].Text, "WIDTH METAL1 < 0.5")
}

func TestStripBlockCommentsPreservesLineNumbers(t *testing.T) {
	src := "a /* one\ntwo\nthree */ b\nc"
	out, diags := stripBlockComments(src)
	assert.Empty(t, diags)
	assert.Equal(t, "a \n\n b\nc", out)
}

func TestStripBlockCommentsJoinsAdjacentText(t *testing.T) {
	out, diags := stripBlockComments("LAYER/*x*/M1 10")
	assert.Empty(t, diags)
	assert.Equal(t, "LAYERM1 10", out)
}

func TestStripBlockCommentsFirstCloseWins(t *testing.T) {
	// Nested comments are not supported: the first */ closes.
	out, _ := stripBlockComments("/* outer /* inner */ rest")
	assert.Equal(t, " rest", out)
}

func TestStripBlockCommentsUnterminated(t *testing.T) {
	out, diags := stripBlockComments("keep\n/* lost\nlost too")
	assert.Equal(t, "keep\n\n", out)
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Line)
}
