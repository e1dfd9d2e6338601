package svrf

import (
	"fmt"
	"strings"
)

// StatementKind classifies a logical statement produced by the
// segmenter. Blank lines and whole-line comments never surface as
// statements.
type StatementKind int

const (
	StmtLayer StatementKind = iota
	StmtBlock
	StmtAssign
)

// Statement is one logical statement in source order. For layer
// declarations and assignments Text is the trimmed physical line. For
// rule blocks Text is the body between the braces (annotation excised,
// physical newlines kept so token lines stay accurate), Name the text
// before the opening brace, and Comment the @-annotation from the
// opening line.
type Statement struct {
	Kind    StatementKind
	Line    int
	Text    string
	Name    string
	Comment string
}

// segment splits stripped source into statements, tracking brace depth
// across physical lines for rule blocks. Statements come back in strict
// source order; unclassifiable non-blank lines become diagnostics.
func segment(src string) ([]Statement, []Diagnostic) {
	stripped, diags := stripBlockComments(src)
	lines := strings.Split(stripped, "\n")

	var stmts []Statement
	i := 0
	for i < len(lines) {
		lineNo := i + 1
		trimmed := strings.TrimSpace(lines[i])

		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			i++
			continue
		}
		if fields := strings.Fields(trimmed); fields[0] == "LAYER" {
			stmts = append(stmts, Statement{Kind: StmtLayer, Line: lineNo, Text: trimmed})
			i++
			continue
		}
		if strings.Contains(trimmed, "{") {
			stmt, next := collectBlock(lines, i)
			stmts = append(stmts, stmt)
			i = next
			continue
		}
		if strings.Contains(trimmed, "=") {
			stmts = append(stmts, Statement{Kind: StmtAssign, Line: lineNo, Text: trimmed})
			i++
			continue
		}
		diags = append(diags, Diagnostic{
			Line:    lineNo,
			Context: fmt.Sprintf("statement %q", clip(trimmed)),
			Reason:  "does not match any supported form",
		})
		i++
	}
	return stmts, diags
}

// collectBlock gathers a brace-delimited rule block starting at line
// index start. Depth is counted on raw lines, so a block left open runs
// to end of input, body included as far as it got. Returns the block
// and the index of the first line after it.
func collectBlock(lines []string, start int) (Statement, int) {
	raw := lines[start]
	brace := strings.Index(raw, "{")

	head := raw[:brace]
	if at := strings.Index(head, "@"); at >= 0 {
		head = head[:at]
	}
	name := strings.TrimSpace(head)

	// Annotation on the opening line: between @ and the closing brace,
	// or to end of line. Excised from the body so its words are never
	// mistaken for check keywords.
	opening := raw[brace+1:]
	comment := ""
	if at := strings.Index(opening, "@"); at >= 0 {
		rest := opening[at+1:]
		end := len(rest)
		if close := strings.Index(rest, "}"); close >= 0 {
			end = close
		}
		comment = strings.TrimSpace(rest[:end])
		opening = opening[:at] + rest[end:]
	}

	depth := strings.Count(raw, "{") - strings.Count(raw, "}")
	var body strings.Builder
	body.WriteString(opening)

	i := start + 1
	for i < len(lines) && depth > 0 {
		body.WriteByte('\n')
		body.WriteString(lines[i])
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		i++
	}

	return Statement{
		Kind:    StmtBlock,
		Line:    start + 1,
		Text:    body.String(),
		Name:    name,
		Comment: comment,
	}, i
}

// stripBlockComments removes /* ... */ spans before segmentation.
// Nesting is not supported: the first */ closes. Newlines inside a
// span are kept so later line numbers still point at the original
// source. An unterminated span is stripped to end of input.
func stripBlockComments(src string) (string, []Diagnostic) {
	var b strings.Builder
	var diags []Diagnostic
	line := 1
	i := 0
	for i < len(src) {
		if src[i] == '/' && i+1 < len(src) && src[i+1] == '*' {
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				diags = append(diags, Diagnostic{
					Line:    line,
					Context: "block comment",
					Reason:  "unterminated, stripped to end of input",
				})
				for ; i < len(src); i++ {
					if src[i] == '\n' {
						b.WriteByte('\n')
					}
				}
				break
			}
			stop := i + 2 + end + 2
			for ; i < stop; i++ {
				if src[i] == '\n' {
					b.WriteByte('\n')
					line++
				}
			}
			continue
		}
		if src[i] == '\n' {
			line++
		}
		b.WriteByte(src[i])
		i++
	}
	return b.String(), diags
}

func clip(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
