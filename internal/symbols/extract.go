package symbols

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Extraction is regex-based and best-effort: it reads the native deck text
// directly, without going through the translator front end, so it also
// works on hand-edited decks the parser would reject.
// ident matches an identifier. Combining marks are accepted so that
// decomposed accented names extract intact before NFC folds them.
const ident = `([\p{L}\p{M}\p{N}_]+)`

var (
	svrfLayerRe  = regexp.MustCompile(`(?m)^\s*LAYER\s+` + ident + `\s+(\d+)(?:\s+DATATYPE\s+(\d+))?`)
	svrfAssignRe = regexp.MustCompile(`(?m)^\s*` + ident + `\s*=\s*([A-Z]+)\s+(.+)$`)
	svrfBlockRe  = regexp.MustCompile(`(?m)^\s*` + ident + `\s*\{[^}]*\}`)

	pxlLayerRe  = regexp.MustCompile(`(?m)^\s*` + ident + `\s*=\s*layer\s*\(\s*(\d+)\s*,\s*(\d+)\s*\)\s*;`)
	pxlCallRe   = regexp.MustCompile(`(?m)^\s*` + ident + `\s*=\s*([a-z_]+)\s*\(([^;]+)\)\s*;`)
	pxlCmpRe    = regexp.MustCompile(`(?m)^\s*` + ident + `\s*=\s*(.+?)\s*([<>=!]+)\s*([^;]+)\s*;`)
	pxlAssignRe = regexp.MustCompile(`(?m)^\s*` + ident + `\s*=\s*([^;<>=!]+);`)
)

// ExtractSVRF scans SVRF deck text for symbol definitions. Layer
// declarations win over assignments of the same name, and assignments
// inside rule blocks are classified as checks before the remaining
// top-level assignments are taken as derived layers.
func ExtractSVRF(src string) Table {
	table := Table{}

	for _, idx := range svrfLayerRe.FindAllStringSubmatchIndex(src, -1) {
		name := norm.NFC.String(group(src, idx, 1))
		num := group(src, idx, 2)
		dt := group(src, idx, 3)
		if dt == "" {
			dt = "0"
		}
		table[name] = Symbol{
			Name:       name,
			Kind:       KindLayer,
			Definition: fmt.Sprintf("LAYER %s %s DATATYPE %s", name, num, dt),
			Line:       lineAt(src, idx[0]),
			LayerNum:   num,
			Datatype:   dt,
		}
	}

	for _, bidx := range svrfBlockRe.FindAllStringSubmatchIndex(src, -1) {
		block := src[bidx[0]:bidx[1]]
		for _, idx := range svrfAssignRe.FindAllStringSubmatchIndex(block, -1) {
			name := norm.NFC.String(group(block, idx, 1))
			if _, ok := table[name]; ok {
				continue
			}
			op := group(block, idx, 2)
			args := strings.TrimSpace(group(block, idx, 3))
			table[name] = Symbol{
				Name:       name,
				Kind:       KindCheck,
				Definition: fmt.Sprintf("%s = %s %s", name, op, args),
				Line:       lineAt(src, bidx[0]+idx[0]),
			}
		}
	}

	for _, idx := range svrfAssignRe.FindAllStringSubmatchIndex(src, -1) {
		name := norm.NFC.String(group(src, idx, 1))
		if _, ok := table[name]; ok {
			continue
		}
		op := group(src, idx, 2)
		args := strings.TrimSpace(group(src, idx, 3))
		table[name] = Symbol{
			Name:       name,
			Kind:       KindDerived,
			Definition: fmt.Sprintf("%s = %s %s", name, op, args),
			Line:       lineAt(src, idx[0]),
		}
	}

	return table
}

// ExtractPXL scans PXL deck text for symbol definitions. Comparison
// assignments whose left expression is a bare measurement call are the
// generated violation variables; those are not symbols of the deck and
// are skipped.
func ExtractPXL(src string) Table {
	table := Table{}

	for _, idx := range pxlLayerRe.FindAllStringSubmatchIndex(src, -1) {
		name := norm.NFC.String(group(src, idx, 1))
		num := group(src, idx, 2)
		dt := group(src, idx, 3)
		table[name] = Symbol{
			Name:       name,
			Kind:       KindLayer,
			Definition: fmt.Sprintf("%s = layer(%s, %s);", name, num, dt),
			Line:       lineAt(src, idx[0]),
			LayerNum:   num,
			Datatype:   dt,
		}
	}

	for _, idx := range pxlCallRe.FindAllStringSubmatchIndex(src, -1) {
		name := norm.NFC.String(group(src, idx, 1))
		if _, ok := table[name]; ok {
			continue
		}
		op := group(src, idx, 2)
		args := strings.TrimSpace(group(src, idx, 3))
		table[name] = Symbol{
			Name:       name,
			Kind:       KindDerived,
			Definition: fmt.Sprintf("%s = %s(%s);", name, op, args),
			Line:       lineAt(src, idx[0]),
		}
	}

	for _, idx := range pxlCmpRe.FindAllStringSubmatchIndex(src, -1) {
		name := norm.NFC.String(group(src, idx, 1))
		if _, ok := table[name]; ok {
			continue
		}
		expr := strings.TrimSpace(group(src, idx, 2))
		if strings.Contains(expr, "(") && strings.HasSuffix(expr, ")") {
			continue
		}
		op := group(src, idx, 3)
		value := strings.TrimSpace(group(src, idx, 4))
		table[name] = Symbol{
			Name:       name,
			Kind:       KindCheck,
			Definition: fmt.Sprintf("%s = %s %s %s;", name, expr, op, value),
			Line:       lineAt(src, idx[0]),
		}
	}

	for _, idx := range pxlAssignRe.FindAllStringSubmatchIndex(src, -1) {
		name := norm.NFC.String(group(src, idx, 1))
		if _, ok := table[name]; ok {
			continue
		}
		rhs := strings.TrimSpace(group(src, idx, 2))
		table[name] = Symbol{
			Name:       name,
			Kind:       KindDerived,
			Definition: fmt.Sprintf("%s = %s;", name, rhs),
			Line:       lineAt(src, idx[0]),
		}
	}

	return table
}

func group(src string, idx []int, n int) string {
	lo, hi := idx[2*n], idx[2*n+1]
	if lo < 0 {
		return ""
	}
	return src[lo:hi]
}

func lineAt(src string, offset int) int {
	return strings.Count(src[:offset], "\n") + 1
}
