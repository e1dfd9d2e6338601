// Package svrf parses the supported subset of the source rule language
// into the deck IR: layer declarations, brace-delimited rule blocks
// holding one measurement check, and top-level boolean layer
// assignments.
//
// The front end is permissive by contract. A statement that does not
// match a supported form is skipped and reported as a Diagnostic, never
// aborting the rest of the deck. The one fatal condition is a numeric
// literal that looks like a number but does not parse; that aborts the
// run with a ParseError.
package svrf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deckport/deckport/internal/deck"
)

// Source keywords.
const (
	kwLayer    = "LAYER"
	kwWidth    = "WIDTH"
	kwExternal = "EXTERNAL"
	kwInternal = "INTERNAL"
	kwEnc      = "ENC"
)

// Result is a completed parse: the built deck plus every skip recorded
// along the way.
type Result struct {
	Deck        *deck.RuleDeck
	Diagnostics []Diagnostic
}

// Parse builds a RuleDeck from raw source text. The returned error is
// non-nil only for fatal conditions; recoverable problems are skipped
// and land in Result.Diagnostics with their line numbers.
func Parse(src string) (*Result, error) {
	stmts, diags := segment(src)
	p := &parser{builder: deck.NewBuilder(), diags: diags}

	for _, s := range stmts {
		var err error
		switch s.Kind {
		case StmtLayer:
			p.parseLayer(s)
		case StmtBlock:
			err = p.parseBlock(s)
		case StmtAssign:
			p.parseAssign(s)
		}
		if err != nil {
			return nil, err
		}
	}
	return &Result{Deck: p.builder.Build(), Diagnostics: p.diags}, nil
}

type parser struct {
	builder *deck.Builder
	diags   []Diagnostic
}

func (p *parser) diag(line int, context, reason string) {
	p.diags = append(p.diags, Diagnostic{Line: line, Context: context, Reason: reason})
}

// parseLayer handles "LAYER NAME NUMBER [NUMBER]". Tokens past the
// optional datatype are ignored. A malformed declaration is skipped; it
// never aborts the run.
func (p *parser) parseLayer(s Statement) {
	tokens := lexStatement(s.Text, s.Line)

	if tokens[1].Type != TokenIdent {
		p.diag(s.Line, "layer declaration", "missing layer name")
		return
	}
	name := tokens[1].Lexeme

	if tokens[2].Type != TokenNumber {
		p.diag(s.Line, fmt.Sprintf("layer declaration %q", name), "missing GDS layer number")
		return
	}
	gds, err := strconv.Atoi(tokens[2].Lexeme)
	if err != nil {
		p.diag(s.Line, fmt.Sprintf("layer declaration %q", name),
			fmt.Sprintf("GDS layer %q is not an integer", tokens[2].Lexeme))
		return
	}

	datatype := 0
	if tokens[3].Type == TokenNumber {
		datatype, err = strconv.Atoi(tokens[3].Lexeme)
		if err != nil {
			p.diag(s.Line, fmt.Sprintf("layer declaration %q", name),
				fmt.Sprintf("datatype %q is not an integer", tokens[3].Lexeme))
			return
		}
	}

	p.builder.AddLayer(deck.LayerDef{Name: name, GDSLayer: gds, Datatype: datatype})
}

// parseBlock classifies a rule block by the first check keyword present
// in its body, in fixed priority order, then parses that check's form.
// A block whose body has several keywords is read as the highest
// priority one only.
func (p *parser) parseBlock(s Statement) error {
	context := "rule block"
	if s.Name != "" {
		context = fmt.Sprintf("rule block %q", s.Name)
	}
	if s.Name == "" {
		p.diag(s.Line, context, "missing rule name before the opening brace")
		return nil
	}

	tokens := lexStatement(s.Text, s.Line)
	switch classify(tokens) {
	case kwWidth:
		return p.parseMeasure(s, tokens, context, kwWidth)
	case kwExternal:
		return p.parseMeasure(s, tokens, context, kwExternal)
	case kwInternal:
		return p.parseMeasure(s, tokens, context, kwInternal)
	case kwEnc:
		return p.parseEnclosure(s, tokens, context)
	default:
		p.diag(s.Line, context, "body contains no supported check keyword")
		return nil
	}
}

// classify returns the highest-priority check keyword appearing as a
// token in the body, or "" when none does. Priority is fixed: WIDTH,
// then EXTERNAL, then INTERNAL, then ENC.
func classify(tokens []Token) string {
	present := make(map[string]bool, 4)
	for _, t := range tokens {
		if t.Type == TokenIdent {
			switch t.Lexeme {
			case kwWidth, kwExternal, kwInternal, kwEnc:
				present[t.Lexeme] = true
			}
		}
	}
	for _, kw := range []string{kwWidth, kwExternal, kwInternal, kwEnc} {
		if present[kw] {
			return kw
		}
	}
	return ""
}

// parseMeasure scans for "KW LAYER OP NUMBER" at each occurrence of the
// keyword and builds the corresponding check from the first occurrence
// that fits. Width and both spacing kinds share this shape.
func (p *parser) parseMeasure(s Statement, tokens []Token, context, kw string) error {
	for i := 0; i+3 < len(tokens); i++ {
		if tokens[i].Type != TokenIdent || tokens[i].Lexeme != kw {
			continue
		}
		if tokens[i+1].Type != TokenIdent || tokens[i+2].Type != TokenOp {
			continue
		}
		op, ok := deck.ParseCompareOp(tokens[i+2].Lexeme)
		if !ok {
			p.diag(s.Line, context,
				fmt.Sprintf("unsupported comparison operator %q", tokens[i+2].Lexeme))
			return nil
		}
		if tokens[i+3].Type != TokenNumber {
			continue
		}
		value, err := parseValue(tokens[i+3], context)
		if err != nil {
			return err
		}

		layer := tokens[i+1].Lexeme
		switch kw {
		case kwWidth:
			p.builder.AddCheck(deck.WidthCheck{
				Rule: s.Name, Layer: layer, Op: op, Value: value, Comment: s.Comment,
			})
		case kwExternal:
			p.builder.AddCheck(deck.SpacingCheck{
				Rule: s.Name, Layer: layer, Kind: deck.SpacingExternal, Op: op, Value: value, Comment: s.Comment,
			})
		case kwInternal:
			p.builder.AddCheck(deck.SpacingCheck{
				Rule: s.Name, Layer: layer, Kind: deck.SpacingInternal, Op: op, Value: value, Comment: s.Comment,
			})
		}
		return nil
	}
	p.diag(s.Line, context, "body does not match the "+kw+" check form")
	return nil
}

// parseEnclosure scans for "ENC OUTER INNER OP NUMBER".
func (p *parser) parseEnclosure(s Statement, tokens []Token, context string) error {
	for i := 0; i+4 < len(tokens); i++ {
		if tokens[i].Type != TokenIdent || tokens[i].Lexeme != kwEnc {
			continue
		}
		if tokens[i+1].Type != TokenIdent || tokens[i+2].Type != TokenIdent || tokens[i+3].Type != TokenOp {
			continue
		}
		op, ok := deck.ParseCompareOp(tokens[i+3].Lexeme)
		if !ok {
			p.diag(s.Line, context,
				fmt.Sprintf("unsupported comparison operator %q", tokens[i+3].Lexeme))
			return nil
		}
		if tokens[i+4].Type != TokenNumber {
			continue
		}
		value, err := parseValue(tokens[i+4], context)
		if err != nil {
			return err
		}

		p.builder.AddCheck(deck.EnclosureCheck{
			Rule:    s.Name,
			Outer:   tokens[i+1].Lexeme,
			Inner:   tokens[i+2].Lexeme,
			Op:      op,
			Value:   value,
			Comment: s.Comment,
		})
		return nil
	}
	p.diag(s.Line, context, "body does not match the "+kwEnc+" check form")
	return nil
}

// parseAssign handles "RESULT = OP OPERAND [OPERAND] [@ comment]" with
// a case-insensitive boolean keyword. NOT takes one operand; a second
// operand after NOT, like any trailing text, is ignored.
func (p *parser) parseAssign(s Statement) {
	text := s.Text
	comment := ""
	if at := strings.Index(text, "@"); at >= 0 {
		comment = strings.TrimSpace(text[at+1:])
		text = text[:at]
	}

	tokens := lexStatement(text, s.Line)
	if tokens[0].Type != TokenIdent || tokens[1].Type != TokenAssign {
		p.diag(s.Line, fmt.Sprintf("assignment %q", clip(s.Text)), "left-hand side is not a plain name")
		return
	}
	result := tokens[0].Lexeme
	context := fmt.Sprintf("assignment %q", result)

	if tokens[2].Type != TokenIdent {
		p.diag(s.Line, context, "right-hand side is not a boolean layer operation")
		return
	}
	op, ok := deck.ParseBoolOp(tokens[2].Lexeme)
	if !ok {
		p.diag(s.Line, context, "right-hand side is not a boolean layer operation")
		return
	}

	if tokens[3].Type != TokenIdent {
		p.diag(s.Line, context, "missing operand after "+string(op))
		return
	}
	left := tokens[3].Lexeme

	right := ""
	if op != deck.BoolNot && tokens[4].Type == TokenIdent {
		right = tokens[4].Lexeme
	}

	p.builder.AddCheck(deck.BooleanOp{
		Result: result, Op: op, Left: left, Right: right, Comment: comment,
	})
}

// parseValue converts a NUMBER token to float64. Failure here is the
// one fatal parse condition: the statement was recognized and the
// token is numeric in shape, so dropping it would silently change the
// deck's meaning.
func parseValue(t Token, context string) (float64, error) {
	v, err := strconv.ParseFloat(t.Lexeme, 64)
	if err != nil {
		return 0, &ParseError{
			Line:    t.Line,
			Context: context,
			Message: fmt.Sprintf("invalid numeric literal %q", t.Lexeme),
		}
	}
	return v, nil
}
