// Package pxl renders a deck.RuleDeck as target rule-language text.
//
// Rendering is deterministic: layer definitions sort by ascending GDS
// layer number (name tie-break), checks keep their source encounter
// order, and no timestamps or environment details are embedded. The
// same deck always renders to byte-identical output.
package pxl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deckport/deckport/internal/deck"
)

// Options adjust the rendered text. Zero values select the defaults.
type Options struct {
	// Include is the runtime header pulled in at the top of the deck.
	// Defaults to icv.rh.
	Include string

	// Unit is the measurement unit suffix embedded in violation
	// descriptions. Defaults to um.
	Unit string
}

func (o Options) withDefaults() Options {
	if o.Include == "" {
		o.Include = "icv.rh"
	}
	if o.Unit == "" {
		o.Unit = "um"
	}
	return o
}

const bannerLine = "// ============================================================================\n"

// Generate renders the deck to complete target text: header banner,
// layer section, rule section, footer. The deck is not modified.
func Generate(d *deck.RuleDeck, opts Options) (string, error) {
	opts = opts.withDefaults()

	var b strings.Builder
	writeHeader(&b, opts.Include)
	writeLayers(&b, d)
	if err := writeChecks(&b, d, opts.Unit); err != nil {
		return "", err
	}
	writeFooter(&b)
	return b.String(), nil
}

func writeHeader(b *strings.Builder, include string) {
	b.WriteString(bannerLine)
	b.WriteString("// Automatically generated by deckport\n")
	b.WriteString(bannerLine)
	b.WriteString("// This file was translated from Calibre SVRF format\n")
	b.WriteString("// Manual review and validation recommended\n")
	b.WriteString(bannerLine)
	b.WriteByte('\n')
	fmt.Fprintf(b, "#include <%s>\n", include)
	b.WriteByte('\n')
}

func writeLayers(b *strings.Builder, d *deck.RuleDeck) {
	writeSection(b, "LAYER DEFINITIONS")
	for _, l := range d.LayersByGDS() {
		fmt.Fprintf(b, "%s = layer(%d, %d);\n", l.Name, l.GDSLayer, l.Datatype)
	}
	b.WriteByte('\n')
}

func writeChecks(b *strings.Builder, d *deck.RuleDeck, unit string) error {
	writeSection(b, "DRC RULES")
	for _, c := range d.Checks {
		if err := writeCheck(b, c, unit); err != nil {
			return err
		}
		b.WriteByte('\n')
	}
	return nil
}

// writeCheck renders one node. The switch is exhaustive over the
// sealed node set; the default arm only fires if a new variant is
// added without a rendering.
func writeCheck(b *strings.Builder, c deck.CheckNode, unit string) error {
	switch n := c.(type) {
	case deck.WidthCheck:
		writeComment(b, n.Comment)
		v := formatValue(n.Value)
		fmt.Fprintf(b, "%s_violations = width(%s) %s %s;\n", n.Rule, n.Layer, n.Op, v)
		fmt.Fprintf(b, "drc_deck(%s_violations, %q, \"Width violation: %s %s%s\");\n",
			n.Rule, n.Rule, n.Op, v, unit)

	case deck.SpacingCheck:
		writeComment(b, n.Comment)
		v := formatValue(n.Value)
		fmt.Fprintf(b, "%s_violations = external_distance(%s, %s) %s %s;\n",
			n.Rule, n.Layer, n.Layer, n.Op, v)
		fmt.Fprintf(b, "drc_deck(%s_violations, %q, \"Spacing violation: %s %s%s\");\n",
			n.Rule, n.Rule, n.Op, v, unit)

	case deck.EnclosureCheck:
		writeComment(b, n.Comment)
		v := formatValue(n.Value)
		fmt.Fprintf(b, "%s_violations = external_enclosure(%s, %s) %s %s;\n",
			n.Rule, n.Outer, n.Inner, n.Op, v)
		fmt.Fprintf(b, "drc_deck(%s_violations, %q, \"Enclosure violation: %s %s%s\");\n",
			n.Rule, n.Rule, n.Op, v, unit)

	case deck.BooleanOp:
		writeComment(b, n.Comment)
		op := strings.ToLower(string(n.Op))
		if n.Right != "" {
			fmt.Fprintf(b, "%s = %s %s %s;\n", n.Result, n.Left, op, n.Right)
		} else {
			fmt.Fprintf(b, "%s = %s %s;\n", n.Result, op, n.Left)
		}

	default:
		return fmt.Errorf("render check: unsupported node type %T", c)
	}
	return nil
}

func writeFooter(b *strings.Builder) {
	b.WriteString(bannerLine)
	b.WriteString("// END OF DRC DECK\n")
	b.WriteString(bannerLine)
}

func writeSection(b *strings.Builder, title string) {
	b.WriteString(bannerLine)
	fmt.Fprintf(b, "// %s\n", title)
	b.WriteString(bannerLine)
	b.WriteByte('\n')
}

func writeComment(b *strings.Builder, comment string) {
	if comment != "" {
		fmt.Fprintf(b, "// %s\n", comment)
	}
}

// formatValue renders a check value in its shortest exact decimal
// form, so 0.5 stays 0.5 rather than 0.500000.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
