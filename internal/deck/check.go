package deck

import "strings"

// CheckNode is the closed set of rule constructs the translator emits.
// Exactly four types implement it: WidthCheck, SpacingCheck,
// EnclosureCheck, and BooleanOp. The unexported marker method seals the
// set so the generator's type switch is exhaustive by construction.
type CheckNode interface {
	checkNode()

	// Name returns the identifier the construct introduces: the rule
	// name for geometric checks, the result layer for boolean ops.
	Name() string
}

// CompareOp is a comparison operator in a geometric check. Only the six
// listed operators are valid; the parser rejects anything else before a
// node is built.
type CompareOp string

const (
	OpLT CompareOp = "<"
	OpGT CompareOp = ">"
	OpLE CompareOp = "<="
	OpGE CompareOp = ">="
	OpEQ CompareOp = "=="
	OpNE CompareOp = "!="
)

// ParseCompareOp validates s against the closed operator set.
func ParseCompareOp(s string) (CompareOp, bool) {
	switch op := CompareOp(s); op {
	case OpLT, OpGT, OpLE, OpGE, OpEQ, OpNE:
		return op, true
	}
	return "", false
}

// SpacingKind records which source keyword produced a SpacingCheck. Both
// kinds render identically, but the distinction is preserved so it is
// not lost between parse and generate.
type SpacingKind string

const (
	SpacingExternal SpacingKind = "external"
	SpacingInternal SpacingKind = "internal"
)

// BoolOp is a boolean layer operation keyword, stored canonically
// upper-case regardless of source spelling.
type BoolOp string

const (
	BoolAnd BoolOp = "AND"
	BoolOr  BoolOp = "OR"
	BoolNot BoolOp = "NOT"
)

// ParseBoolOp recognizes AND, OR and NOT case-insensitively.
func ParseBoolOp(s string) (BoolOp, bool) {
	switch op := BoolOp(strings.ToUpper(s)); op {
	case BoolAnd, BoolOr, BoolNot:
		return op, true
	}
	return "", false
}

// WidthCheck is a minimum/maximum width constraint on a single layer.
type WidthCheck struct {
	Rule    string
	Layer   string
	Op      CompareOp
	Value   float64
	Comment string
}

// SpacingCheck is a spacing constraint measured on one layer against
// itself. Kind tells whether the source used EXTERNAL or INTERNAL.
type SpacingCheck struct {
	Rule    string
	Layer   string
	Kind    SpacingKind
	Op      CompareOp
	Value   float64
	Comment string
}

// EnclosureCheck constrains how far Outer must extend beyond Inner.
type EnclosureCheck struct {
	Rule    string
	Outer   string
	Inner   string
	Op      CompareOp
	Value   float64
	Comment string
}

// BooleanOp derives a new layer from one or two operands. Right is empty
// for the unary form (all NOT uses are unary).
type BooleanOp struct {
	Result  string
	Op      BoolOp
	Left    string
	Right   string
	Comment string
}

func (WidthCheck) checkNode()     {}
func (SpacingCheck) checkNode()   {}
func (EnclosureCheck) checkNode() {}
func (BooleanOp) checkNode()      {}

func (c WidthCheck) Name() string     { return c.Rule }
func (c SpacingCheck) Name() string   { return c.Rule }
func (c EnclosureCheck) Name() string { return c.Rule }
func (c BooleanOp) Name() string      { return c.Result }
