// Package report reconciles native violation reports from two DRC
// engines. It parses each tool's report into per-rule violation lists,
// then matches rules by name and violation instances by coordinate
// within a tolerance, producing a pass/fail comparison.
package report

// Shape records what kind of geometry a violation was reported
// against. The source tools disagree on vocabulary, so this is
// informational only and never affects matching.
type Shape string

const (
	ShapePolygon Shape = "polygon"
	ShapeEdge    Shape = "edge"
	ShapeUnknown Shape = "unknown"
)

// Violation is one reported check failure at a representative
// coordinate.
type Violation struct {
	Rule  string  `json:"rule"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Shape Shape   `json:"shape"`
}
