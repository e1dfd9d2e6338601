package report

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	rulecheckRe = regexp.MustCompile(`RULECHECK\s+(\S+)`)
	coordPairRe = regexp.MustCompile(`\(\s*([-\d.]+)\s+([-\d.]+)\s*\)`)
	icvLineRe   = regexp.MustCompile(`([\w.]+).*?([-\d.]+)[,\s]+([-\d.]+)`)
)

// ParseCalibre reads a Calibre-style DRC report. RULECHECK headers name
// the current rule; POLYGON and EDGE lines under a header contribute
// one violation each at their first coordinate pair. Lines that fit no
// pattern are skipped; this is a best-effort scrape of a foreign
// format.
func ParseCalibre(r io.Reader) (map[string][]Violation, error) {
	violations := make(map[string][]Violation)
	current := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "RULECHECK"):
			if m := rulecheckRe.FindStringSubmatch(line); m != nil {
				current = m[1]
			}
		case strings.Contains(line, "POLYGON") && current != "":
			if v, ok := coordViolation(line, current, ShapePolygon); ok {
				violations[current] = append(violations[current], v)
			}
		case strings.Contains(line, "EDGE") && current != "":
			if v, ok := coordViolation(line, current, ShapeEdge); ok {
				violations[current] = append(violations[current], v)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read calibre report: %w", err)
	}
	return violations, nil
}

func coordViolation(line, rule string, shape Shape) (Violation, bool) {
	m := coordPairRe.FindStringSubmatch(line)
	if m == nil {
		return Violation{}, false
	}
	x, errX := strconv.ParseFloat(m[1], 64)
	y, errY := strconv.ParseFloat(m[2], 64)
	if errX != nil || errY != nil {
		return Violation{}, false
	}
	return Violation{Rule: rule, X: x, Y: y, Shape: shape}, true
}

// ParseICV reads an IC Validator log. Any line mentioning "violation"
// (case-insensitive) is scraped: the leading word, dots allowed so
// dotted rule names survive intact, is the rule; the first two numbers
// after it are the coordinates.
func ParseICV(r io.Reader) (map[string][]Violation, error) {
	violations := make(map[string][]Violation)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(strings.ToLower(line), "violation") {
			continue
		}
		m := icvLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		x, errX := strconv.ParseFloat(m[2], 64)
		y, errY := strconv.ParseFloat(m[3], 64)
		if errX != nil || errY != nil {
			continue
		}
		rule := m[1]
		violations[rule] = append(violations[rule], Violation{Rule: rule, X: x, Y: y, Shape: ShapeUnknown})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read icv log: %w", err)
	}
	return violations, nil
}
