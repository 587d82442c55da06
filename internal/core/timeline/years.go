package timeline

import (
	"strconv"
	"strings"
	"unicode"
)

// Span is the parsed form of an event's years field.
type Span struct {
	// Start is the signed start year (BCE negated). Only meaningful when
	// Valid is true.
	Start int
	// End is the second endpoint of a ranged value.
	End int
	// Duration is the number of years covered, at least 1.
	Duration int
	Ranged   bool
	// Valid is false when no leading integer could be read from the value.
	// Invalid spans are kept so a single bad record never aborts a render.
	Valid bool
}

// Width returns the span width in pixels at scale.
func (s Span) Width(scale float64) float64 {
	return float64(max(s.Duration, 1)) * scale
}

// ParseOptions controls how era suffixes apply to ranged values.
type ParseOptions struct {
	// StrictEra applies the era of each endpoint independently. A range
	// like "50-30 BCE" then yields -50..-30 and "100 BCE-100 CE" covers 200
	// years. Without it only the first endpoint is negated and the duration
	// is taken from the bare magnitudes.
	StrictEra bool
}

// ParseYears parses raw with the default options.
func ParseYears(raw string) Span {
	return ParseYearsWith(raw, ParseOptions{})
}

// ParseYearsWith parses an event years value such as "1492", "500 BCE",
// "1939-1945" or "10,000 BCE".
func ParseYearsWith(raw string, opts ParseOptions) Span {
	stripped := strings.ReplaceAll(raw, ",", "")

	if opts.StrictEra {
		return parseStrict(stripped)
	}

	var span Span
	year, ok := leadingInt(stripped)
	if !ok {
		return Span{Duration: 1}
	}
	if isBCE(stripped) {
		year = -year
	}
	span.Start = year
	span.End = year
	span.Duration = 1
	span.Valid = true

	if !strings.Contains(stripped, "-") {
		return span
	}

	span.Ranged = true
	parts := strings.Split(stripped, "-")
	a, okA := leadingInt(parts[0])
	b, okB := leadingInt(parts[1])
	if okA && okB {
		span.End = b
		d := a - b
		if d < 0 {
			d = -d
		}
		span.Duration = max(d, 1)
	}
	return span
}

func parseStrict(s string) Span {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) == "" {
		// A leading minus is a sign, not a range separator.
		parts = []string{s}
	}

	start, ok := leadingInt(parts[0])
	if !ok {
		return Span{Duration: 1}
	}

	if len(parts) == 1 {
		if isBCE(parts[0]) {
			start = -start
		}
		return Span{Start: start, End: start, Duration: 1, Valid: true}
	}

	end, okEnd := leadingInt(parts[1])
	trailingBCE := isBCE(parts[1])

	switch {
	case isBCE(parts[0]):
		start = -start
	case !hasEra(parts[0]) && trailingBCE:
		start = -start
	}
	if trailingBCE {
		end = -end
	}

	span := Span{Start: start, End: start, Duration: 1, Ranged: true, Valid: true}
	if okEnd {
		span.End = end
		d := start - end
		if d < 0 {
			d = -d
		}
		span.Duration = max(d, 1)
	}
	return span
}

func isBCE(s string) bool {
	return strings.Contains(s, "BC")
}

func hasEra(s string) bool {
	return isBCE(s) || strings.Contains(s, "CE") || strings.Contains(s, "AD")
}

// leadingInt reads an optionally signed integer at the start of s, skipping
// leading whitespace and ignoring anything after the digits.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
