package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseYears(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Span
	}{
		{
			name: "single CE year",
			raw:  "1492",
			want: Span{Start: 1492, End: 1492, Duration: 1, Valid: true},
		},
		{
			name: "BCE suffix negates",
			raw:  "500 BCE",
			want: Span{Start: -500, End: -500, Duration: 1, Valid: true},
		},
		{
			name: "BC suffix negates",
			raw:  "44 BC",
			want: Span{Start: -44, End: -44, Duration: 1, Valid: true},
		},
		{
			name: "grouping separators stripped",
			raw:  "10,000 BCE",
			want: Span{Start: -10000, End: -10000, Duration: 1, Valid: true},
		},
		{
			name: "range",
			raw:  "1939-1945",
			want: Span{Start: 1939, End: 1945, Duration: 6, Ranged: true, Valid: true},
		},
		{
			name: "same year range has width of one year",
			raw:  "1066-1066",
			want: Span{Start: 1066, End: 1066, Duration: 1, Ranged: true, Valid: true},
		},
		{
			name: "BCE range negates only first endpoint",
			raw:  "500 BCE-400 BCE",
			want: Span{Start: -500, End: 400, Duration: 100, Ranged: true, Valid: true},
		},
		{
			name: "range with grouped endpoints",
			raw:  "12,000 BCE-10,000 BCE",
			want: Span{Start: -12000, End: 10000, Duration: 2000, Ranged: true, Valid: true},
		},
		{
			name: "unparseable second endpoint keeps one year width",
			raw:  "1900-present",
			want: Span{Start: 1900, End: 1900, Duration: 1, Ranged: true, Valid: true},
		},
		{
			name: "not a number",
			raw:  "circa 1500",
			want: Span{Duration: 1},
		},
		{
			name: "empty",
			raw:  "",
			want: Span{Duration: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseYears(tt.raw))
		})
	}
}

func TestParseYears_RangeWidth(t *testing.T) {
	span := ParseYears("1939-1945")
	assert.Equal(t, 60.0, span.Width(10))
	assert.Equal(t, 10.0, ParseYears("1969").Width(10))
}

func TestParseYearsWith_StrictEra(t *testing.T) {
	opts := ParseOptions{StrictEra: true}

	tests := []struct {
		name string
		raw  string
		want Span
	}{
		{
			name: "single BCE",
			raw:  "500 BCE",
			want: Span{Start: -500, End: -500, Duration: 1, Valid: true},
		},
		{
			name: "leading minus is a sign",
			raw:  "-500",
			want: Span{Start: -500, End: -500, Duration: 1, Valid: true},
		},
		{
			name: "both endpoints BCE",
			raw:  "500 BCE-400 BCE",
			want: Span{Start: -500, End: -400, Duration: 100, Ranged: true, Valid: true},
		},
		{
			name: "trailing era applies to bare start",
			raw:  "50-30 BCE",
			want: Span{Start: -50, End: -30, Duration: 20, Ranged: true, Valid: true},
		},
		{
			name: "crossing the era boundary",
			raw:  "100 BCE-100 CE",
			want: Span{Start: -100, End: 100, Duration: 200, Ranged: true, Valid: true},
		},
		{
			name: "plain CE range",
			raw:  "1939-1945",
			want: Span{Start: 1939, End: 1945, Duration: 6, Ranged: true, Valid: true},
		},
		{
			name: "invalid",
			raw:  "unknown",
			want: Span{Duration: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseYearsWith(tt.raw, opts))
		})
	}
}
