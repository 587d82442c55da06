package timeline

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var labelPrinter = message.NewPrinter(language.English)

// EraLabel formats year with its era qualifier: positive years are CE,
// zero and negative years are BCE. Magnitudes of five or more digits are
// grouped ("10,000 BCE").
func EraLabel(year int) string {
	if year > 0 {
		return magnitude(year) + " CE"
	}
	return magnitude(-year) + " BCE"
}

func magnitude(n int) string {
	if n >= 10000 {
		return labelPrinter.Sprintf("%d", n)
	}
	return strconv.Itoa(n)
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// CurrentYear reads the year from clock, falling back to time.Now.
func CurrentYear(clock Clock) int {
	if clock == nil {
		clock = time.Now
	}
	return clock().Year()
}
