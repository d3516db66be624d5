package advisor

import (
	"fmt"
	"regexp"
	"strconv"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ExtractPrice returns the first numeric token in a free-text answer.
func ExtractPrice(text string) (float64, error) {
	m := numberPattern.FindString(text)
	if m == "" {
		return 0, fmt.Errorf("%w: no numeric price in response", ErrUnavailable)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %q: %w", ErrUnavailable, m, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: non-positive price %q", ErrUnavailable, m)
	}
	return v, nil
}
