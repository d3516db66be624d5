package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var priceToken = regexp.MustCompile(`^-?\.?[0-9][0-9.,]*$`)

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// ParsePrice converts a scraped or spreadsheet price string to a number.
// Currency symbols, words and spaces may surround a single number; anything else
// between the digits ("2 for 10", "12 99") is rejected.
// It accepts both "1,234.56" and "1.234,56". A lone comma followed by one or two
// digits is a decimal separator ("12,50"); otherwise commas are thousands separators.
func ParsePrice(s string) (float64, error) {
	first := strings.IndexFunc(s, isDigit)
	if first < 0 {
		return 0, fmt.Errorf("no digits in price %q", s)
	}
	last := strings.LastIndexFunc(s, isDigit)
	start := first
	if start > 0 && s[start-1] == '.' {
		start--
	}
	if start > 0 && s[start-1] == '-' {
		start--
	}
	num := s[start : last+1]
	if !priceToken.MatchString(num) {
		return 0, fmt.Errorf("no single number in price %q", s)
	}

	lastComma := strings.LastIndex(num, ",")
	lastDot := strings.LastIndex(num, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		// 1.234,56
		num = strings.ReplaceAll(num, ".", "")
		num = strings.Replace(num, ",", ".", 1)
	case lastComma >= 0 && lastDot < 0 && strings.Count(num, ",") == 1 && len(num)-lastComma-1 <= 2:
		// 12,50
		num = strings.Replace(num, ",", ".", 1)
	default:
		num = strings.ReplaceAll(num, ",", "")
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	return v, nil
}
