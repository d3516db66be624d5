package calculator

import "sort"

// DefaultPriceCeiling is the absolute plausibility bound for a scraped price.
const DefaultPriceCeiling = 1000.0

// CleanPrices drops implausible prices and, when at least four remain, Tukey outliers
// outside [Q1-1.5*IQR, Q3+1.5*IQR]. Order of the surviving values is preserved.
// A non-positive ceiling falls back to DefaultPriceCeiling.
func CleanPrices(prices []float64, ceiling float64) []float64 {
	if ceiling <= 0 {
		ceiling = DefaultPriceCeiling
	}
	valid := make([]float64, 0, len(prices))
	for _, p := range prices {
		if p > 0 && p < ceiling {
			valid = append(valid, p)
		}
	}
	if len(valid) < 4 {
		return valid
	}

	q1, q3 := Quartiles(valid)
	iqr := q3 - q1
	low := q1 - 1.5*iqr
	high := q3 + 1.5*iqr

	kept := valid[:0]
	for _, p := range valid {
		if p >= low && p <= high {
			kept = append(kept, p)
		}
	}
	return kept
}

// Quartiles returns the first and third quartiles using linear interpolation
// between closest ranks. The input is not modified.
func Quartiles(values []float64) (q1, q3 float64) {
	sorted := sortedCopy(values)
	return quantileSorted(sorted, 0.25), quantileSorted(sorted, 0.75)
}

// quantileSorted interpolates at h = (n-1)p over an ascending slice.
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(h)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
