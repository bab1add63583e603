package emit

import "strconv"

// NA marks a change that has no defined value: a zero or missing baseline.
const NA = "N/A"

// FormatCount renders an integer change, or NA when undefined.
func FormatCount(v *int) string {
	if v == nil {
		return NA
	}
	return strconv.Itoa(*v)
}

// FormatPct renders a percentage change with two decimals, or NA.
func FormatPct(v *float64) string {
	if v == nil {
		return NA
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// FormatRate renders a rate or rate difference with four decimals, or NA.
func FormatRate(v *float64) string {
	if v == nil {
		return NA
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

// FormatSignedCount renders an integer with an explicit sign, for summary
// bullets ("+120 users").
func FormatSignedCount(v int) string {
	if v >= 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// FormatSignedPct renders a percentage with an explicit sign and one decimal,
// or NA when the baseline was zero or missing.
func FormatSignedPct(v *float64) string {
	if v == nil {
		return NA
	}
	s := strconv.FormatFloat(*v, 'f', 1, 64)
	if *v >= 0 {
		return "+" + s + "%"
	}
	return s + "%"
}
