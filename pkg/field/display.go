package field

import (
	"math"
	"strconv"
)

// CheckboxValue is the value attribute every checkbox control submits.
const CheckboxValue = "true"

// DisplayValue converts a stored value into the string a control shows.
// Escaping is left to the markup layer.
func DisplayValue(f Field, stored string) string {
	switch v := f.(type) {
	case Number:
		if v.Precision != nil {
			return FormatPrecision(stored, *v.Precision)
		}
		return stored
	case Checkbox:
		return CheckboxValue
	default:
		return stored
	}
}

// FormatPrecision formats stored to a fixed number of decimals using the same
// leading-float parse as Coerce. Halves round away from zero. Negative
// precision is treated as zero.
func FormatPrecision(stored string, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(roundHalfAway(ParseFloat(stored), decimals), 'f', decimals, 64)
}

// roundHalfAway rounds v to decimals places. The scaled value is first cut to
// 15 significant digits so representation error such as 1.005*100 =
// 100.49999999999999 still counts as a half.
func roundHalfAway(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	scaled := v * scale
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return v
	}
	if trimmed, err := strconv.ParseFloat(strconv.FormatFloat(scaled, 'g', 15, 64), 64); err == nil {
		scaled = trimmed
	}
	return math.Round(scaled) / scale
}

// Checked reports whether a stored checkbox value means "on".
func Checked(stored string) bool {
	return stored == CheckboxValue
}
