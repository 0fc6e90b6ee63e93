package field

import (
	"fmt"
	"math"
	"strconv"
)

// Sanitizer cleans submitted text before it is stored. PlainText is applied to
// string fields, RichText to rich text fields.
type Sanitizer interface {
	PlainText(raw string) string
	RichText(raw string) string
}

// Coerce converts a raw submitted value into dataType. present reports whether
// the key was part of the submission at all; an unchecked checkbox sends no key,
// which coerces to false.
//
// A nil sanitizer stores text unchanged.
func Coerce(raw string, present bool, dataType DataType, sanitizer Sanitizer) (Value, error) {
	if dataType == "" {
		dataType = DataString
	}

	switch dataType {
	case DataInt:
		return IntValue(ParseInt(raw)), nil
	case DataFloat:
		return FloatValue(ParseFloat(raw)), nil
	case DataBool:
		return BoolValue(present && Truthy(raw)), nil
	case DataRichText:
		if sanitizer != nil {
			raw = sanitizer.RichText(raw)
		}
		return RichTextValue(raw), nil
	case DataString:
		if sanitizer != nil {
			raw = sanitizer.PlainText(raw)
		}
		return StringValue(raw), nil
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownDataType, dataType)
	}
}

// Truthy reports whether a submitted string counts as true. Only the empty
// string and "0" are false.
func Truthy(raw string) bool {
	return raw != "" && raw != "0"
}

// ParseInt reads the leading integer of raw: "42abc" is 42, "abc" is 0.
// Exponent forms ("1e3") are honoured and out of range values saturate.
func ParseInt(raw string) int64 {
	prefix, decimal := numericPrefix(raw)
	if prefix == "" {
		return 0
	}
	if decimal {
		return saturate(ParseFloat(prefix))
	}
	// strconv saturates on ErrRange and the prefix is always well formed.
	n, _ := strconv.ParseInt(prefix, 10, 64)
	return n
}

// ParseFloat reads the leading float of raw: "3.5kg" is 3.5, "x" is 0.
func ParseFloat(raw string) float64 {
	prefix, _ := numericPrefix(raw)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0
	}
	return f
}

func saturate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// numericPrefix returns the longest leading numeric literal of s after
// whitespace, and whether it has a fraction or exponent part.
func numericPrefix(s string) (string, bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - intStart

	decimal := false
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits := j - i - 1
		if intDigits > 0 || fracDigits > 0 {
			i = j
			decimal = fracDigits > 0
		}
		if intDigits == 0 && fracDigits == 0 {
			return "", false
		}
	}
	if i == intStart {
		return "", false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
			decimal = true
		}
	}

	prefix := s[start:i]
	if !decimal && len(prefix) > 0 && prefix[len(prefix)-1] == '.' {
		prefix = prefix[:len(prefix)-1]
	}
	return prefix, decimal
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
