package field

import (
	"strconv"
)

// Value is a coerced submission value tagged with its data type.
type Value struct {
	typ  DataType
	str  string
	num  int64
	flt  float64
	flag bool
}

// StringValue wraps sanitised plain text.
func StringValue(s string) Value { return Value{typ: DataString, str: s} }

// RichTextValue wraps filtered rich text.
func RichTextValue(s string) Value { return Value{typ: DataRichText, str: s} }

// IntValue wraps an integer.
func IntValue(n int64) Value { return Value{typ: DataInt, num: n} }

// FloatValue wraps a float.
func FloatValue(f float64) Value { return Value{typ: DataFloat, flt: f} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{typ: DataBool, flag: b} }

// Type reports the data type the value was coerced into.
func (v Value) Type() DataType { return v.typ }

// Int returns the integer payload, truncating floats.
func (v Value) Int() int64 {
	switch v.typ {
	case DataInt:
		return v.num
	case DataFloat:
		return int64(v.flt)
	case DataBool:
		if v.flag {
			return 1
		}
		return 0
	default:
		return ParseInt(v.str)
	}
}

// Float returns the float payload.
func (v Value) Float() float64 {
	switch v.typ {
	case DataFloat:
		return v.flt
	case DataInt:
		return float64(v.num)
	case DataBool:
		if v.flag {
			return 1
		}
		return 0
	default:
		return ParseFloat(v.str)
	}
}

// Bool returns the boolean payload. Strings follow Truthy.
func (v Value) Bool() bool {
	switch v.typ {
	case DataBool:
		return v.flag
	case DataInt:
		return v.num != 0
	case DataFloat:
		return v.flt != 0
	default:
		return Truthy(v.str)
	}
}

// String returns the text payload for string kinds and the encoded form for
// everything else.
func (v Value) String() string {
	return v.Encode()
}

// Encode returns the representation written to storage. Booleans encode as
// "true"/"false" so a saved checkbox reads back as checked.
func (v Value) Encode() string {
	switch v.typ {
	case DataInt:
		return strconv.FormatInt(v.num, 10)
	case DataFloat:
		return strconv.FormatFloat(v.flt, 'f', -1, 64)
	case DataBool:
		if v.flag {
			return CheckboxValue
		}
		return "false"
	default:
		return v.str
	}
}
