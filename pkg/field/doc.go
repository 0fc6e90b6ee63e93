// Package field defines the descriptors registered into metabox queues and the
// value coercion rules applied when submissions are saved.
//
// A descriptor is one of a closed set of variants (Text, Number, Checkbox,
// Radio, Select, Image, RichText, Input). Each variant embeds Common and only
// carries the extras its control needs, so a number field always has a step and
// a select always has a place for its options.
//
//	f := field.Number{
//		Common:    field.Common{Name: "rating", Label: "Rating", DataType: field.DataFloat},
//		Step:      "0.5",
//		Precision: field.Precision(1),
//	}
//
// Coerce turns a raw submitted string into a typed Value; DisplayValue turns a
// stored string into what the control shows.
package field
