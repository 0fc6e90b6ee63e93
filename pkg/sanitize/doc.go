// Package sanitize provides the default text sanitizers used when saving
// submitted values. It is built on bluemonday policies that are constructed
// once and shared.
package sanitize
