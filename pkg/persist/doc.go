// Package persist saves a submitted form back to storage: values are read from
// a submission.Submission, coerced to each field's data type, written through
// the storage collaborator and announced to the field's save hooks.
package persist
