package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is recorded when a radio or select field resolves to no
	// options; the stored value is kept.
	ErrNoOptions = errors.New("tui: field has no options")
)
