package field

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNilField          = errors.New("field: descriptor is nil")
	ErrNameRequired      = errors.New("field: name is required")
	ErrUnknownDataType   = errors.New("field: unknown data type")
	ErrStepRequired      = errors.New("field: number step is required")
	ErrInputTypeRequired = errors.New("field: input type is required")
	ErrUnknownStorage    = errors.New("field: unknown storage type")
)

// Error ties a failure to the field that produced it. Render and save report
// per-field failures as a slice of these instead of aborting the queue.
type Error struct {
	Name string
	Err  error
}

func (e Error) Error() string {
	return fmt.Sprintf("field %q: %v", e.Name, e.Err)
}

func (e Error) Unwrap() error {
	return e.Err
}

// Errors is a list of per-field failures.
type Errors []Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

// Names returns the failing field names in order.
func (e Errors) Names() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	for _, err := range e {
		out = append(out, err.Name)
	}
	return out
}
