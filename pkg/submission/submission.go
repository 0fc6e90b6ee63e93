// Package submission gives the persistence layer uniform, read-only access to
// submitted form values regardless of where they came from.
package submission

import (
	"fmt"
	"net/http"
	"net/url"
)

// Submission looks up a submitted value by control name. The boolean reports
// whether the key was present at all; an unchecked checkbox is absent.
type Submission interface {
	Lookup(key string) (string, bool)
}

// Values adapts url.Values. The first value wins when a key repeats.
type Values url.Values

// FromValues wraps parsed form values.
func FromValues(values url.Values) Values {
	return Values(values)
}

func (v Values) Lookup(key string) (string, bool) {
	list, ok := v[key]
	if !ok || len(list) == 0 {
		return "", false
	}
	return list[0], true
}

// Map adapts a plain map, mostly for tests and the terminal editor.
type Map map[string]string

// FromMap copies values into a Map.
func FromMap(values map[string]string) Map {
	out := make(Map, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}

func (m Map) Lookup(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

// FromRequest parses r's body and query and returns the combined form values.
// Multipart bodies are supported up to maxMemory bytes held in memory.
func FromRequest(r *http.Request, maxMemory int64) (Values, error) {
	if r == nil {
		return nil, fmt.Errorf("submission: nil request")
	}
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil && err != http.ErrNotMultipart {
		return nil, fmt.Errorf("submission: parse form: %w", err)
	}
	return FromValues(r.Form), nil
}

// DefaultMaxMemory is used by FromRequest when no limit is given.
const DefaultMaxMemory = 10 << 20
