package render

import (
	"fmt"
	"sort"
	"strings"
)

// Names of the hidden inputs that identify what a posted form saves.
const (
	HiddenQueue = "_metabox_queue"
	HiddenItem  = "_metabox_item"
)

// HiddenField is a hidden form input emitted alongside the rendered queue.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token under the
// input name the backend expects.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// QueueFields identifies the queue and item a form belongs to.
func QueueFields(queue, itemID string) []HiddenField {
	return []HiddenField{
		Hidden(HiddenQueue, queue),
		Hidden(HiddenItem, itemID),
	}
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, hf := range fields {
		name := strings.TrimSpace(hf.Name)
		if name == "" {
			continue
		}
		out[name] = hf.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields sorts hidden fields by name for deterministic output.
// Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  strings.TrimSpace(name),
			Value: fields[name],
		})
	}
	return result
}
