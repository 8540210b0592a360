package models

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field key to its validation message. Keys follow the
// scheme the form uses to index inputs: plain names for client fields
// ("id_cliente", "fecha", "telefono"), and positional keys for repeated
// sections ("producto-0-codigo", "material-1-peso").
//
// Validation never panics or aborts early: every offending field is reported
// so the caller can surface all problems at once.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "sin errores de validación"
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return strings.Join(parts, "; ")
}

// Empty reports whether the set contains no errors. A nil FieldErrors is empty.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Merge copies every entry of other into fe, keeping existing entries.
func (fe FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		if _, ok := fe[k]; !ok {
			fe[k] = v
		}
	}
}

// ProductoKey builds the positional error key for a line item field.
func ProductoKey(index int, campo string) string {
	return fmt.Sprintf("producto-%d-%s", index, campo)
}

// MaterialKey builds the positional error key for a material line field.
func MaterialKey(index int, campo string) string {
	return fmt.Sprintf("material-%d-%s", index, campo)
}
