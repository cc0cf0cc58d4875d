package pagination

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// SortFields maps the sort field names accepted on the command line to the
// backend columns they order on.
type SortFields map[string]string

// NewSortFields returns a set where each name orders on the column of the
// same name.
func NewSortFields(names ...string) SortFields {
	f := make(SortFields, len(names))
	for _, n := range names {
		f[n] = n
	}
	return f
}

// With adds an alias for column and returns f.
func (f SortFields) With(name, column string) SortFields {
	f[name] = column
	return f
}

// IsValidField reports whether field can be sorted on. Matching is case-insensitive.
func (f SortFields) IsValidField(field string) bool {
	_, err := f.Resolve(field)
	return err == nil
}

// GetValidFields returns the accepted field names in sorted order.
func (f SortFields) GetValidFields() []string {
	return slices.Sorted(maps.Keys(f))
}

// Resolve returns the backend column for field.
func (f SortFields) Resolve(field string) (string, error) {
	if col, ok := f[field]; ok {
		return col, nil
	}
	for name, col := range f {
		if strings.EqualFold(name, field) {
			return col, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid fields: %s)",
		ErrInvalidSortField, field, strings.Join(f.GetValidFields(), ", "))
}
