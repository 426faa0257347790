package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dataprof-io/dataprof/pkg/apperrors"
)

// Column is a raw, string-valued column as delivered by a loader.
// Null cells are represented by the empty string or one of the
// recognized NA literals (see IsNull).
type Column struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Table is an in-memory raw table with stable column order.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// NewTable builds a Table, rejecting duplicate column names.
func NewTable(name string, columns []Column) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return &Table{Name: name, Columns: columns}, nil
}

// ColumnNames returns the column names in source order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Rows returns the number of rows, taken from the longest column.
func (t *Table) Rows() int {
	max := 0
	for _, c := range t.Columns {
		if len(c.Values) > max {
			max = len(c.Values)
		}
	}
	return max
}

// naLiterals mirrors the NA markers CSV tooling conventionally maps to null.
var naLiterals = map[string]struct{}{
	"na": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsNull reports whether a raw cell represents a null value.
func IsNull(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	_, ok := naLiterals[strings.ToLower(v)]
	return ok
}

// TypedColumn is a column after type optimization. Values hold the native
// representation of Type (bool, int64, float64, time.Time or string);
// nil marks a null cell.
type TypedColumn struct {
	Name   string       `json:"name"`
	Type   SemanticType `json:"type"`
	Values []any        `json:"values"`
}

// OptimizedTable preserves the source column order with values coerced to
// their detected native representations.
type OptimizedTable struct {
	Name    string        `json:"name"`
	Columns []TypedColumn `json:"columns"`
}

// FormatValue renders a native value back to text, used by exporters.
// Dates render as YYYY-MM-DD.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int64:
		return fmt.Sprintf("%d", x)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", x), "0"), ".")
	case time.Time:
		return x.Format("2006-01-02")
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
