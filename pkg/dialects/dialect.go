// Package dialects maps semantic column types to target database types
// and renders CREATE TABLE statements per target.
package dialects

import (
	"fmt"
	"strings"

	"github.com/dataprof-io/dataprof/pkg/apperrors"
	"github.com/dataprof-io/dataprof/pkg/models"
)

// Dialect is the closed capability set of a target database.
// Implementations are stateless and safe for concurrent use.
type Dialect interface {
	// Name identifies the dialect ("oracle", "bigquery", ...).
	Name() string
	// MapType maps a semantic type to the target SQL type string. It
	// returns an UnsupportedTypeError for any type it has no mapping
	// for; it never substitutes a default.
	MapType(t models.SemanticType) (string, error)
	// QuoteIdentifier quotes a table or column name, enforcing the
	// dialect's naming limits.
	QuoteIdentifier(name string) (string, error)
	// SupportsCheckConstraints reports whether the dialect accepts
	// CHECK-style categorical constraints.
	SupportsCheckConstraints() bool
	// RenderCreateTable renders a single CREATE TABLE statement from
	// schema entries that already carry their SQL type.
	RenderCreateTable(tableName string, entries []models.SchemaEntry) (string, error)
}

// typeMap backs MapType for the concrete dialects. A missing entry
// surfaces as an UnsupportedTypeError.
type typeMap map[models.SemanticType]string

func (m typeMap) resolve(dialect string, t models.SemanticType) (string, error) {
	sqlType, ok := m[t]
	if !ok {
		return "", &apperrors.UnsupportedTypeError{Dialect: dialect, SemanticType: string(t)}
	}
	return sqlType, nil
}

// quoteWithLimit wraps name in the given quote character after checking
// the dialect's identifier length limit. A limit of 0 means no limit.
func quoteWithLimit(dialect, name string, limit int, quote byte) (string, error) {
	if limit > 0 && len(name) > limit {
		return "", &apperrors.IdentifierTooLongError{Dialect: dialect, Identifier: name, Limit: limit}
	}
	q := string(quote)
	escaped := strings.ReplaceAll(name, q, q+q)
	return q + escaped + q, nil
}

// renderCreateTable is the shared CREATE TABLE layout used by the
// row-oriented dialects. The header comment and column order make the
// output reproducible byte-for-byte for identical inputs.
func renderCreateTable(d Dialect, verb, tableRef, tableName string, entries []models.SchemaEntry) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Schema generated for table %s (%s)\n", tableName, d.Name())
	fmt.Fprintf(&b, "%s %s (\n", verb, tableRef)

	for i, e := range entries {
		col, err := d.QuoteIdentifier(e.Name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "    %s %s", col, e.SQLType)
		if !e.Nullable {
			b.WriteString(" NOT NULL")
		}
		if d.SupportsCheckConstraints() && e.SemanticType == models.TypeText && len(e.AllowedValues) > 0 {
			fmt.Fprintf(&b, " CHECK (%s IN (%s))", col, quoteValueList(e.AllowedValues))
		}
		if i < len(entries)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}

	b.WriteString(");\n")
	return b.String(), nil
}

// quoteValueList renders allowed values as a SQL string literal list.
func quoteValueList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}
