package dialects

import "github.com/dataprof-io/dataprof/pkg/models"

// SQLite stores dates as TEXT in ISO8601 form, following SQLite's type
// affinity model.
var sqliteTypes = typeMap{
	models.TypeBoolean: "INTEGER",
	models.TypeInteger: "INTEGER",
	models.TypeFloat:   "REAL",
	models.TypeDate:    "TEXT",
	models.TypeText:    "TEXT",
}

// SQLite targets embedded SQLite databases.
type SQLite struct{}

func NewSQLite() *SQLite { return &SQLite{} }

func (*SQLite) Name() string { return "sqlite" }

func (d *SQLite) MapType(t models.SemanticType) (string, error) {
	return sqliteTypes.resolve(d.Name(), t)
}

func (d *SQLite) QuoteIdentifier(name string) (string, error) {
	return quoteWithLimit(d.Name(), name, 0, '"')
}

func (*SQLite) SupportsCheckConstraints() bool { return true }

func (d *SQLite) RenderCreateTable(tableName string, entries []models.SchemaEntry) (string, error) {
	ref, err := d.QuoteIdentifier(tableName)
	if err != nil {
		return "", err
	}
	return renderCreateTable(d, "CREATE TABLE", ref, tableName, entries)
}

var _ Dialect = (*SQLite)(nil)
