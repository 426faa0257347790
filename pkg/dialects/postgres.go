package dialects

import (
	"github.com/jackc/pgx/v5"

	"github.com/dataprof-io/dataprof/pkg/apperrors"
	"github.com/dataprof-io/dataprof/pkg/models"
)

// postgresIdentifierLimit mirrors NAMEDATALEN-1. The server would
// silently truncate longer names, which we surface as an error instead.
const postgresIdentifierLimit = 63

var postgresTypes = typeMap{
	models.TypeBoolean: "BOOLEAN",
	models.TypeInteger: "BIGINT",
	models.TypeFloat:   "DOUBLE PRECISION",
	models.TypeDate:    "DATE",
	models.TypeText:    "TEXT",
}

// Postgres targets PostgreSQL.
type Postgres struct{}

func NewPostgres() *Postgres { return &Postgres{} }

func (*Postgres) Name() string { return "postgres" }

func (d *Postgres) MapType(t models.SemanticType) (string, error) {
	return postgresTypes.resolve(d.Name(), t)
}

func (d *Postgres) QuoteIdentifier(name string) (string, error) {
	if len(name) > postgresIdentifierLimit {
		return "", &apperrors.IdentifierTooLongError{Dialect: d.Name(), Identifier: name, Limit: postgresIdentifierLimit}
	}
	return pgx.Identifier{name}.Sanitize(), nil
}

func (*Postgres) SupportsCheckConstraints() bool { return true }

func (d *Postgres) RenderCreateTable(tableName string, entries []models.SchemaEntry) (string, error) {
	ref, err := d.QuoteIdentifier(tableName)
	if err != nil {
		return "", err
	}
	return renderCreateTable(d, "CREATE TABLE", ref, tableName, entries)
}

var _ Dialect = (*Postgres)(nil)
