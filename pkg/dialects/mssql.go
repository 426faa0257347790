package dialects

import (
	"strings"

	"github.com/dataprof-io/dataprof/pkg/apperrors"
	"github.com/dataprof-io/dataprof/pkg/models"
)

const mssqlIdentifierLimit = 128

var mssqlTypes = typeMap{
	models.TypeBoolean: "BIT",
	models.TypeInteger: "BIGINT",
	models.TypeFloat:   "FLOAT",
	models.TypeDate:    "DATE",
	models.TypeText:    "NVARCHAR(MAX)",
}

// MSSQL targets SQL Server. Identifiers are bracket-quoted.
type MSSQL struct{}

func NewMSSQL() *MSSQL { return &MSSQL{} }

func (*MSSQL) Name() string { return "sqlserver" }

func (d *MSSQL) MapType(t models.SemanticType) (string, error) {
	return mssqlTypes.resolve(d.Name(), t)
}

func (d *MSSQL) QuoteIdentifier(name string) (string, error) {
	if len(name) > mssqlIdentifierLimit {
		return "", &apperrors.IdentifierTooLongError{Dialect: d.Name(), Identifier: name, Limit: mssqlIdentifierLimit}
	}
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]", nil
}

func (*MSSQL) SupportsCheckConstraints() bool { return true }

func (d *MSSQL) RenderCreateTable(tableName string, entries []models.SchemaEntry) (string, error) {
	ref, err := d.QuoteIdentifier(tableName)
	if err != nil {
		return "", err
	}
	return renderCreateTable(d, "CREATE TABLE", ref, tableName, entries)
}

var _ Dialect = (*MSSQL)(nil)
