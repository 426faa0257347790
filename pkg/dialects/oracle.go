package dialects

import "github.com/dataprof-io/dataprof/pkg/models"

// oracleIdentifierLimit is the classic 30-character limit. Later Oracle
// releases allow 128, but 30 keeps generated schemas portable across
// every supported version.
const oracleIdentifierLimit = 30

var oracleTypes = typeMap{
	models.TypeBoolean: "NUMBER(1)",
	models.TypeInteger: "NUMBER(19)",
	models.TypeFloat:   "NUMBER(38,2)",
	models.TypeDate:    "DATE",
	models.TypeText:    "VARCHAR2(4000)",
}

// Oracle targets row-oriented Oracle databases.
type Oracle struct{}

func NewOracle() *Oracle { return &Oracle{} }

func (*Oracle) Name() string { return "oracle" }

func (d *Oracle) MapType(t models.SemanticType) (string, error) {
	return oracleTypes.resolve(d.Name(), t)
}

func (d *Oracle) QuoteIdentifier(name string) (string, error) {
	return quoteWithLimit(d.Name(), name, oracleIdentifierLimit, '"')
}

func (*Oracle) SupportsCheckConstraints() bool { return true }

func (d *Oracle) RenderCreateTable(tableName string, entries []models.SchemaEntry) (string, error) {
	ref, err := d.QuoteIdentifier(tableName)
	if err != nil {
		return "", err
	}
	return renderCreateTable(d, "CREATE TABLE", ref, tableName, entries)
}

var _ Dialect = (*Oracle)(nil)
