package dialects

import (
	"strings"

	"github.com/dataprof-io/dataprof/pkg/models"
)

var bigQueryTypes = typeMap{
	models.TypeBoolean: "BOOL",
	models.TypeInteger: "INT64",
	models.TypeFloat:   "FLOAT64",
	models.TypeDate:    "DATE",
	models.TypeText:    "STRING",
}

// BigQuery targets the cloud columnar warehouse. Table names are
// qualified with the configured project and dataset; identifiers have no
// length limit. BigQuery has no CHECK constraints, so allowed values are
// carried only in the schema description.
type BigQuery struct {
	projectID string
	datasetID string
}

func NewBigQuery(projectID, datasetID string) *BigQuery {
	return &BigQuery{projectID: projectID, datasetID: datasetID}
}

func (*BigQuery) Name() string { return "bigquery" }

func (d *BigQuery) MapType(t models.SemanticType) (string, error) {
	return bigQueryTypes.resolve(d.Name(), t)
}

func (d *BigQuery) QuoteIdentifier(name string) (string, error) {
	return "`" + strings.ReplaceAll(name, "`", "\\`") + "`", nil
}

func (*BigQuery) SupportsCheckConstraints() bool { return false }

// qualifiedTableName prefixes the table with project and dataset when
// configured, so the DDL can run without a default dataset.
func (d *BigQuery) qualifiedTableName(tableName string) string {
	switch {
	case d.projectID != "" && d.datasetID != "":
		return "`" + d.projectID + "." + d.datasetID + "." + tableName + "`"
	case d.datasetID != "":
		return "`" + d.datasetID + "." + tableName + "`"
	default:
		return "`" + tableName + "`"
	}
}

func (d *BigQuery) RenderCreateTable(tableName string, entries []models.SchemaEntry) (string, error) {
	return renderCreateTable(d, "CREATE OR REPLACE TABLE", d.qualifiedTableName(tableName), tableName, entries)
}

var _ Dialect = (*BigQuery)(nil)
