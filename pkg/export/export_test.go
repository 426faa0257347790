package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataprof-io/dataprof/pkg/models"
)

func sampleProfile() *models.Profile {
	return &models.Profile{
		ID:        uuid.New(),
		TableName: "clientes",
		Dialect:   "postgres",
		Entries: []models.SchemaEntry{
			{
				Name: "estado", SemanticType: models.TypeText, SQLType: "TEXT",
				Nullable: true, AllowedValues: []string{"alta", "baja"},
				MaxLength: 4,
			},
			{
				Name: "edad", SemanticType: models.TypeInteger, SQLType: "BIGINT",
				MaxLength: 3, ValueRange: "min: 7 - max: 112",
			},
		},
		DDL: "CREATE TABLE \"clientes\" ();\n",
	}
}

func TestWriteSchemaCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.csv")
	profile := sampleProfile()

	require.NoError(t, NewWriter(nil).WriteSchemaCSV(path, profile))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "column,semantic_type,sql_type,nullable,allowed_values,max_length,value_range\n" +
		"estado,text,TEXT,true,alta; baja,4,\n" +
		"edad,integer,BIGINT,false,,3,min: 7 - max: 112\n"
	assert.Equal(t, want, string(data))
}

func TestWriteSchemaCSVIsReproducible(t *testing.T) {
	dir := t.TempDir()
	profile := sampleProfile()
	w := NewWriter(nil)

	first := filepath.Join(dir, "one.csv")
	second := filepath.Join(dir, "two.csv")
	require.NoError(t, w.WriteSchemaCSV(first, profile))
	require.NoError(t, w.WriteSchemaCSV(second, profile))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWriteDDL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	profile := sampleProfile()

	require.NoError(t, NewWriter(nil).WriteDDL(path, profile))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, profile.DDL, string(data))
}
