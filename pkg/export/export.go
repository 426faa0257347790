// Package export serializes schema artifacts: the schema description as
// CSV for tabular consumers and the DDL as a SQL file.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dataprof-io/dataprof/pkg/models"
)

// schemaHeader is the fixed column set of the schema description CSV.
var schemaHeader = []string{
	"column", "semantic_type", "sql_type", "nullable",
	"allowed_values", "max_length", "value_range",
}

// Writer persists generated profiles. If logger is nil, a no-op logger
// is used.
type Writer struct {
	logger *zap.Logger
}

func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger.Named("export")}
}

// WriteSchemaCSV writes the ordered schema description to path.
func (w *Writer) WriteSchemaCSV(path string, profile *models.Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(schemaHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range profile.Entries {
		row := []string{
			e.Name,
			string(e.SemanticType),
			e.SQLType,
			strconv.FormatBool(e.Nullable),
			strings.Join(e.AllowedValues, "; "),
			strconv.Itoa(e.MaxLength),
			e.ValueRange,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", e.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	w.logger.Info("schema description written",
		zap.String("path", path),
		zap.Int("columns", len(profile.Entries)))
	return nil
}

// WriteDDL writes the CREATE TABLE statement to path.
func (w *Writer) WriteDDL(path string, profile *models.Profile) error {
	if err := os.WriteFile(path, []byte(profile.DDL), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Info("DDL written",
		zap.String("path", path),
		zap.String("dialect", profile.Dialect))
	return nil
}
