// Package loader reads delimited text files into the raw in-memory table
// the detector consumes. It is the ingestion collaborator: it does no
// type interpretation of its own.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/dataprof-io/dataprof/pkg/apperrors"
	"github.com/dataprof-io/dataprof/pkg/models"
)

// Loader reads CSV, TSV and TXT files. The first record is the header;
// short rows are padded with null cells.
type Loader struct {
	separator rune
	logger    *zap.Logger
}

// New creates a Loader. A zero separator selects by file extension
// (comma for .csv/.txt, tab for .tsv). If logger is nil, a no-op logger
// is used.
func New(separator rune, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		separator: separator,
		logger:    logger.Named("loader"),
	}
}

// Load reads path into a Table. The table name is derived from the file
// name unless tableName is non-empty.
func (l *Loader) Load(path, tableName string) (*models.Table, error) {
	sep, err := l.separatorFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1 // rows may be ragged; short rows pad with nulls

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: %w", path, apperrors.ErrEmptyTable)
	}

	header := records[0]
	columns := make([]models.Column, len(header))
	for i, name := range header {
		columns[i] = models.Column{
			Name:   strings.TrimSpace(name),
			Values: make([]string, 0, len(records)-1),
		}
	}
	for _, row := range records[1:] {
		for i := range columns {
			if i < len(row) {
				columns[i].Values = append(columns[i].Values, row[i])
			} else {
				columns[i].Values = append(columns[i].Values, "")
			}
		}
	}

	if tableName == "" {
		tableName = TableName(path)
	}

	table, err := models.NewTable(tableName, columns)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	l.logger.Info("table loaded",
		zap.String("path", path),
		zap.String("table", tableName),
		zap.Int("columns", len(columns)),
		zap.Int("rows", len(records)-1))

	return table, nil
}

// separatorFor resolves the field separator, validating the extension.
func (l *Loader) separatorFor(path string) (rune, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".txt":
		if l.separator != 0 {
			return l.separator, nil
		}
		return ',', nil
	case ".tsv":
		if l.separator != 0 {
			return l.separator, nil
		}
		return '\t', nil
	default:
		return 0, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedInput, ext)
	}
}

// TableName derives a table name from the file name: the stem is
// lowercased, non-identifier runes collapse to underscores, and the last
// word is pluralized.
func TableName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(stem) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		return "dataset"
	}
	return inflection.Plural(name)
}
