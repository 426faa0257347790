// Package schemagen turns an optimized table and its detection metadata
// into a schema description and dialect-specific DDL.
package schemagen

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dataprof-io/dataprof/pkg/dialects"
	"github.com/dataprof-io/dataprof/pkg/models"
)

// SchemaGenerator builds schema artifacts for one dialect. It is
// stateless: generating twice from the same inputs yields byte-identical
// entries and DDL.
type SchemaGenerator struct {
	dialect dialects.Dialect
	logger  *zap.Logger
}

// New creates a SchemaGenerator. If logger is nil, a no-op logger is used.
func New(dialect dialects.Dialect, logger *zap.Logger) *SchemaGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaGenerator{
		dialect: dialect,
		logger:  logger.Named("schemagen"),
	}
}

// Generate produces the ordered schema description and the CREATE TABLE
// statement. Type-mapping and identifier-limit failures propagate
// unmodified; they are never silently defaulted.
func (g *SchemaGenerator) Generate(table *models.OptimizedTable, metadata []models.ColumnMetadata) (*models.Profile, error) {
	if len(metadata) != len(table.Columns) {
		return nil, fmt.Errorf("generate %q: %d metadata entries for %d columns", table.Name, len(metadata), len(table.Columns))
	}

	entries := make([]models.SchemaEntry, len(table.Columns))
	for i, col := range table.Columns {
		meta := metadata[i]
		sqlType, err := g.dialect.MapType(meta.DetectedType)
		if err != nil {
			return nil, err
		}
		entries[i] = models.SchemaEntry{
			Name:          col.Name,
			SemanticType:  meta.DetectedType,
			SQLType:       sqlType,
			Nullable:      meta.Nullable,
			AllowedValues: append([]string(nil), meta.AllowedValues...),
			MaxLength:     meta.Stats.MaxLength,
			ValueRange:    valueRange(meta.Stats),
		}
	}

	ddl, err := g.dialect.RenderCreateTable(table.Name, entries)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:        uuid.New(),
		TableName: table.Name,
		Dialect:   g.dialect.Name(),
		Entries:   entries,
		DDL:       ddl,
	}

	g.logger.Info("schema generated",
		zap.String("run_id", profile.ID.String()),
		zap.String("table", table.Name),
		zap.String("dialect", g.dialect.Name()),
		zap.Int("columns", len(entries)))

	return profile, nil
}

// valueRange renders the min/max signal the way the schema description
// exports it.
func valueRange(stats models.ColumnStats) string {
	if stats.MinValue == "" && stats.MaxValue == "" {
		return ""
	}
	return fmt.Sprintf("min: %s - max: %s", stats.MinValue, stats.MaxValue)
}
