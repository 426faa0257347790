package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataprof-io/dataprof/pkg/apperrors"
	"github.com/dataprof-io/dataprof/pkg/config"
	"github.com/dataprof-io/dataprof/pkg/models"
)

func testConfig(t *testing.T) *config.DetectionConfig {
	t.Helper()
	cfg, err := config.NewDetectionConfig(config.DetectionOptions{
		TextKeywords:  []string{"id", "descripcion"},
		FloatKeywords: []string{"costo", "precio"},
		DateFormats:   []string{"%Y-%m-%d", "%d/%m/%Y"},
	})
	require.NoError(t, err)
	return cfg
}

func detectOne(t *testing.T, cfg *config.DetectionConfig, col models.Column) (models.TypedColumn, models.ColumnMetadata) {
	t.Helper()
	table := &models.Table{Name: "t", Columns: []models.Column{col}}
	optimized, metadata, err := New(cfg, nil).Detect(table)
	require.NoError(t, err)
	require.Len(t, optimized.Columns, 1)
	require.Len(t, metadata, 1)
	return optimized.Columns[0], metadata[0]
}

// ============================================================================
// Name-based overrides
// ============================================================================

func TestTextKeywordOverridesContent(t *testing.T) {
	cfg := testConfig(t)

	// All-numeric content would infer integer; the name forces text.
	typed, meta := detectOne(t, cfg, models.Column{
		Name:   "cliente_id",
		Values: []string{"100", "200", "300"},
	})

	assert.Equal(t, models.TypeText, meta.DetectedType)
	assert.Equal(t, "id", meta.MatchedKeyword)
	assert.False(t, meta.Ambiguous)
	assert.Equal(t, "100", typed.Values[0])
}

func TestFloatKeywordForcesCoercion(t *testing.T) {
	cfg := testConfig(t)

	typed, meta := detectOne(t, cfg, models.Column{
		Name:   "precio_unitario",
		Values: []string{"10.5", "20.25"},
	})

	assert.Equal(t, models.TypeFloat, meta.DetectedType)
	assert.Equal(t, "precio", meta.MatchedKeyword)
	assert.Equal(t, 10.5, typed.Values[0])
}

func TestFloatKeywordKeepsWholeNumbersAsFloat(t *testing.T) {
	cfg := testConfig(t)

	// Without the keyword these whole values would demote to integer.
	_, meta := detectOne(t, cfg, models.Column{
		Name:   "costo_envio",
		Values: []string{"1.0", "2.0"},
	})

	assert.Equal(t, models.TypeFloat, meta.DetectedType)
}

func TestFloatKeywordCoercionFailureDegradesToText(t *testing.T) {
	cfg := testConfig(t)

	typed, meta := detectOne(t, cfg, models.Column{
		Name:   "costo_total",
		Values: []string{"10.5", "gratis"},
	})

	assert.Equal(t, models.TypeText, meta.DetectedType)
	assert.Equal(t, "costo", meta.MatchedKeyword)
	assert.True(t, meta.Ambiguous)
	assert.Equal(t, "gratis", typed.Values[1])
}

// ============================================================================
// Content inference
// ============================================================================

func TestContentInference(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name      string
		column    models.Column
		wantType  models.SemanticType
		ambiguous bool
	}{
		{
			name:     "booleans from recognized set",
			column:   models.Column{Name: "activo", Values: []string{"yes", "no", "YES"}},
			wantType: models.TypeBoolean,
		},
		{
			name:     "zero one booleans",
			column:   models.Column{Name: "flag", Values: []string{"0", "1", "1"}},
			wantType: models.TypeBoolean,
		},
		{
			name:     "integers",
			column:   models.Column{Name: "edad", Values: []string{"1", "2", "-3"}},
			wantType: models.TypeInteger,
		},
		{
			name:     "int64 boundary stays integer",
			column:   models.Column{Name: "big", Values: []string{"9223372036854775807", "2"}},
			wantType: models.TypeInteger,
		},
		{
			name:     "int64 overflow falls through to float",
			column:   models.Column{Name: "big", Values: []string{"9223372036854775808"}},
			wantType: models.TypeFloat,
		},
		{
			name:     "floats",
			column:   models.Column{Name: "ratio", Values: []string{"0.5", "1.25"}},
			wantType: models.TypeFloat,
		},
		{
			name:     "comma decimal separator",
			column:   models.Column{Name: "monto", Values: []string{"10,5", "20,25"}},
			wantType: models.TypeFloat,
		},
		{
			name:     "whole number floats demote to integer",
			column:   models.Column{Name: "unidades", Values: []string{"1.0", "2.00", "3.0"}},
			wantType: models.TypeInteger,
		},
		{
			name:     "dates",
			column:   models.Column{Name: "alta", Values: []string{"2024-01-15", "2023-12-01"}},
			wantType: models.TypeDate,
		},
		{
			name:     "timestamps qualify as dates by prefix",
			column:   models.Column{Name: "alta", Values: []string{"2024-01-15 10:30:00", "2023-12-01 00:00:00"}},
			wantType: models.TypeDate,
		},
		{
			name:      "free text is ambiguous",
			column:    models.Column{Name: "nota", Values: []string{"hola", "mundo"}},
			wantType:  models.TypeText,
			ambiguous: true,
		},
		{
			name:      "mixed content is ambiguous",
			column:    models.Column{Name: "mixto", Values: []string{"12", "doce"}},
			wantType:  models.TypeText,
			ambiguous: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, meta := detectOne(t, cfg, tt.column)
			assert.Equal(t, tt.wantType, meta.DetectedType)
			assert.Equal(t, tt.ambiguous, meta.Ambiguous)
		})
	}
}

func TestDateFormatPrecedence(t *testing.T) {
	cfg := testConfig(t)

	// 19 of 20 values match the first format (95% coverage); the stray
	// value parses only under the second. The first qualifying format
	// must win.
	values := make([]string, 0, 20)
	for i := 0; i < 19; i++ {
		values = append(values, "2024-01-15")
	}
	values = append(values, "03/04/2024")

	_, meta := detectOne(t, cfg, models.Column{Name: "alta", Values: values})

	assert.Equal(t, models.TypeDate, meta.DetectedType)
	assert.Equal(t, "%Y-%m-%d", meta.MatchedDateFormat)
	// The straggler does not parse under the winning format and
	// coerces to null.
	assert.True(t, meta.Nullable)
}

func TestDateBelowCoverageIsText(t *testing.T) {
	cfg := testConfig(t)

	_, meta := detectOne(t, cfg, models.Column{
		Name:   "alta",
		Values: []string{"2024-01-15", "pendiente", "2023-11-02", "2023-01-01"},
	})

	assert.Equal(t, models.TypeText, meta.DetectedType)
	assert.True(t, meta.Ambiguous)
	assert.Empty(t, meta.MatchedDateFormat)
}

// ============================================================================
// Nulls, cardinality, stats
// ============================================================================

func TestNullsExcludedButSetNullable(t *testing.T) {
	cfg := testConfig(t)

	typed, meta := detectOne(t, cfg, models.Column{
		Name:   "edad",
		Values: []string{"1", "", "3", "NA"},
	})

	assert.Equal(t, models.TypeInteger, meta.DetectedType)
	assert.True(t, meta.Nullable)
	assert.Nil(t, typed.Values[1])
	assert.Nil(t, typed.Values[3])
	assert.Equal(t, int64(3), typed.Values[2])
}

func TestAllNullColumnIsNullableText(t *testing.T) {
	cfg := testConfig(t)

	typed, meta := detectOne(t, cfg, models.Column{
		Name:   "vacia",
		Values: []string{"", "null", "NaN"},
	})

	assert.Equal(t, models.TypeText, meta.DetectedType)
	assert.True(t, meta.Nullable)
	assert.False(t, meta.Ambiguous)
	for _, v := range typed.Values {
		assert.Nil(t, v)
	}
}

func TestCardinalityBoundary(t *testing.T) {
	limit := 3
	cfg, err := config.NewDetectionConfig(config.DetectionOptions{
		DateFormats:        []string{"%Y-%m-%d"},
		AllowedValuesLimit: &limit,
	})
	require.NoError(t, err)

	// Exactly K distinct values: populated in first-seen order.
	_, meta := detectOne(t, cfg, models.Column{
		Name:   "estado",
		Values: []string{"baja", "alta", "baja", "media"},
	})
	assert.Equal(t, 3, meta.DistinctCount)
	assert.Equal(t, []string{"baja", "alta", "media"}, meta.AllowedValues)

	// K+1 distinct values: not populated.
	_, meta = detectOne(t, cfg, models.Column{
		Name:   "estado",
		Values: []string{"a", "b", "c", "d"},
	})
	assert.Equal(t, 4, meta.DistinctCount)
	assert.Empty(t, meta.AllowedValues)
}

func TestColumnStats(t *testing.T) {
	cfg := testConfig(t)

	_, meta := detectOne(t, cfg, models.Column{
		Name:   "edad",
		Values: []string{"30", "7", "112"},
	})
	assert.Equal(t, "7", meta.Stats.MinValue)
	assert.Equal(t, "112", meta.Stats.MaxValue)
	assert.Equal(t, 3, meta.Stats.MaxLength)
	assert.False(t, meta.Stats.FixedLength)

	_, meta = detectOne(t, cfg, models.Column{
		Name:   "sku",
		Values: []string{"ABC", "XYZ", "QRS"},
	})
	assert.True(t, meta.Stats.FixedLength)
	assert.Equal(t, 3, meta.Stats.MaxLength)

	_, meta = detectOne(t, cfg, models.Column{
		Name:   "alta",
		Values: []string{"2024-03-01", "2022-01-15"},
	})
	assert.Equal(t, "2022-01-15", meta.Stats.MinValue)
	assert.Equal(t, "2024-03-01", meta.Stats.MaxValue)
}

// ============================================================================
// Structure
// ============================================================================

func TestColumnOrderPreserved(t *testing.T) {
	cfg := testConfig(t)

	table := &models.Table{Name: "ventas", Columns: []models.Column{
		{Name: "zeta", Values: []string{"1"}},
		{Name: "alfa", Values: []string{"x"}},
		{Name: "media", Values: []string{"2.5"}},
	}}

	optimized, metadata, err := New(cfg, nil).Detect(table)
	require.NoError(t, err)

	for i, col := range table.Columns {
		assert.Equal(t, col.Name, optimized.Columns[i].Name)
		assert.Equal(t, col.Name, metadata[i].Name)
	}
}

func TestEmptyTableFails(t *testing.T) {
	cfg := testConfig(t)

	_, _, err := New(cfg, nil).Detect(&models.Table{Name: "t"})
	require.ErrorIs(t, err, apperrors.ErrEmptyTable)
}

func TestDetectionIsDeterministic(t *testing.T) {
	cfg := testConfig(t)

	table := &models.Table{Name: "ventas", Columns: []models.Column{
		{Name: "costo_total", Values: []string{"10.5", "20.0", "", "5.25"}},
		{Name: "estado", Values: []string{"alta", "baja", "alta"}},
		{Name: "alta", Values: []string{"2024-01-15", "2023-12-01"}},
	}}

	d := New(cfg, nil)
	opt1, meta1, err := d.Detect(table)
	require.NoError(t, err)
	opt2, meta2, err := d.Detect(table)
	require.NoError(t, err)

	assert.Equal(t, opt1, opt2)
	assert.Equal(t, meta1, meta2)
}
