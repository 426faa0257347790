// Package detector infers the semantic storage type of every column in a
// raw table and produces the optimized, natively-typed table alongside
// per-column detection metadata.
package detector

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dataprof-io/dataprof/pkg/apperrors"
	"github.com/dataprof-io/dataprof/pkg/config"
	"github.com/dataprof-io/dataprof/pkg/models"
)

// TypeDetector applies the fixed-priority detection procedure:
// name-based text override, name-based forced float coercion, then
// content inference in the order boolean, integer, float, date, text.
//
// Detection is a pure function of (table, config): it keeps no state
// between calls and columns are evaluated independently, so callers may
// run columns in parallel against a shared detector.
type TypeDetector struct {
	cfg    *config.DetectionConfig
	logger *zap.Logger
}

// New creates a TypeDetector. If logger is nil, a no-op logger is used.
func New(cfg *config.DetectionConfig, logger *zap.Logger) *TypeDetector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypeDetector{
		cfg:    cfg,
		logger: logger.Named("detector"),
	}
}

// Detect runs type detection over every column of table. The returned
// optimized table preserves source column order; the metadata slice is
// parallel to it.
func (d *TypeDetector) Detect(table *models.Table) (*models.OptimizedTable, []models.ColumnMetadata, error) {
	if len(table.Columns) == 0 {
		return nil, nil, fmt.Errorf("detect %q: %w", table.Name, apperrors.ErrEmptyTable)
	}

	optimized := &models.OptimizedTable{
		Name:    table.Name,
		Columns: make([]models.TypedColumn, len(table.Columns)),
	}
	metadata := make([]models.ColumnMetadata, len(table.Columns))

	for i, col := range table.Columns {
		typed, meta := d.detectColumn(col)
		optimized.Columns[i] = typed
		metadata[i] = meta

		d.logger.Debug("column detected",
			zap.String("column", col.Name),
			zap.String("type", string(meta.DetectedType)),
			zap.Bool("nullable", meta.Nullable),
			zap.Bool("ambiguous", meta.Ambiguous),
			zap.Int("distinct", meta.DistinctCount))
	}

	d.logger.Info("detection complete",
		zap.String("table", table.Name),
		zap.Int("columns", len(table.Columns)),
		zap.Int("rows", table.Rows()))

	return optimized, metadata, nil
}

func (d *TypeDetector) detectColumn(col models.Column) (models.TypedColumn, models.ColumnMetadata) {
	nonNull := make([]string, 0, len(col.Values))
	nullable := false
	for _, v := range col.Values {
		if models.IsNull(v) {
			nullable = true
			continue
		}
		nonNull = append(nonNull, strings.TrimSpace(v))
	}

	meta := models.ColumnMetadata{
		Name:     col.Name,
		Nullable: nullable,
	}

	// An all-null column carries no content signal. It maps to text,
	// matching how empty columns end up as plain strings downstream.
	if len(nonNull) == 0 {
		meta.DetectedType = models.TypeText
		meta.Nullable = len(col.Values) > 0
		return textColumn(col), meta
	}

	// Name-based override: forced text.
	if kw, ok := d.cfg.MatchTextKeyword(col.Name); ok {
		meta.DetectedType = models.TypeText
		meta.MatchedKeyword = kw
		typed := textColumn(col)
		d.finalize(col, nonNull, &meta)
		return typed, meta
	}

	// Name-based override: forced float. On coercion failure the column
	// degrades to text with the ambiguous flag set, it never errors.
	if kw, ok := d.cfg.MatchFloatKeyword(col.Name); ok {
		if floats, ok := parseFloats(nonNull); ok {
			meta.DetectedType = models.TypeFloat
			meta.MatchedKeyword = kw
			typed := floatColumn(col, floats, &meta)
			d.finalize(col, nonNull, &meta)
			return typed, meta
		}
		meta.DetectedType = models.TypeText
		meta.MatchedKeyword = kw
		meta.Ambiguous = true
		typed := textColumn(col)
		d.finalize(col, nonNull, &meta)
		return typed, meta
	}

	typed := d.inferContent(col, nonNull, &meta)
	d.finalize(col, nonNull, &meta)
	return typed, meta
}

// inferContent runs content-based inference in the fixed order boolean,
// integer, float, date, text. Every candidate except date requires all
// non-null values to parse.
func (d *TypeDetector) inferContent(col models.Column, nonNull []string, meta *models.ColumnMetadata) models.TypedColumn {
	if bools, ok := d.parseBooleans(nonNull); ok {
		meta.DetectedType = models.TypeBoolean
		return boolColumn(col, bools)
	}

	if ints, ok := parseIntegers(nonNull); ok {
		meta.DetectedType = models.TypeInteger
		intStats(ints, meta)
		return intColumn(col, ints)
	}

	if floats, ok := parseFloats(nonNull); ok {
		// A float column whose values are all whole numbers in range is
		// demoted to integer.
		if ints, whole := demoteToIntegers(floats); whole {
			meta.DetectedType = models.TypeInteger
			intStats(ints, meta)
			return intColumn(col, ints)
		}
		meta.DetectedType = models.TypeFloat
		return floatColumn(col, floats, meta)
	}

	if pattern, layout, ok := d.matchDateFormat(nonNull); ok {
		meta.DetectedType = models.TypeDate
		meta.MatchedDateFormat = pattern
		return d.dateColumn(col, layout, meta)
	}

	meta.DetectedType = models.TypeText
	meta.Ambiguous = true
	return textColumn(col)
}

// finalize computes cardinality, allowed values and length stats over the
// raw non-null values.
func (d *TypeDetector) finalize(col models.Column, nonNull []string, meta *models.ColumnMetadata) {
	seen := make(map[string]struct{}, len(nonNull))
	distinct := make([]string, 0, len(nonNull))
	maxLen := 0
	fixed := true
	for _, v := range nonNull {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			distinct = append(distinct, v)
		}
		if len(v) != len(nonNull[0]) {
			fixed = false
		}
		if len(v) > maxLen {
			maxLen = len(v)
		}
	}

	meta.DistinctCount = len(distinct)
	if len(distinct) <= d.cfg.AllowedValuesLimit() {
		meta.AllowedValues = distinct
	}
	meta.Stats.MaxLength = maxLen
	meta.Stats.FixedLength = fixed && len(nonNull) > 0
}

// parseBooleans qualifies a column when every non-null value belongs to
// the recognized truth value sets.
func (d *TypeDetector) parseBooleans(values []string) ([]bool, bool) {
	out := make([]bool, len(values))
	for i, v := range values {
		b, ok := d.cfg.BooleanValue(v)
		if !ok {
			return nil, false
		}
		out[i] = b
	}
	return out, true
}

// parseIntegers qualifies a column when every non-null value is a whole
// number within the signed 64-bit range.
func parseIntegers(values []string) ([]int64, bool) {
	out := make([]int64, len(values))
	for i, v := range values {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// parseFloats qualifies a column when every non-null value parses as a
// decimal number. When commas outnumber dots across the values, the comma
// is treated as the decimal separator.
func parseFloats(values []string) ([]float64, bool) {
	sep := inferDecimalSeparator(values)
	out := make([]float64, len(values))
	for i, v := range values {
		if sep == ',' {
			v = strings.ReplaceAll(v, ",", ".")
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// inferDecimalSeparator counts values containing commas versus dots.
func inferDecimalSeparator(values []string) rune {
	comma, dot := 0, 0
	for _, v := range values {
		if strings.Contains(v, ",") {
			comma++
		}
		if strings.Contains(v, ".") {
			dot++
		}
	}
	if comma > dot {
		return ','
	}
	return '.'
}

// demoteToIntegers converts a float column to integers when every value
// has a zero fractional part and fits int64.
func demoteToIntegers(floats []float64) ([]int64, bool) {
	out := make([]int64, len(floats))
	for i, f := range floats {
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, false
		}
		out[i] = int64(f)
	}
	return out, true
}

// matchDateFormat tries each configured format in order and returns the
// first whose parse coverage over the non-null values meets the
// threshold.
func (d *TypeDetector) matchDateFormat(values []string) (pattern, layout string, ok bool) {
	for _, pair := range d.cfg.DateLayouts() {
		parsed := 0
		for _, v := range values {
			if _, err := parseDate(v, pair[1]); err == nil {
				parsed++
			}
		}
		coverage := float64(parsed) / float64(len(values))
		if coverage >= d.cfg.DateCoverage() {
			return pair[0], pair[1], true
		}
	}
	return "", "", false
}

// parseDate parses one cell under a layout. Day-precision layouts only
// look at the first len(layout) characters, so timestamps with trailing
// time components still qualify as dates.
func parseDate(v, layout string) (time.Time, error) {
	if len(v) > len(layout) && len(layout) == 10 {
		v = v[:len(layout)]
	}
	return time.Parse(layout, v)
}

func boolColumn(col models.Column, bools []bool) models.TypedColumn {
	values := make([]any, len(col.Values))
	j := 0
	for i, v := range col.Values {
		if models.IsNull(v) {
			continue
		}
		values[i] = bools[j]
		j++
	}
	return models.TypedColumn{Name: col.Name, Type: models.TypeBoolean, Values: values}
}

func intColumn(col models.Column, ints []int64) models.TypedColumn {
	values := make([]any, len(col.Values))
	j := 0
	for i, v := range col.Values {
		if models.IsNull(v) {
			continue
		}
		values[i] = ints[j]
		j++
	}
	return models.TypedColumn{Name: col.Name, Type: models.TypeInteger, Values: values}
}

func floatColumn(col models.Column, floats []float64, meta *models.ColumnMetadata) models.TypedColumn {
	values := make([]any, len(col.Values))
	j := 0
	minV, maxV := math.Inf(1), math.Inf(-1)
	for i, v := range col.Values {
		if models.IsNull(v) {
			continue
		}
		f := floats[j]
		j++
		values[i] = f
		if f < minV {
			minV = f
		}
		if f > maxV {
			maxV = f
		}
	}
	if j > 0 {
		meta.Stats.MinValue = formatFloat(minV)
		meta.Stats.MaxValue = formatFloat(maxV)
	}
	return models.TypedColumn{Name: col.Name, Type: models.TypeFloat, Values: values}
}

func (d *TypeDetector) dateColumn(col models.Column, layout string, meta *models.ColumnMetadata) models.TypedColumn {
	values := make([]any, len(col.Values))
	var minT, maxT time.Time
	for i, v := range col.Values {
		if models.IsNull(v) {
			continue
		}
		t, err := parseDate(strings.TrimSpace(v), layout)
		if err != nil {
			// Below-threshold stragglers coerce to null.
			meta.Nullable = true
			continue
		}
		values[i] = t
		if minT.IsZero() || t.Before(minT) {
			minT = t
		}
		if maxT.IsZero() || t.After(maxT) {
			maxT = t
		}
	}
	if !minT.IsZero() {
		meta.Stats.MinValue = minT.Format("2006-01-02")
		meta.Stats.MaxValue = maxT.Format("2006-01-02")
	}
	return models.TypedColumn{Name: col.Name, Type: models.TypeDate, Values: values}
}

func textColumn(col models.Column) models.TypedColumn {
	values := make([]any, len(col.Values))
	for i, v := range col.Values {
		if models.IsNull(v) {
			continue
		}
		values[i] = strings.TrimSpace(v)
	}
	return models.TypedColumn{Name: col.Name, Type: models.TypeText, Values: values}
}

func intStats(ints []int64, meta *models.ColumnMetadata) {
	if len(ints) == 0 {
		return
	}
	minV, maxV := ints[0], ints[0]
	for _, n := range ints[1:] {
		if n < minV {
			minV = n
		}
		if n > maxV {
			maxV = n
		}
	}
	meta.Stats.MinValue = strconv.FormatInt(minV, 10)
	meta.Stats.MaxValue = strconv.FormatInt(maxV, 10)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
