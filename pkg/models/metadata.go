package models

// ColumnStats carries the minimal per-column signals the schema
// description exports alongside the detected type.
type ColumnStats struct {
	// MinValue and MaxValue are populated for integer, float and date
	// columns, rendered as text.
	MinValue string `json:"min_value,omitempty"`
	MaxValue string `json:"max_value,omitempty"`
	// MaxLength is the longest rendered value, populated for all types.
	MaxLength int `json:"max_length"`
	// FixedLength reports that every non-null value has the same length.
	FixedLength bool `json:"fixed_length"`
}

// ColumnMetadata records how a column's type was decided.
type ColumnMetadata struct {
	Name              string       `json:"name"`
	DetectedType      SemanticType `json:"detected_type"`
	MatchedKeyword    string       `json:"matched_keyword,omitempty"`
	MatchedDateFormat string       `json:"matched_date_format,omitempty"`
	Ambiguous         bool         `json:"ambiguous"`
	Nullable          bool         `json:"nullable"`
	DistinctCount     int          `json:"distinct_count"`
	// AllowedValues holds the distinct non-null values in first-seen
	// order, populated only when DistinctCount is at or under the
	// configured cardinality limit.
	AllowedValues []string    `json:"allowed_values,omitempty"`
	Stats         ColumnStats `json:"stats"`
}
