package models

import "github.com/google/uuid"

// SchemaEntry is one column of the generated schema description.
type SchemaEntry struct {
	Name          string       `json:"name"`
	SemanticType  SemanticType `json:"semantic_type"`
	SQLType       string       `json:"sql_type"`
	Nullable      bool         `json:"nullable"`
	AllowedValues []string     `json:"allowed_values,omitempty"`
	MaxLength     int          `json:"max_length"`
	ValueRange    string       `json:"value_range,omitempty"`
}

// Profile is the result of one schema generation run. ID identifies the
// run in logs; it is never embedded in the exported artifacts, which stay
// byte-for-byte reproducible.
type Profile struct {
	ID        uuid.UUID     `json:"id"`
	TableName string        `json:"table_name"`
	Dialect   string        `json:"dialect"`
	Entries   []SchemaEntry `json:"entries"`
	DDL       string        `json:"ddl"`
}
