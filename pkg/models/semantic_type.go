package models

// SemanticType is the storage type inferred for a column.
type SemanticType string

const (
	TypeBoolean SemanticType = "boolean"
	TypeInteger SemanticType = "integer"
	TypeFloat   SemanticType = "float"
	TypeDate    SemanticType = "date"
	TypeText    SemanticType = "text"
)

// SemanticTypes lists every valid semantic type in inference order.
var SemanticTypes = []SemanticType{TypeBoolean, TypeInteger, TypeFloat, TypeDate, TypeText}

// Valid reports whether t is one of the five semantic types.
func (t SemanticType) Valid() bool {
	switch t {
	case TypeBoolean, TypeInteger, TypeFloat, TypeDate, TypeText:
		return true
	}
	return false
}

func (t SemanticType) String() string { return string(t) }
