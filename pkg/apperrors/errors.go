// Package apperrors defines the error taxonomy shared across dataprof.
//
// Detection ambiguity is deliberately absent: a column that fails every
// inference degrades to text with the ambiguous flag set, it never errors.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDialect   = errors.New("unknown dialect")
	ErrEmptyTable       = errors.New("table has no columns")
	ErrDuplicateColumn  = errors.New("duplicate column name")
	ErrUnsupportedInput = errors.New("unsupported input format")
)

// ConfigurationError reports a malformed or incomplete detection
// configuration source.
type ConfigurationError struct {
	Source string // file path or description of the config source
	Reason string
	Err    error // underlying parse error, may be nil
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration %s: %s", e.Source, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UnsupportedTypeError reports a semantic type a dialect has no mapping for.
// Dialects must surface this instead of substituting a default SQL type.
type UnsupportedTypeError struct {
	Dialect      string
	SemanticType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("dialect %s: no SQL type mapping for semantic type %q", e.Dialect, e.SemanticType)
}

// IdentifierTooLongError reports an identifier exceeding a dialect's
// naming limit.
type IdentifierTooLongError struct {
	Dialect    string
	Identifier string
	Limit      int
}

func (e *IdentifierTooLongError) Error() string {
	return fmt.Sprintf("dialect %s: identifier %q exceeds %d character limit", e.Dialect, e.Identifier, e.Limit)
}
