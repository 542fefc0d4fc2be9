package autotree

import (
	"errors"
	"fmt"

	"github.com/roach88/oort/internal/ir"
	"github.com/roach88/oort/internal/sparql"
)

// ErrorCode categorizes tree building errors.
type ErrorCode string

const (
	// ErrCodeClassification indicates a term with an unknown type tag.
	ErrCodeClassification ErrorCode = "CLASSIFICATION"

	// ErrCodeCardinality indicates several values for a singular field in strict mode.
	ErrCodeCardinality ErrorCode = "CARDINALITY"
)

// ClassificationError is returned when a bound term has a type tag other
// than uri, bnode, literal or typed-literal. It aborts the whole build.
type ClassificationError struct {
	// Var is the variable the term was bound to, if known.
	Var string

	// Term is the offending term.
	Term sparql.Term
}

// Code returns ErrCodeClassification.
func (e *ClassificationError) Code() ErrorCode { return ErrCodeClassification }

// Error implements the error interface.
func (e *ClassificationError) Error() string {
	if e.Var != "" {
		return fmt.Sprintf("%s: unknown value type %q (var=%s)", e.Code(), e.Term.Type, e.Var)
	}
	return fmt.Sprintf("%s: unknown value type %q", e.Code(), e.Term.Type)
}

// CardinalityError is returned in strict mode when a singular field
// collects more than one value.
type CardinalityError struct {
	// Key is the tree key of the field, if known.
	Key string

	// Var is the variable feeding the field, if known.
	Var string

	// Values are the competing values.
	Values []ir.Value
}

// Code returns ErrCodeCardinality.
func (e *CardinalityError) Code() ErrorCode { return ErrCodeCardinality }

// Error implements the error interface.
func (e *CardinalityError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: expected one value for %q, got %d (var=%s)", e.Code(), e.Key, len(e.Values), e.Var)
	}
	return fmt.Sprintf("%s: expected one value, got %d", e.Code(), len(e.Values))
}

// IsClassificationError returns true if err is or wraps a ClassificationError.
func IsClassificationError(err error) bool {
	var ce *ClassificationError
	return errors.As(err, &ce)
}

// IsCardinalityError returns true if err is or wraps a CardinalityError.
func IsCardinalityError(err error) bool {
	var ce *CardinalityError
	return errors.As(err, &ce)
}
