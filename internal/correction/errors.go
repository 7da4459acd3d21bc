package correction

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionCommitted is returned by every operation on a committed session
	ErrSessionCommitted = errors.New("correction session already committed")
	// ErrUnknownField is returned for a field path naming no field of the record
	ErrUnknownField = errors.New("unknown field")
	// ErrNotScalar is returned when Get or Set addresses a list field
	ErrNotScalar = errors.New("field holds a list; use GetList or SetList")
	// ErrNotList is returned when GetList or SetList addresses a scalar field
	ErrNotList = errors.New("field holds a single value; use Get or Set")
	// ErrIndexOutOfRange is returned for an entry index past the end of its list
	ErrIndexOutOfRange = errors.New("entry index out of range")
	// ErrUnknownCategory is returned for a skill category the record does not contain
	ErrUnknownCategory = errors.New("unknown skill category")
	// ErrInvalidValue is returned when a value cannot be stored in the field's type
	ErrInvalidValue = errors.New("invalid value")
)

// FieldError reports a rejected operation on one field path
type FieldError struct {
	Path  string
	Cause error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Path, e.Cause)
}

func (e *FieldError) Unwrap() error {
	return e.Cause
}
