package schema

import (
	"fmt"
	"strings"
	"time"
)

// FieldError reports a single schema constraint violation.
type FieldError struct {
	Field      string // Wire name of the offending field (e.g., "functional_description")
	Constraint string // Human-readable constraint that was violated
	Value      any    // The value that failed validation, nil if absent
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Constraint)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Field, e.Constraint, e.Value)
}

// ValidationError aggregates every constraint violation found while
// constructing or decoding an entity. Constructors return it eagerly so
// malformed messages never enter the pipeline.
type ValidationError struct {
	Entity string // Entity type name (e.g., "ComponentIntent")
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s: %s", e.Entity, e.Fields[0].Error())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d validation errors:", e.Entity, len(e.Fields))
	for i, fe := range e.Fields {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, fe.Error())
	}
	return b.String()
}

// FieldErrors returns the individual violations if err is a *ValidationError,
// nil otherwise. Calling agents branch on this instead of parsing messages.
func FieldErrors(err error) []*FieldError {
	if ve, ok := err.(*ValidationError); ok {
		return ve.Fields
	}
	return nil
}

// AlreadyFrozenError is returned when freezing an InterfaceContract that is
// already frozen. It signals a caller-logic bug, not a transient condition.
type AlreadyFrozenError struct {
	InterfaceID string
	FrozenAt    time.Time
}

func (e *AlreadyFrozenError) Error() string {
	return fmt.Sprintf("interface contract %q already frozen at %s",
		e.InterfaceID, e.FrozenAt.Format(time.RFC3339))
}

// FrozenViolationError is returned when geometric content of a frozen
// InterfaceContract is edited. Frozen geometry is immutable under its
// identifier; a change requires minting a new interface_id.
type FrozenViolationError struct {
	InterfaceID string
	Field       string
}

func (e *FrozenViolationError) Error() string {
	return fmt.Sprintf("interface contract %q is frozen: cannot modify %q", e.InterfaceID, e.Field)
}

// errList accumulates field violations during validation of one entity.
type errList struct {
	entity string
	fields []*FieldError
}

func (l *errList) add(field, constraint string, value any) {
	l.fields = append(l.fields, &FieldError{Field: field, Constraint: constraint, Value: value})
}

func (l *errList) addErr(fe *FieldError) {
	if fe != nil {
		l.fields = append(l.fields, fe)
	}
}

func (l *errList) err() error {
	if len(l.fields) == 0 {
		return nil
	}
	return &ValidationError{Entity: l.entity, Fields: l.fields}
}
