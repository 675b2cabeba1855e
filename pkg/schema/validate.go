package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// validatable is anything with eager construction-time validation.
type validatable interface {
	Validate() error
}

// defaulter fills zero-valued fields (schema_version, timestamps) before
// validation. Defaults are applied by constructors and Decode helpers, not by
// plain json.Unmarshal, so receivers see exactly what was on the wire.
type defaulter interface {
	applyDefaults()
}

// decodeJSON unmarshals, applies defaults and validates in one step.
func decodeJSON[T any, PT interface {
	*T
	validatable
}](entity string, data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", entity, err)
	}
	pv := PT(&v)
	if d, ok := any(pv).(defaulter); ok {
		d.applyDefaults()
	}
	if err := pv.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// utcNow strips the monotonic reading so values compare equal after a
// serialization round-trip.
func utcNow() time.Time {
	return time.Now().UTC()
}

func checkMinLen(l *errList, field, value string, min int) {
	if len(value) < min {
		l.add(field, fmt.Sprintf("must be at least %d characters", min), value)
	}
}

func checkRequired(l *errList, field, value string) {
	if value == "" {
		l.add(field, "required", nil)
	}
}

// checkVec3 enforces the fixed-length rule for coordinate-frame axes and
// direction vectors: exactly 3 components.
func checkVec3(l *errList, field string, v []float64) {
	if len(v) != 3 {
		l.add(field, "must have exactly 3 components", v)
	}
}

func checkNonZeroVec3(l *errList, field string, v []float64) {
	checkVec3(l, field, v)
	if len(v) == 3 && v[0] == 0 && v[1] == 0 && v[2] == 0 {
		l.add(field, "must be a non-zero direction vector", v)
	}
}
