package schema

import "time"

// DefaultSchemaVersion stamps entities that do not declare one explicitly.
const DefaultSchemaVersion = "1.0.0"

// CoordinateFrame defines a reference frame with geometric primitives only.
// Axes are direction vectors of exactly 3 components.
type CoordinateFrame struct {
	Origin               []float64 `json:"origin"`
	XAxis                []float64 `json:"x_axis"`
	YAxis                []float64 `json:"y_axis"`
	ZAxis                []float64 `json:"z_axis"`
	ReferenceDescription string    `json:"reference_description"`
}

func (f *CoordinateFrame) Validate() error {
	l := errList{entity: "CoordinateFrame"}
	f.check(&l)
	return l.err()
}

// check validates in place so parent entities can fold frame violations into
// their own aggregate.
func (f *CoordinateFrame) check(l *errList) {
	checkVec3(l, "origin", f.Origin)
	checkNonZeroVec3(l, "x_axis", f.XAxis)
	checkNonZeroVec3(l, "y_axis", f.YAxis)
	checkNonZeroVec3(l, "z_axis", f.ZAxis)
	checkRequired(l, "reference_description", f.ReferenceDescription)
}

// InterfaceContract is the frozen geometric boundary between two design
// entities. It is the anchor for cross-component consistency: intents and
// packages reference it by interface_id only.
//
// Lifecycle: created unfrozen by a design agent, frozen exactly once, never
// deleted. A frozen contract is superseded by a new identifier (see Revise),
// never edited in place.
type InterfaceContract struct {
	SchemaVersion   string           `json:"schema_version"`
	InterfaceID     string           `json:"interface_id"`
	ParentProgramID string           `json:"parent_program_id"`
	ComponentA      string           `json:"component_a"`
	ComponentB      string           `json:"component_b"`
	InterfaceType   InterfaceType    `json:"interface_type"`
	Description     string           `json:"description"`
	CoordinateFrame *CoordinateFrame `json:"coordinate_frame,omitempty"`
	GeometricSpec   map[string]any   `json:"geometric_spec,omitempty"`
	Tolerance       string           `json:"tolerance,omitempty"`
	IsFrozen        bool             `json:"is_frozen"`
	// FrozenAt is stamped by Freeze but may be nil on the wire: stored
	// contracts can be frozen without a timestamp.
	FrozenAt  *time.Time `json:"frozen_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewInterfaceContract fills defaults, validates eagerly and returns the
// contract, or a *ValidationError naming every violated constraint.
func NewInterfaceContract(c InterfaceContract) (*InterfaceContract, error) {
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// DecodeInterfaceContract unmarshals and validates a wire payload.
func DecodeInterfaceContract(data []byte) (*InterfaceContract, error) {
	return decodeJSON[InterfaceContract]("InterfaceContract", data)
}

func (c *InterfaceContract) applyDefaults() {
	if c.SchemaVersion == "" {
		c.SchemaVersion = DefaultSchemaVersion
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utcNow()
	}
}

func (c *InterfaceContract) Validate() error {
	l := errList{entity: "InterfaceContract"}
	checkRequired(&l, "interface_id", c.InterfaceID)
	checkRequired(&l, "parent_program_id", c.ParentProgramID)
	checkRequired(&l, "component_a", c.ComponentA)
	checkRequired(&l, "component_b", c.ComponentB)
	if !c.InterfaceType.valid() {
		l.add("interface_type", "must be a known interface type", string(c.InterfaceType))
	}
	checkMinLen(&l, "description", c.Description, 10)
	if c.CoordinateFrame != nil {
		c.CoordinateFrame.check(&l)
	}
	l.addErr(checkNoCADRefs("geometric_spec", c.GeometricSpec))
	return l.err()
}

// Freeze transitions DRAFT -> FROZEN. The transition is one-way: freezing an
// already-frozen contract returns *AlreadyFrozenError instead of silently
// re-stamping the timestamp.
func (c *InterfaceContract) Freeze() error {
	if c.IsFrozen {
		var at time.Time
		if c.FrozenAt != nil {
			at = *c.FrozenAt
		}
		return &AlreadyFrozenError{InterfaceID: c.InterfaceID, FrozenAt: at}
	}
	now := utcNow()
	c.IsFrozen = true
	c.FrozenAt = &now
	return nil
}

// SetGeometricSpec replaces the free-form geometric parameters. Rejected with
// *FrozenViolationError once the contract is frozen.
func (c *InterfaceContract) SetGeometricSpec(spec map[string]any) error {
	if c.IsFrozen {
		return &FrozenViolationError{InterfaceID: c.InterfaceID, Field: "geometric_spec"}
	}
	if fe := checkNoCADRefs("geometric_spec", spec); fe != nil {
		return &ValidationError{Entity: "InterfaceContract", Fields: []*FieldError{fe}}
	}
	c.GeometricSpec = spec
	return nil
}

// SetCoordinateFrame replaces the reference frame. Rejected once frozen.
func (c *InterfaceContract) SetCoordinateFrame(frame *CoordinateFrame) error {
	if c.IsFrozen {
		return &FrozenViolationError{InterfaceID: c.InterfaceID, Field: "coordinate_frame"}
	}
	if frame != nil {
		if err := frame.Validate(); err != nil {
			return err
		}
	}
	c.CoordinateFrame = frame
	return nil
}

// SetTolerance replaces the tolerance specification. Rejected once frozen.
func (c *InterfaceContract) SetTolerance(tolerance string) error {
	if c.IsFrozen {
		return &FrozenViolationError{InterfaceID: c.InterfaceID, Field: "tolerance"}
	}
	c.Tolerance = tolerance
	return nil
}

// Revise mints the unfrozen successor of a contract under a new identifier.
// This is the only sanctioned way to change frozen geometry: the old contract
// stays immutable and referenceable, the successor starts a fresh lifecycle.
func (c *InterfaceContract) Revise(newID string) (*InterfaceContract, error) {
	next := *c
	next.InterfaceID = newID
	next.IsFrozen = false
	next.FrozenAt = nil
	next.CreatedAt = utcNow()
	if c.GeometricSpec != nil {
		next.GeometricSpec = make(map[string]any, len(c.GeometricSpec))
		for k, v := range c.GeometricSpec {
			next.GeometricSpec[k] = v
		}
	}
	if c.CoordinateFrame != nil {
		frame := *c.CoordinateFrame
		next.CoordinateFrame = &frame
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return &next, nil
}
