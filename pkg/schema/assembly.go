package schema

import (
	"fmt"
	"time"
)

// AssemblyIntent is the component exchange one level up: it composes child
// components and nested sub-assemblies and names the interface contracts that
// define their internal mates.
type AssemblyIntent struct {
	SchemaVersion    string `json:"schema_version"`
	AssemblyID       string `json:"assembly_id"`
	ParentProgramID  string `json:"parent_program_id"`
	ParentAssemblyID string `json:"parent_assembly_id,omitempty"`

	AssemblyName          string `json:"assembly_name"`
	FunctionalDescription string `json:"functional_description"`

	ChildComponents []string `json:"child_components,omitempty"`
	ChildAssemblies []string `json:"child_assemblies,omitempty"`

	InterfaceContracts    []string       `json:"interface_contracts,omitempty"`
	MatingInstructions    string         `json:"mating_instructions,omitempty"`
	AssemblyConstraints   map[string]any `json:"assembly_constraints,omitempty"`
	ReferenceRequirements []string       `json:"reference_requirements,omitempty"`

	Revision  int       `json:"revision"`
	IsFrozen  bool      `json:"is_frozen"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAssemblyIntent fills defaults and validates eagerly.
func NewAssemblyIntent(i AssemblyIntent) (*AssemblyIntent, error) {
	i.applyDefaults()
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return &i, nil
}

// DecodeAssemblyIntent unmarshals and validates a wire payload.
func DecodeAssemblyIntent(data []byte) (*AssemblyIntent, error) {
	return decodeJSON[AssemblyIntent]("AssemblyIntent", data)
}

func (i *AssemblyIntent) applyDefaults() {
	if i.SchemaVersion == "" {
		i.SchemaVersion = DefaultSchemaVersion
	}
	if i.Revision == 0 {
		i.Revision = 1
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = utcNow()
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = i.CreatedAt
	}
}

func (i *AssemblyIntent) Validate() error {
	l := errList{entity: "AssemblyIntent"}
	checkRequired(&l, "assembly_id", i.AssemblyID)
	checkRequired(&l, "parent_program_id", i.ParentProgramID)
	checkMinLen(&l, "assembly_name", i.AssemblyName, 1)
	checkMinLen(&l, "functional_description", i.FunctionalDescription, 10)
	if i.Revision < 1 {
		l.add("revision", "must be >= 1", i.Revision)
	}
	l.addErr(checkNoCADRefs("assembly_constraints", i.AssemblyConstraints))
	return l.err()
}

// BOMLine is one bill-of-materials entry.
type BOMLine struct {
	ComponentID   string `json:"component_id"`
	ComponentName string `json:"component_name,omitempty"`
	Quantity      int    `json:"quantity"`
}

// MatingRelationship records one component-to-component mate and the
// interface contract it originates from.
type MatingRelationship struct {
	InterfaceID string `json:"interface_id"`
	ComponentA  string `json:"component_a"`
	ComponentB  string `json:"component_b"`
	MateType    string `json:"mate_type"`
}

// AssemblyPackage is the assembly agent's validated response: artifacts, BOM,
// mates and the interference/clearance verdicts.
type AssemblyPackage struct {
	SchemaVersion   string `json:"schema_version"`
	AssemblyID      string `json:"assembly_id"`
	ParentProgramID string `json:"parent_program_id"`

	ArtifactURIs map[string]string `json:"artifact_uris"`

	BOM                 []BOMLine            `json:"bom,omitempty"`
	MatingRelationships []MatingRelationship `json:"mating_relationships,omitempty"`

	ValidationStatus    ValidationStatus `json:"validation_status"`
	InterferenceCheck   map[string]any   `json:"interference_check,omitempty"`
	ClearanceViolations []string         `json:"clearance_violations,omitempty"`
	EnvelopeCompliance  *bool            `json:"envelope_compliance,omitempty"`

	AssemblyNotes string    `json:"assembly_notes,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// NewAssemblyPackage fills defaults and validates eagerly.
func NewAssemblyPackage(p AssemblyPackage) (*AssemblyPackage, error) {
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeAssemblyPackage unmarshals and validates a wire payload.
func DecodeAssemblyPackage(data []byte) (*AssemblyPackage, error) {
	return decodeJSON[AssemblyPackage]("AssemblyPackage", data)
}

func (p *AssemblyPackage) applyDefaults() {
	if p.SchemaVersion == "" {
		p.SchemaVersion = DefaultSchemaVersion
	}
	if p.GeneratedAt.IsZero() {
		p.GeneratedAt = utcNow()
	}
}

func (p *AssemblyPackage) Validate() error {
	l := errList{entity: "AssemblyPackage"}
	checkRequired(&l, "assembly_id", p.AssemblyID)
	checkRequired(&l, "parent_program_id", p.ParentProgramID)
	if len(p.ArtifactURIs) == 0 {
		l.add("artifact_uris", "must contain at least one artifact", nil)
	}
	if !p.ValidationStatus.valid() {
		l.add("validation_status", `must be "passed", "warnings" or "failed"`, string(p.ValidationStatus))
	}
	for idx, line := range p.BOM {
		if line.ComponentID == "" {
			l.add("bom", fmt.Sprintf("entry %d: component_id required", idx), nil)
		}
		if line.Quantity < 1 {
			l.add("bom", fmt.Sprintf("entry %d: quantity must be >= 1", idx), line.Quantity)
		}
	}
	for idx, m := range p.MatingRelationships {
		if m.ComponentA == "" || m.ComponentB == "" {
			l.add("mating_relationships", fmt.Sprintf("entry %d: both components required", idx), nil)
		}
		if m.InterfaceID == "" {
			l.add("mating_relationships", fmt.Sprintf("entry %d: interface_id required", idx), nil)
		}
	}
	return l.err()
}

// CorrelateIntent cross-checks a package against its originating intent.
// Beyond identity, a package claiming validation_status "passed" must cover
// every child component the intent listed in its BOM; a passing verdict over
// an incomplete BOM is the cross-object invariant this guards.
func (p *AssemblyPackage) CorrelateIntent(intent *AssemblyIntent) error {
	l := errList{entity: "AssemblyPackage"}
	if p.AssemblyID != intent.AssemblyID {
		l.add("assembly_id", fmt.Sprintf("does not match intent assembly_id %q", intent.AssemblyID), p.AssemblyID)
	}
	if p.ParentProgramID != intent.ParentProgramID {
		l.add("parent_program_id", fmt.Sprintf("does not match intent parent_program_id %q", intent.ParentProgramID), p.ParentProgramID)
	}
	if p.ValidationStatus == ValidationPassed {
		inBOM := make(map[string]bool, len(p.BOM))
		for _, line := range p.BOM {
			inBOM[line.ComponentID] = true
		}
		for _, childID := range intent.ChildComponents {
			if !inBOM[childID] {
				l.add("bom", fmt.Sprintf("child component %q missing from BOM of a passed package", childID), nil)
			}
		}
	}
	return l.err()
}
