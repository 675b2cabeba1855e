package schema

import (
	"fmt"
	"time"
)

// ComponentIntent is the request half of the single-part design exchange:
// everything a component agent needs to generate one part.
type ComponentIntent struct {
	SchemaVersion    string `json:"schema_version"`
	ComponentID      string `json:"component_id"`
	ParentProgramID  string `json:"parent_program_id"`
	ParentAssemblyID string `json:"parent_assembly_id,omitempty"`

	ComponentName         string `json:"component_name"`
	FunctionalDescription string `json:"functional_description"`

	InterfaceContracts    []string       `json:"interface_contracts,omitempty"`
	MaterialPreference    string         `json:"material_preference,omitempty"`
	ManufacturingProcess  string         `json:"manufacturing_process,omitempty"`
	DesignConstraints     map[string]any `json:"design_constraints,omitempty"`
	ReferenceRequirements []string       `json:"reference_requirements,omitempty"`

	Revision  int       `json:"revision"`
	IsFrozen  bool      `json:"is_frozen"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewComponentIntent fills defaults and validates eagerly.
func NewComponentIntent(i ComponentIntent) (*ComponentIntent, error) {
	i.applyDefaults()
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return &i, nil
}

// DecodeComponentIntent unmarshals and validates a wire payload.
func DecodeComponentIntent(data []byte) (*ComponentIntent, error) {
	return decodeJSON[ComponentIntent]("ComponentIntent", data)
}

func (i *ComponentIntent) applyDefaults() {
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

func (i *ComponentIntent) Validate() error {
	l := errList{entity: "ComponentIntent"}
	checkRequired(&l, "component_id", i.ComponentID)
	checkRequired(&l, "parent_program_id", i.ParentProgramID)
	checkMinLen(&l, "component_name", i.ComponentName, 1)
	checkMinLen(&l, "functional_description", i.FunctionalDescription, 10)
	if i.Revision < 1 {
		l.add("revision", "must be >= 1", i.Revision)
	}
	l.addErr(checkNoCADRefs("design_constraints", i.DesignConstraints))
	return l.err()
}

// ComponentPackage is the response half: the validated result of a component
// agent's work on an intent, correlated by identity.
type ComponentPackage struct {
	SchemaVersion   string `json:"schema_version"`
	ComponentID     string `json:"component_id"`
	ParentProgramID string `json:"parent_program_id"`

	ArtifactURIs     map[string]string `json:"artifact_uris"`
	SemanticTags     map[string]string `json:"semantic_tags,omitempty"`
	DesignParameters map[string]any    `json:"design_parameters,omitempty"`

	ValidationStatus    ValidationStatus `json:"validation_status"`
	ValidationMessages  []string         `json:"validation_messages,omitempty"`
	InterfaceCompliance map[string]bool  `json:"interface_compliance,omitempty"`

	DesignNotes string    `json:"design_notes,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewComponentPackage fills defaults and validates eagerly.
func NewComponentPackage(p ComponentPackage) (*ComponentPackage, error) {
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeComponentPackage unmarshals and validates a wire payload.
func DecodeComponentPackage(data []byte) (*ComponentPackage, error) {
	return decodeJSON[ComponentPackage]("ComponentPackage", data)
}

func (p *ComponentPackage) applyDefaults() {
	if p.SchemaVersion == "" {
		p.SchemaVersion = DefaultSchemaVersion
	}
	if p.GeneratedAt.IsZero() {
		p.GeneratedAt = utcNow()
	}
}

func (p *ComponentPackage) Validate() error {
	l := errList{entity: "ComponentPackage"}
	checkRequired(&l, "component_id", p.ComponentID)
	checkRequired(&l, "parent_program_id", p.ParentProgramID)
	if len(p.ArtifactURIs) == 0 {
		l.add("artifact_uris", "must contain at least one artifact", nil)
	}
	for format, uri := range p.ArtifactURIs {
		if uri == "" {
			l.add("artifact_uris", fmt.Sprintf("artifact %q has empty URI", format), nil)
		}
	}
	if !p.ValidationStatus.valid() {
		l.add("validation_status", `must be "passed", "warnings" or "failed"`, string(p.ValidationStatus))
	}
	return l.err()
}

// CorrelateIntent cross-checks a package against the intent it answers:
// identity must match (correlation is by identifier, not object reference)
// and every interface contract the intent named must have a compliance entry.
func (p *ComponentPackage) CorrelateIntent(intent *ComponentIntent) error {
	l := errList{entity: "ComponentPackage"}
	if p.ComponentID != intent.ComponentID {
		l.add("component_id", fmt.Sprintf("does not match intent component_id %q", intent.ComponentID), p.ComponentID)
	}
	if p.ParentProgramID != intent.ParentProgramID {
		l.add("parent_program_id", fmt.Sprintf("does not match intent parent_program_id %q", intent.ParentProgramID), p.ParentProgramID)
	}
	for _, ifaceID := range intent.InterfaceContracts {
		if _, ok := p.InterfaceCompliance[ifaceID]; !ok {
			l.add("interface_compliance", fmt.Sprintf("missing entry for interface %q required by the intent", ifaceID), nil)
		}
	}
	return l.err()
}
