package schema

import (
	"fmt"
	"time"
)

// BoundaryCondition constrains a geometric region. The region is a free-form
// mapping under the same discipline as InterfaceContract geometry: coordinates
// and vectors only, never CAD internals. Known region shapes are additionally
// decoded strictly (see ParseRegion).
type BoundaryCondition struct {
	BCType          BoundaryConditionType `json:"bc_type"`
	GeometricRegion map[string]any        `json:"geometric_region"`
	Values          map[string]float64    `json:"values,omitempty"`
}

func (bc *BoundaryCondition) check(l *errList, idx int) {
	prefix := fmt.Sprintf("boundary_conditions[%d].", idx)
	if !bc.BCType.valid() {
		l.add(prefix+"bc_type", "must be a known boundary condition type", string(bc.BCType))
	}
	if len(bc.GeometricRegion) == 0 {
		l.add(prefix+"geometric_region", "required", nil)
		return
	}
	if _, err := ParseRegion(bc.GeometricRegion); err != nil {
		for _, fe := range FieldErrors(err) {
			l.add(prefix+"geometric_region", fe.Constraint, fe.Value)
		}
	}
}

// Load applies a load of a given magnitude to a geometric region.
type Load struct {
	LoadType        LoadType       `json:"load_type"`
	Magnitude       float64        `json:"magnitude"`
	Direction       []float64      `json:"direction,omitempty"`
	GeometricRegion map[string]any `json:"geometric_region"`
}

func (ld *Load) check(l *errList, idx int) {
	prefix := fmt.Sprintf("loads[%d].", idx)
	if !ld.LoadType.valid() {
		l.add(prefix+"load_type", "must be a known load type", string(ld.LoadType))
	}
	if ld.Direction != nil {
		checkNonZeroVec3(l, prefix+"direction", ld.Direction)
	}
	if len(ld.GeometricRegion) == 0 {
		l.add(prefix+"geometric_region", "required", nil)
		return
	}
	if _, err := ParseRegion(ld.GeometricRegion); err != nil {
		for _, fe := range FieldErrors(err) {
			l.add(prefix+"geometric_region", fe.Constraint, fe.Value)
		}
	}
}

// MaterialProperties carries the physical constants a solver needs, with
// unit-sanity bounds enforced at construction.
type MaterialProperties struct {
	MaterialName           string   `json:"material_name"`
	YoungsModulusGPa       float64  `json:"youngs_modulus_gpa"`
	PoissonsRatio          float64  `json:"poissons_ratio"`
	DensityKgM3            float64  `json:"density_kg_m3"`
	YieldStrengthMPa       *float64 `json:"yield_strength_mpa,omitempty"`
	UltimateStrengthMPa    *float64 `json:"ultimate_strength_mpa,omitempty"`
	ThermalConductivityWmK *float64 `json:"thermal_conductivity_w_mk,omitempty"`
	SpecificHeatJKgK       *float64 `json:"specific_heat_j_kgk,omitempty"`
}

func (m *MaterialProperties) check(l *errList) {
	checkRequired(l, "material_name", m.MaterialName)
	if m.YoungsModulusGPa <= 0 {
		l.add("youngs_modulus_gpa", "must be > 0", m.YoungsModulusGPa)
	}
	if m.PoissonsRatio < 0 || m.PoissonsRatio > 0.5 {
		l.add("poissons_ratio", "must be in [0, 0.5]", m.PoissonsRatio)
	}
	if m.DensityKgM3 <= 0 {
		l.add("density_kg_m3", "must be > 0", m.DensityKgM3)
	}
	if m.YieldStrengthMPa != nil && *m.YieldStrengthMPa <= 0 {
		l.add("yield_strength_mpa", "must be > 0 when present", *m.YieldStrengthMPa)
	}
	if m.UltimateStrengthMPa != nil && *m.UltimateStrengthMPa <= 0 {
		l.add("ultimate_strength_mpa", "must be > 0 when present", *m.UltimateStrengthMPa)
	}
}

// MeshSettings controls FEA mesh generation.
type MeshSettings struct {
	ElementSizeMM     float64          `json:"element_size_mm"`
	RefinementRegions []map[string]any `json:"refinement_regions,omitempty"`
	ElementOrder      int              `json:"element_order"`
}

func (m *MeshSettings) check(l *errList) {
	if m.ElementSizeMM <= 0 {
		l.add("element_size_mm", "must be > 0", m.ElementSizeMM)
	}
	if m.ElementOrder != 1 && m.ElementOrder != 2 {
		l.add("element_order", "must be 1 (linear) or 2 (quadratic)", m.ElementOrder)
	}
	for idx, region := range m.RefinementRegions {
		l.addErr(checkNoCADRefs(fmt.Sprintf("refinement_regions[%d]", idx), region))
	}
}

// SimulationRequest is the complete analysis request handed to the simulation
// agent.
type SimulationRequest struct {
	SchemaVersion   string `json:"schema_version"`
	SimulationID    string `json:"simulation_id"`
	ComponentID     string `json:"component_id"`
	ParentProgramID string `json:"parent_program_id"`

	ArtifactURI    string         `json:"artifact_uri"`
	SimulationType SimulationType `json:"simulation_type"`

	BoundaryConditions []BoundaryCondition `json:"boundary_conditions,omitempty"`
	Loads              []Load              `json:"loads,omitempty"`
	MaterialProperties MaterialProperties  `json:"material_properties"`
	MeshSettings       MeshSettings        `json:"mesh_settings"`
	AnalysisSettings   map[string]any      `json:"analysis_settings,omitempty"`
}

// NewSimulationRequest fills defaults and validates eagerly.
func NewSimulationRequest(r SimulationRequest) (*SimulationRequest, error) {
	r.applyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeSimulationRequest unmarshals and validates a wire payload.
func DecodeSimulationRequest(data []byte) (*SimulationRequest, error) {
	return decodeJSON[SimulationRequest]("SimulationRequest", data)
}

func (r *SimulationRequest) applyDefaults() {
	if r.SchemaVersion == "" {
		r.SchemaVersion = DefaultSchemaVersion
	}
	if r.MeshSettings.ElementOrder == 0 {
		r.MeshSettings.ElementOrder = 1
	}
}

func (r *SimulationRequest) Validate() error {
	l := errList{entity: "SimulationRequest"}
	checkRequired(&l, "simulation_id", r.SimulationID)
	checkRequired(&l, "component_id", r.ComponentID)
	checkRequired(&l, "parent_program_id", r.ParentProgramID)
	checkRequired(&l, "artifact_uri", r.ArtifactURI)
	if !r.SimulationType.valid() {
		l.add("simulation_type", "must be a known simulation type", string(r.SimulationType))
	}
	for idx := range r.BoundaryConditions {
		r.BoundaryConditions[idx].check(&l, idx)
	}
	for idx := range r.Loads {
		r.Loads[idx].check(&l, idx)
	}
	r.MaterialProperties.check(&l)
	r.MeshSettings.check(&l)
	return l.err()
}

// SimulationReport summarizes a finished run. Status is solver completion;
// PassFail is the engineering acceptance verdict. Both can be present
// independently.
type SimulationReport struct {
	SchemaVersion   string `json:"schema_version"`
	ReportID        string `json:"report_id"`
	ComponentID     string `json:"component_id"`
	ParentProgramID string `json:"parent_program_id"`

	SimulationType SimulationType   `json:"simulation_type"`
	Status         SimulationStatus `json:"status"`

	MaxStressMPa      *float64 `json:"max_stress_mpa,omitempty"`
	MaxDisplacementMM *float64 `json:"max_displacement_mm,omitempty"`
	SafetyFactor      *float64 `json:"safety_factor,omitempty"`
	PassFail          *bool    `json:"pass_fail,omitempty"`
	Summary           string   `json:"summary,omitempty"`

	ArtifactRefs []string  `json:"artifact_refs,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// NewSimulationReport fills defaults and validates eagerly.
func NewSimulationReport(r SimulationReport) (*SimulationReport, error) {
	r.applyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeSimulationReport unmarshals and validates a wire payload.
func DecodeSimulationReport(data []byte) (*SimulationReport, error) {
	return decodeJSON[SimulationReport]("SimulationReport", data)
}

func (r *SimulationReport) applyDefaults() {
	if r.SchemaVersion == "" {
		r.SchemaVersion = DefaultSchemaVersion
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = utcNow()
	}
}

func (r *SimulationReport) Validate() error {
	l := errList{entity: "SimulationReport"}
	checkRequired(&l, "report_id", r.ReportID)
	checkRequired(&l, "component_id", r.ComponentID)
	checkRequired(&l, "parent_program_id", r.ParentProgramID)
	if !r.SimulationType.valid() {
		l.add("simulation_type", "must be a known simulation type", string(r.SimulationType))
	}
	if !r.Status.valid() {
		l.add("status", `must be "success", "failed" or "diverged"`, string(r.Status))
	}
	if r.MaxStressMPa != nil && *r.MaxStressMPa < 0 {
		l.add("max_stress_mpa", "must be >= 0 when present", *r.MaxStressMPa)
	}
	if r.SafetyFactor != nil && *r.SafetyFactor <= 0 {
		l.add("safety_factor", "must be > 0 when present", *r.SafetyFactor)
	}
	return l.err()
}
