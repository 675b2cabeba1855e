package schema

// Enumerations serialize as their literal lowercase_snake wire strings to stay
// compatible with payloads already persisted by other agents in the pipeline.

// InterfaceType classifies the geometric boundary between two design entities.
type InterfaceType string

const (
	InterfaceMechanicalMate      InterfaceType = "mechanical_mate"
	InterfaceBoltPattern         InterfaceType = "bolt_pattern"
	InterfaceAlignmentFeature    InterfaceType = "alignment_feature"
	InterfaceClearanceEnvelope   InterfaceType = "clearance_envelope"
	InterfaceElectricalConnector InterfaceType = "electrical_connector"
	InterfaceFluidPort           InterfaceType = "fluid_port"
)

func (t InterfaceType) valid() bool {
	switch t {
	case InterfaceMechanicalMate, InterfaceBoltPattern, InterfaceAlignmentFeature,
		InterfaceClearanceEnvelope, InterfaceElectricalConnector, InterfaceFluidPort:
		return true
	}
	return false
}

// ValidationStatus is the outcome of an agent's validation pass. "warnings" is
// a first-class outcome distinct from both pass and hard fail, which is why
// this is not a boolean.
type ValidationStatus string

const (
	ValidationPassed   ValidationStatus = "passed"
	ValidationWarnings ValidationStatus = "warnings"
	ValidationFailed   ValidationStatus = "failed"
)

func (s ValidationStatus) valid() bool {
	switch s {
	case ValidationPassed, ValidationWarnings, ValidationFailed:
		return true
	}
	return false
}

// SimulationType identifies the engineering analysis to run.
type SimulationType string

const (
	SimStaticStress       SimulationType = "static_stress"
	SimModalAnalysis      SimulationType = "modal_analysis"
	SimThermalSteadyState SimulationType = "thermal_steady_state"
	SimThermalTransient   SimulationType = "thermal_transient"
	SimBuckling           SimulationType = "buckling"
	SimFatigue            SimulationType = "fatigue"
)

func (t SimulationType) valid() bool {
	switch t {
	case SimStaticStress, SimModalAnalysis, SimThermalSteadyState,
		SimThermalTransient, SimBuckling, SimFatigue:
		return true
	}
	return false
}

// BoundaryConditionType classifies how a region is constrained.
type BoundaryConditionType string

const (
	BCFixed        BoundaryConditionType = "fixed"
	BCDisplacement BoundaryConditionType = "displacement"
	BCSymmetry     BoundaryConditionType = "symmetry"
	BCContact      BoundaryConditionType = "contact"
	BCRemoteForce  BoundaryConditionType = "remote_force"
)

func (t BoundaryConditionType) valid() bool {
	switch t {
	case BCFixed, BCDisplacement, BCSymmetry, BCContact, BCRemoteForce:
		return true
	}
	return false
}

// LoadType classifies an applied load.
type LoadType string

const (
	LoadForce       LoadType = "force"
	LoadPressure    LoadType = "pressure"
	LoadMoment      LoadType = "moment"
	LoadGravity     LoadType = "gravity"
	LoadTemperature LoadType = "temperature"
)

func (t LoadType) valid() bool {
	switch t {
	case LoadForce, LoadPressure, LoadMoment, LoadGravity, LoadTemperature:
		return true
	}
	return false
}

// SimulationStatus is solver-completion state, distinct from the pass_fail
// acceptance verdict: a run can succeed numerically yet fail an engineering
// acceptance criterion.
type SimulationStatus string

const (
	SimStatusSuccess  SimulationStatus = "success"
	SimStatusFailed   SimulationStatus = "failed"
	SimStatusDiverged SimulationStatus = "diverged"
)

func (s SimulationStatus) valid() bool {
	switch s {
	case SimStatusSuccess, SimStatusFailed, SimStatusDiverged:
		return true
	}
	return false
}
