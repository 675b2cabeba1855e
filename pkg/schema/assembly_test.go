package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAssemblyIntent() AssemblyIntent {
	return AssemblyIntent{
		AssemblyID:            "asm_mount",
		ParentProgramID:       "prog_motor_mount",
		AssemblyName:          "Motor Mount Assembly",
		FunctionalDescription: "Complete assembly for mounting NEMA 17 motor to extrusion",
		ChildComponents:       []string{"comp_bracket", "comp_spacer"},
		InterfaceContracts:    []string{"iface_motor_holes"},
		MatingInstructions:    "Motor fastened to bracket with 4x M3x8mm screws",
	}
}

func validAssemblyPackage() AssemblyPackage {
	return AssemblyPackage{
		AssemblyID:      "asm_mount",
		ParentProgramID: "prog_motor_mount",
		ArtifactURIs:    map[string]string{"step": "storage/asm_mount_rev1.step"},
		BOM: []BOMLine{
			{ComponentID: "comp_bracket", ComponentName: "Bracket", Quantity: 1},
			{ComponentID: "comp_spacer", ComponentName: "Spacer", Quantity: 2},
		},
		MatingRelationships: []MatingRelationship{
			{InterfaceID: "iface_motor_holes", ComponentA: "comp_bracket", ComponentB: "comp_spacer", MateType: "planar_coincident"},
		},
		ValidationStatus: ValidationPassed,
	}
}

func TestAssemblyIntent_NestedAssemblies(t *testing.T) {
	intent := validAssemblyIntent()
	intent.ChildAssemblies = []string{"asm_sub_gripper"}
	intent.ParentAssemblyID = "asm_root"
	a, err := NewAssemblyIntent(intent)
	require.NoError(t, err)
	assert.Equal(t, []string{"asm_sub_gripper"}, a.ChildAssemblies)
}

func TestAssemblyIntent_Validation(t *testing.T) {
	intent := validAssemblyIntent()
	intent.AssemblyName = ""
	_, err := NewAssemblyIntent(intent)
	require.Error(t, err)
	assert.Equal(t, "assembly_name", FieldErrors(err)[0].Field)
}

func TestAssemblyPackage_BOMValidation(t *testing.T) {
	pkg := validAssemblyPackage()
	pkg.BOM = append(pkg.BOM, BOMLine{ComponentID: "comp_screw", Quantity: 0})
	_, err := NewAssemblyPackage(pkg)
	require.Error(t, err)
	assert.Equal(t, "bom", FieldErrors(err)[0].Field)
}

func TestAssemblyPackage_MatingValidation(t *testing.T) {
	pkg := validAssemblyPackage()
	pkg.MatingRelationships = []MatingRelationship{{ComponentA: "comp_bracket"}}
	_, err := NewAssemblyPackage(pkg)
	require.Error(t, err)
	assert.Len(t, FieldErrors(err), 2, "missing component_b and interface_id")
}

func TestAssemblyPackage_CorrelateIntent(t *testing.T) {
	intent, err := NewAssemblyIntent(validAssemblyIntent())
	require.NoError(t, err)

	t.Run("passed with full BOM", func(t *testing.T) {
		pkg, err := NewAssemblyPackage(validAssemblyPackage())
		require.NoError(t, err)
		require.NoError(t, pkg.CorrelateIntent(intent))
	})

	t.Run("passed with incomplete BOM is rejected", func(t *testing.T) {
		incomplete := validAssemblyPackage()
		incomplete.BOM = incomplete.BOM[:1] // drop comp_spacer
		pkg, err := NewAssemblyPackage(incomplete)
		require.NoError(t, err)

		err = pkg.CorrelateIntent(intent)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "comp_spacer")
	})

	t.Run("incomplete BOM tolerated below passed", func(t *testing.T) {
		warned := validAssemblyPackage()
		warned.BOM = warned.BOM[:1]
		warned.ValidationStatus = ValidationWarnings
		pkg, err := NewAssemblyPackage(warned)
		require.NoError(t, err)
		require.NoError(t, pkg.CorrelateIntent(intent))
	})
}

func TestAssemblyRoundTrip(t *testing.T) {
	envelopeOK := true
	pkg := validAssemblyPackage()
	pkg.EnvelopeCompliance = &envelopeOK
	pkg.InterferenceCheck = map[string]any{"interferences_found": 0.0, "checked_pairs": 6.0}
	pkg.ClearanceViolations = []string{"comp_bracket/comp_spacer below 0.5mm"}

	p, err := NewAssemblyPackage(pkg)
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	decoded, err := DecodeAssemblyPackage(data)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}
