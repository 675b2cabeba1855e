package schema

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Cross-entity references are opaque strings minted by whichever agent creates
// the entity. The prefixes below are the pipeline-wide convention; MintID and
// the New*ID helpers produce conforming identifiers, CheckIDPrefix is the
// opt-in format check for callers that want the convention enforced.
const (
	PrefixProgram    = "prog_"
	PrefixComponent  = "comp_"
	PrefixAssembly   = "asm_"
	PrefixInterface  = "iface_"
	PrefixSimulation = "sim_"
)

// MintID returns prefix + a 12-hex-char unique suffix.
func MintID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + raw[:12]
}

func NewProgramID() string    { return MintID(PrefixProgram) }
func NewComponentID() string  { return MintID(PrefixComponent) }
func NewAssemblyID() string   { return MintID(PrefixAssembly) }
func NewInterfaceID() string  { return MintID(PrefixInterface) }
func NewSimulationID() string { return MintID(PrefixSimulation) }

// CheckIDPrefix verifies an identifier follows the prefix convention and has
// a non-empty body. The schema layer does not call this on decode (wire
// compatibility with already-stored payloads); stricter callers do.
func CheckIDPrefix(field, id, prefix string) error {
	if !strings.HasPrefix(id, prefix) || len(id) == len(prefix) {
		return &ValidationError{
			Entity: "identifier",
			Fields: []*FieldError{{
				Field:      field,
				Constraint: fmt.Sprintf("must start with %q followed by a non-empty suffix", prefix),
				Value:      id,
			}},
		}
	}
	return nil
}
