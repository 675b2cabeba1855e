package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintID(t *testing.T) {
	id := NewComponentID()
	assert.True(t, strings.HasPrefix(id, "comp_"))
	assert.Len(t, id, len("comp_")+12)
	assert.NotEqual(t, id, NewComponentID())
}

func TestCheckIDPrefix(t *testing.T) {
	require.NoError(t, CheckIDPrefix("interface_id", "iface_motor_holes", PrefixInterface))

	err := CheckIDPrefix("interface_id", "motor_holes", PrefixInterface)
	require.Error(t, err)
	assert.Equal(t, "interface_id", FieldErrors(err)[0].Field)

	err = CheckIDPrefix("interface_id", "iface_", PrefixInterface)
	require.Error(t, err, "prefix alone is not an identifier")
}
