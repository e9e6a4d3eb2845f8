package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNode_DefaultsLabelToName(t *testing.T) {
	s, err := RegisterNode("SomeNode")
	require.NoError(t, err)
	assert.Equal(t, []string{"SomeNode"}, s.Labels)
}

func TestRegisterNode_SortsAndDedupesLabels(t *testing.T) {
	s, err := RegisterNode("TwoNode", "Two", "Node", "Two")
	require.NoError(t, err)
	assert.Equal(t, []string{"Node", "Two"}, s.Labels)
}

func TestRegisterNode_RejectsEmptyName(t *testing.T) {
	_, err := RegisterNode("")
	require.Error(t, err)
	var schemaErr interface{ Kind() string }
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "BadNodeLabels", schemaErr.Kind())
}

func TestRegisterNode_RejectsEmptyLabelString(t *testing.T) {
	_, err := RegisterNode("Thing", "Thing", "")
	require.Error(t, err)
}

func TestRegisterEdge_DefaultsTypeToUppercasedName(t *testing.T) {
	e, err := RegisterEdge("knows", "")
	require.NoError(t, err)
	assert.Equal(t, "KNOWS", e.Type)
}

func TestRegisterEdge_ExplicitType(t *testing.T) {
	e, err := RegisterEdge("knows", "KNOWS_WELL")
	require.NoError(t, err)
	assert.Equal(t, "KNOWS_WELL", e.Type)
}

func TestRegisterEdge_RejectsEmptyName(t *testing.T) {
	_, err := RegisterEdge("", "")
	require.Error(t, err)
}

func TestProperty_CheckType(t *testing.T) {
	p := NewProperty(nil, "name", StringKind)
	assert.True(t, p.CheckType("hello"))
	assert.False(t, p.CheckType(42))
}

func TestProperty_AnyKindAcceptsEverything(t *testing.T) {
	p := NewProperty(nil, "misc")
	assert.True(t, p.CheckType(42))
	assert.True(t, p.CheckType("hello"))
	assert.True(t, p.CheckType(true))
}

func TestNewIntProperty_RejectsNonIntValues(t *testing.T) {
	p := NewIntProperty(nil, "age")
	assert.True(t, p.Check(42))
	assert.False(t, p.Check("42"))
}

func TestNewIntProperty_AcceptsInt64Range(t *testing.T) {
	p := NewIntProperty(nil, "age")
	assert.True(t, p.Check(int64(9223372036854775807)))
}
