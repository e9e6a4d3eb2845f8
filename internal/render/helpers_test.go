package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ritamzico/neopath/internal/schema"
)

func registerTwoNode(t *testing.T) (*schema.NodeSchema, error) {
	t.Helper()
	return schema.RegisterNode("TwoNode", "Two", "Node")
}

func newTestProperty(t *testing.T) *schema.Property {
	t.Helper()
	someNode, err := schema.RegisterNode("SomeNode")
	require.NoError(t, err)
	return schema.NewProperty(someNode, "name")
}
