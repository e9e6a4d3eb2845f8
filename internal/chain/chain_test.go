package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritamzico/neopath/internal/algebra"
	"github.com/ritamzico/neopath/internal/neopatherr"
	"github.com/ritamzico/neopath/internal/predicate"
)

func kindOf(t *testing.T, err error) string {
	t.Helper()
	var neoErr neopatherr.Error
	require.ErrorAs(t, err, &neoErr)
	return neoErr.Kind()
}

func TestAppendNode_RequiresMatchOnEmptyChain(t *testing.T) {
	_, err := Empty().AppendNode(algebra.Leaf{}, "", DirNone, false)
	require.Error(t, err)
	assert.Equal(t, neopatherr.StartWithMatch, kindOf(t, err))
}

func TestAppendEdge_RequiresMatchOnEmptyChain(t *testing.T) {
	_, err := Empty().AppendEdge(algebra.Leaf{}, "", nil)
	require.Error(t, err)
	assert.Equal(t, neopatherr.StartWithMatch, kindOf(t, err))
}

func TestAppendNode_MatchTwiceIsDoubleMatch(t *testing.T) {
	c, err := Empty().AppendNode(algebra.Leaf{}, "a", DirNone, true)
	require.NoError(t, err)

	_, err = c.AppendNode(algebra.Leaf{}, "b", DirNone, true)
	require.Error(t, err)
	assert.Equal(t, neopatherr.DoubleMatch, kindOf(t, err))
}

func TestAppendNode_AfterNodeWithoutEdgeIsEdgeBeforeNode(t *testing.T) {
	c, err := Empty().AppendNode(algebra.Leaf{}, "a", DirNone, true)
	require.NoError(t, err)

	_, err = c.AppendNode(algebra.Leaf{}, "b", DirRight, false)
	require.Error(t, err)
	assert.Equal(t, neopatherr.EdgeBeforeNode, kindOf(t, err))
}

func TestAppendEdge_AfterEdgeIsEdgeAfterEdge(t *testing.T) {
	c, err := Empty().AppendNode(algebra.Leaf{}, "a", DirNone, true)
	require.NoError(t, err)
	c, err = c.AppendEdge(algebra.Leaf{}, "", nil)
	require.NoError(t, err)

	_, err = c.AppendEdge(algebra.Leaf{}, "", nil)
	require.Error(t, err)
	assert.Equal(t, neopatherr.EdgeAfterEdge, kindOf(t, err))
	assert.Equal(t, "Edge can not exist right after another edge", err.Error())
}

func TestAppendNode_ValidAlternation(t *testing.T) {
	c, err := Empty().AppendNode(algebra.Leaf{Label: "A"}, "", DirNone, true)
	require.NoError(t, err)
	c, err = c.AppendEdge(algebra.Leaf{Label: "E"}, "", nil)
	require.NoError(t, err)
	c, err = c.AppendNode(algebra.Leaf{Label: "B"}, "", DirRight, false)
	require.NoError(t, err)

	assert.Len(t, c.Segments, 3)
}

func TestAppendCondition_RequiresNonEmptyChain(t *testing.T) {
	_, err := Empty().AppendCondition(predicate.RawCondition{Fragment: "true"})
	require.Error(t, err)
	assert.Equal(t, neopatherr.StartWithMatch, kindOf(t, err))
}

func TestAppendCondition_AttachesToLastSegment(t *testing.T) {
	c, err := Empty().AppendNode(algebra.Leaf{}, "a", DirNone, true)
	require.NoError(t, err)
	c, err = c.AppendEdge(algebra.Leaf{}, "e", nil)
	require.NoError(t, err)
	c, err = c.AppendCondition(predicate.RawCondition{Fragment: "true"})
	require.NoError(t, err)

	require.Len(t, c.Conditions, 1)
	assert.Equal(t, 1, c.Conditions[0].SegmentIndex)
}

func TestChain_AppendDoesNotMutateReceiver(t *testing.T) {
	base, err := Empty().AppendNode(algebra.Leaf{}, "a", DirNone, true)
	require.NoError(t, err)

	_, err = base.AppendEdge(algebra.Leaf{}, "", nil)
	require.NoError(t, err)

	assert.Len(t, base.Segments, 1)
}

func TestHopSpec_Shape(t *testing.T) {
	one, three := 1, 3
	assert.Equal(t, "", HopSpec{}.Shape())
	assert.Equal(t, "*1..", HopSpec{Min: &one}.Shape())
	assert.Equal(t, "*..3", HopSpec{Max: &three}.Shape())
	assert.Equal(t, "*1..3", HopSpec{Min: &one, Max: &three}.Shape())
}
