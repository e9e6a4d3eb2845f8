package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritamzico/neopath/internal/algebra"
	"github.com/ritamzico/neopath/internal/chain"
	"github.com/ritamzico/neopath/internal/predicate"
)

func mustAppendNode(t *testing.T, c *chain.Chain, label, userVar string, dir chain.Direction, isMatch bool) *chain.Chain {
	t.Helper()
	next, err := c.AppendNode(algebra.Leaf{Label: label}, userVar, dir, isMatch)
	require.NoError(t, err)
	return next
}

func mustAppendEdge(t *testing.T, c *chain.Chain, label, userVar string, hops *chain.HopSpec) *chain.Chain {
	t.Helper()
	next, err := c.AppendEdge(algebra.Leaf{Label: label}, userVar, hops)
	require.NoError(t, err)
	return next
}

func TestRender_SingleAnonymousNode(t *testing.T) {
	c := mustAppendNode(t, chain.Empty(), "", "", chain.DirNone, true)

	cypher, params, err := Render(c)
	require.NoError(t, err)
	assert.Equal(t, "MATCH (_a)\nRETURN _a", cypher)
	assert.Empty(t, params)
}

func TestRender_SingleLabeledNodeWithUserVar(t *testing.T) {
	c := mustAppendNode(t, chain.Empty(), "SomeLabel", "var", chain.DirNone, true)

	cypher, _, err := Render(c)
	require.NoError(t, err)
	assert.Equal(t, "MATCH (var:SomeLabel)\nRETURN var", cypher)
}

func TestRender_NodeRefLabelsSortedInline(t *testing.T) {
	s, err := registerTwoNode(t)
	require.NoError(t, err)

	c, err := chain.Empty().AppendNode(algebra.NodeRef{Schema: s}, "q", chain.DirNone, true)
	require.NoError(t, err)

	cypher, _, err := Render(c)
	require.NoError(t, err)
	assert.Equal(t, "MATCH (q:Node:Two)\nRETURN q", cypher)
}

func TestRender_RawConditions(t *testing.T) {
	c := mustAppendNode(t, chain.Empty(), "", "a", chain.DirNone, true)
	c, err := c.AppendCondition(predicate.RawCondition{Fragment: "exists(a.name)"})
	require.NoError(t, err)
	c, err = c.AppendCondition(predicate.RawCondition{Fragment: "a.age = 2"})
	require.NoError(t, err)

	cypher, params, err := Render(c)
	require.NoError(t, err)
	assert.Equal(t, "MATCH (a)\nWHERE exists(a.name)\n  AND a.age = 2\nRETURN a", cypher)
	assert.Empty(t, params)
}

func TestRender_UnboundComparisonResolvesToAttachSegment(t *testing.T) {
	prop := newTestProperty(t)
	c := mustAppendNode(t, chain.Empty(), "SomeNode", "f", chain.DirNone, true)

	c, err := c.AppendCondition(predicate.Eq(prop, 2))
	require.NoError(t, err)
	c, err = c.AppendCondition(predicate.RawCondition{Fragment: "exists(f.something)"})
	require.NoError(t, err)
	c, err = c.AppendCondition(predicate.Ne(prop, "2"))
	require.NoError(t, err)

	cypher, params, err := Render(c)
	require.NoError(t, err)
	assert.Equal(t,
		"MATCH (f:SomeNode)\nWHERE f.name = $a\n  AND exists(f.something)\n  AND f.name <> $b\nRETURN f",
		cypher,
	)
	assert.Equal(t, map[string]any{"a": 2, "b": "2"}, params)
}

func TestRender_FourEdgeChainWithHops(t *testing.T) {
	one := 1
	three := 3

	c := mustAppendNode(t, chain.Empty(), "", "", chain.DirNone, true)
	c = mustAppendEdge(t, c, "", "", &chain.HopSpec{Min: &one})
	c = mustAppendNode(t, c, "", "", chain.DirRight, false)
	c = mustAppendEdge(t, c, "", "", &chain.HopSpec{Max: &three})
	c = mustAppendNode(t, c, "", "", chain.DirRight, false)
	c = mustAppendEdge(t, c, "", "", &chain.HopSpec{Min: &one, Max: &three})
	c = mustAppendNode(t, c, "", "", chain.DirRight, false)
	c = mustAppendEdge(t, c, "", "", nil)
	c = mustAppendNode(t, c, "", "", chain.DirRight, false)

	cypher, params, err := Render(c)
	require.NoError(t, err)
	assert.Empty(t, params)
	assert.Equal(t, expectedFourEdgeCypher, cypher)
}

const expectedFourEdgeCypher = `MATCH _d = (_a)-[*1..]->(_e),
      _h = (_e)-[*..3]->(_i),
      _l = (_i)-[*1..3]->(_m),
      (_m)-[_n]->(_o)
WITH *, relationships(_d) AS _b, nodes(_d)[1..-1] AS _c,
        relationships(_h) AS _f, nodes(_h)[1..-1] AS _g,
        relationships(_l) AS _j, nodes(_l)[1..-1] AS _k
RETURN _a, _b, _c, _e, _f, _g, _i, _j, _k, _m, _n, _o`
