package neopatherr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadNodeLabels_Kind(t *testing.T) {
	err := BadNodeLabels("labels must not be empty")
	var e Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, "BadNodeLabels", e.Kind())
	assert.Equal(t, "neopath schema error (BadNodeLabels): labels must not be empty", err.Error())
}

func TestBadEdgeType_Kind(t *testing.T) {
	err := BadEdgeType("type must not be empty")
	var e Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, "BadEdgeType", e.Kind())
}

func TestMultipleEdgeTypes_Message(t *testing.T) {
	err := MultipleEdgeTypes()
	var e Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, "MultipleEdgeTypes", e.Kind())
	assert.Equal(t, "neopath algebra error (MultipleEdgeTypes): an edge can not be of two distinct types at once", err.Error())
}

func TestBadQuery_KnownRule(t *testing.T) {
	cases := []struct {
		rule, message string
	}{
		{StartWithMatch, "a query must start with match"},
		{EdgeBeforeNode, "a node can not follow another node; call connected_through first"},
		{EdgeAfterEdge, "Edge can not exist right after another edge"},
		{DoubleMatch, "match can only be called on an empty query"},
	}
	for _, tc := range cases {
		err := BadQuery(tc.rule)
		var e Error
		assert.ErrorAs(t, err, &e)
		assert.Equal(t, tc.rule, e.Kind())
		assert.Equal(t, tc.message, e.(QueryError).message)
	}
}

func TestBadQuery_UnknownRuleFallsBackToRuleString(t *testing.T) {
	err := BadQuery("SOME_NEW_RULE")
	var e Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, "SOME_NEW_RULE", e.Kind())
	assert.Equal(t, "neopath query error (SOME_NEW_RULE): SOME_NEW_RULE", err.Error())
}
