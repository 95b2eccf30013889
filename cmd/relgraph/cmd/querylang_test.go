package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph"
)

func TestParseQueryLeavesAndNestedJoin(t *testing.T) {
	doc := `[
		"id",
		"account/name",
		{"join": "account/members", "sub": ["id", "member/name"]}
	]`
	q, err := ParseQuery([]byte(doc))
	require.NoError(t, err)
	require.Len(t, q, 3)

	assert.Equal(t, relgraph.Leaf("id"), q[0])
	assert.Equal(t, relgraph.Leaf("account/name"), q[1])

	j, ok := q[2].(relgraph.Join)
	require.True(t, ok)
	assert.Equal(t, "account/members", j.JoinProp)
	sub, ok := j.Sub.(relgraph.Query)
	require.True(t, ok)
	assert.Equal(t, relgraph.Query{relgraph.Leaf("id"), relgraph.Leaf("member/name")}, sub)
}

func TestParseQueryRestSentinel(t *testing.T) {
	doc := `[{"join": "account/spouse", "rest": true}]`
	q, err := ParseQuery([]byte(doc))
	require.NoError(t, err)
	require.Len(t, q, 1)

	j := q[0].(relgraph.Join)
	assert.Equal(t, relgraph.Rest, j.Sub)
}

func TestParseQueryIntegerDepth(t *testing.T) {
	doc := `[{"join": "account/spouse", "depth": 3}]`
	q, err := ParseQuery([]byte(doc))
	require.NoError(t, err)
	j := q[0].(relgraph.Join)
	assert.Equal(t, 3, j.Sub)
}

func TestParseQueryInvalidJSONErrors(t *testing.T) {
	_, err := ParseQuery([]byte(`{not valid`))
	require.Error(t, err)
}
