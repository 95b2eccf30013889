package relgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProp(t *testing.T) {
	assert.Equal(t, Prop{Leaf: "id"}, ParseProp("id"))
	assert.Equal(t, Prop{Space: "account", Leaf: "name"}, ParseProp("account/name"))
	assert.Equal(t, Prop{Leaf: "db/id"}, ParseProp("db/id"))
}

func TestPropString(t *testing.T) {
	assert.Equal(t, "id", Prop{Leaf: "id"}.String())
	assert.Equal(t, "account/name", Prop{Space: "account", Leaf: "name"}.String())
}

func TestIsIDSentinel(t *testing.T) {
	assert.True(t, IsIDSentinel("id"))
	assert.True(t, IsIDSentinel("db/id"))
	assert.False(t, IsIDSentinel("account/id"))
}

func TestSqlizeReplacesDashes(t *testing.T) {
	p := Sqlize(nil, "link-table/foo-bar")
	assert.Equal(t, "link_table", p.Space)
	assert.Equal(t, "foo_bar", p.Leaf)
}

func TestSqlizeLeavesCleanNamesAlone(t *testing.T) {
	p := Sqlize(nil, "account/name")
	assert.Equal(t, Prop{Space: "account", Leaf: "name"}, p)
}
