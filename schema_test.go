package relgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaRejectsNilMaps(t *testing.T) {
	_, err := NewSchema(&Schema{Joins: map[string]*JoinDescriptor{}, GraphToSQL: map[string]string{}})
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
}

func TestNewSchemaRejectsBadJoinDescriptorLength(t *testing.T) {
	_, err := NewSchema(&Schema{
		PKs:        map[string]string{},
		GraphToSQL: map[string]string{},
		Joins: map[string]*JoinDescriptor{
			"account/members": {Props: []Prop{{Space: "account", Leaf: "id"}}},
		},
	})
	require.Error(t, err)
}

func TestNewSchemaAcceptsManyToManyDescriptor(t *testing.T) {
	s, err := NewSchema(&Schema{
		PKs:        map[string]string{},
		GraphToSQL: map[string]string{},
		Joins: map[string]*JoinDescriptor{
			"invoice/items": {
				Props: []Prop{
					{Space: "invoice", Leaf: "id"},
					{Space: "invoice_item", Leaf: "invoice_id"},
					{Space: "invoice_item", Leaf: "item_id"},
					{Space: "item", Leaf: "id"},
				},
				Arity: ToMany,
			},
		},
	})
	require.NoError(t, err)
	d, ok := s.Join("invoice/items")
	require.True(t, ok)
	assert.True(t, d.IsManyToMany())
}

func TestSchemaPKDefaultsToID(t *testing.T) {
	s, err := NewSchema(&Schema{PKs: map[string]string{"account": "uuid"}, Joins: map[string]*JoinDescriptor{}, GraphToSQL: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, "uuid", s.PK("account"))
	assert.Equal(t, "id", s.PK("member"))
}

func TestSchemaIDProp(t *testing.T) {
	s, err := NewSchema(&Schema{PKs: map[string]string{"account": "uuid"}, Joins: map[string]*JoinDescriptor{}, GraphToSQL: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, Prop{Space: "account", Leaf: "uuid"}, s.IDProp("account"))
}

func TestSchemaGraphToSQLPropAppliesRemap(t *testing.T) {
	s, err := NewSchema(&Schema{
		PKs:        map[string]string{},
		GraphToSQL: map[string]string{"person/name": "member/name"},
		Joins:      map[string]*JoinDescriptor{},
	})
	require.NoError(t, err)
	assert.Equal(t, Prop{Space: "member", Leaf: "name"}, s.GraphToSQLProp("person/name"))
	assert.Equal(t, Prop{Space: "account", Leaf: "name"}, s.GraphToSQLProp("account/name"))
}

func TestSchemaIDColumns(t *testing.T) {
	s, err := NewSchema(&Schema{
		PKs:        map[string]string{"account": "id", "member": "uuid"},
		GraphToSQL: map[string]string{},
		Joins:      map[string]*JoinDescriptor{},
	})
	require.NoError(t, err)
	cols := s.IDColumns()
	assert.Len(t, cols, 2)
}
