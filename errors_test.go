package relgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaErrorIsDetectable(t *testing.T) {
	err := NewSchemaError("pks", "schema must declare pks (may be empty, not nil)")
	assert.True(t, IsSchemaError(err))
	assert.False(t, IsSchemaError(errors.New("plain")))
	assert.Contains(t, err.Error(), "pks")
}

func TestUnresolvableTableErrorIsDetectable(t *testing.T) {
	err := NewUnresolvableTableError(Query{Leaf("account/name"), Leaf("member/name")})
	assert.True(t, IsUnresolvableTable(err))
	assert.False(t, IsUnresolvableTable(errors.New("plain")))
}

func TestUnknownFilterOpErrorIsDetectable(t *testing.T) {
	err := NewUnknownFilterOpError("account/name", map[string]any{"op": "bogus"})
	assert.True(t, IsUnknownFilterOp(err))
	assert.Contains(t, err.Error(), "account/name")
}

func TestDepthExceededErrorIsDetectable(t *testing.T) {
	err := NewDepthExceededError("account/spouse", 1000)
	assert.True(t, IsDepthExceeded(err))
	assert.Contains(t, err.Error(), "1000")
}

func TestSeedErrorMessage(t *testing.T) {
	err := NewSeedError("joe", "placeholder reused as a PK across two inserts")
	assert.Contains(t, err.Error(), "joe")
	assert.Contains(t, err.Error(), "reused")
}
