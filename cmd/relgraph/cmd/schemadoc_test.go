package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph"
)

func writeSchemaDoc(t *testing.T, doc string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestLoadSchemaBuildsJoinDescriptors(t *testing.T) {
	path := writeSchemaDoc(t, `{
		"pks": {"account": "id"},
		"driver": "postgres",
		"joins": {
			"account/members": {"props": ["member/account_id", "account/id"], "arity": "to-many"},
			"member/account": {"props": ["member/account_id", "account/id"], "arity": "to-one"}
		}
	}`)

	s, err := LoadSchema(path)
	require.NoError(t, err)

	d, ok := s.Join("account/members")
	require.True(t, ok)
	assert.Equal(t, relgraph.ToMany, d.Arity)
	assert.Equal(t, "member", d.Props[0].Space)
	assert.Equal(t, "account_id", d.Props[0].Leaf)

	d2, ok := s.Join("member/account")
	require.True(t, ok)
	assert.Equal(t, relgraph.ToOne, d2.Arity)
}

func TestLoadSchemaDefaultsMissingMapsToEmpty(t *testing.T) {
	path := writeSchemaDoc(t, `{"joins": {}}`)
	s, err := LoadSchema(path)
	require.NoError(t, err)
	assert.Equal(t, "id", s.PK("account"))
}

func TestLoadSchemaMissingFileErrors(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadSchemaInvalidJSONErrors(t *testing.T) {
	path := writeSchemaDoc(t, `{not valid`)
	_, err := LoadSchema(path)
	require.Error(t, err)
}
