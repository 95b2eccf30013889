package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph"
)

func TestLoadFiltersEmptyPathReturnsNil(t *testing.T) {
	filters, err := loadFilters(nil, "")
	require.NoError(t, err)
	assert.Nil(t, filters)
}

func TestLoadFiltersParsesOrderedRules(t *testing.T) {
	s, err := relgraph.NewSchema(&relgraph.Schema{
		GraphToSQL: map[string]string{},
		PKs:        map[string]string{},
		Joins:      map[string]*relgraph.JoinDescriptor{},
	})
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "filters.json")
	doc := `[
		{"prop": "account/name", "op": "eq", "value": "acme"},
		{"prop": "member/active", "op": "null", "value": false, "min_depth": 2}
	]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	filters, err := loadFilters(s, path)
	require.NoError(t, err)

	where, args := relgraph.RowFilter(filters, []string{"account"}, 1)
	assert.Equal(t, "account.name = ?", where)
	assert.Equal(t, []any{"acme"}, args)

	where, _ = relgraph.RowFilter(filters, []string{"member"}, 1)
	assert.Empty(t, where, "min_depth 2 should not apply at depth 1")
}

func TestLoadFiltersMissingFileErrors(t *testing.T) {
	_, err := loadFilters(nil, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
