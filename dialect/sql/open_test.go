package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph/dialect"
)

func TestDriverNameMapsKnownDialects(t *testing.T) {
	cases := []struct {
		dialectName string
		want        string
	}{
		{dialect.Postgres, "postgres"},
		{dialect.MySQL, "mysql"},
		{dialect.H2, "sqlite"},
		{dialect.Default, "postgres"},
		{dialect.SQLite, "sqlite"},
	}
	for _, c := range cases {
		got, err := driverName(c.dialectName)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestDriverNameRejectsUnknownDialect(t *testing.T) {
	_, err := driverName("oracle")
	require.Error(t, err)
}

func TestOpenDriverUsesSQLiteForH2(t *testing.T) {
	drv, err := OpenDriver(dialect.H2, ":memory:")
	require.NoError(t, err)
	defer drv.Close()
	assert.Equal(t, "sqlite", drv.Dialect())
}

func TestOpenDriverRejectsUnknownDialect(t *testing.T) {
	_, err := OpenDriver("oracle", ":memory:")
	require.Error(t, err)
}
