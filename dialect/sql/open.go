package sql

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/relgraph/dialect"
)

// driverName maps a Schema.Driver dialect to the database/sql driver name
// registered by the blank-imported packages above.
func driverName(dialectName string) (string, error) {
	switch dialectName {
	case dialect.Postgres, dialect.Default:
		return "postgres", nil
	case dialect.MySQL:
		return "mysql", nil
	case dialect.H2, dialect.SQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("dialect/sql: unknown dialect %q", dialectName)
	}
}

// OpenDriver opens a *Driver for the named relgraph dialect, registering
// the matching database/sql driver implementation. H2 deployments always
// resolve to modernc.org/sqlite, an embedded engine well suited to the
// lightweight, zero-server role H2 plays.
func OpenDriver(dialectName, dsn string) (*Driver, error) {
	name, err := driverName(dialectName)
	if err != nil {
		return nil, err
	}
	return Open(name, dsn)
}
