package dialect

import "context"

// Dialect flavors recognized by the schema's `driver` field.
// H2 has no first-class Go driver; this module backs it with
// modernc.org/sqlite, an embeddable zero-server SQL engine that plays the
// same "lightweight in-process database" role H2 plays on the JVM.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	H2       = "h2"
	Default  = "default"
	// SQLite is recognized only as the underlying driver name registered
	// with database/sql for the H2 stand-in (modernc.org/sqlite); schema
	// values never set driver to it directly, they use H2.
	SQLite = "sqlite"
)

// ExecQuerier wraps the two primitive operations every dialect driver must
// support: executing a statement and running a query.
type ExecQuerier interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the database handle the engine borrows from the caller. It is
// intentionally small: connection pooling, migrations, and transaction
// policy all live outside it.
type Driver interface {
	ExecQuerier
	// Tx starts a transaction scoped to this driver's dialect.
	Tx(ctx context.Context) (Tx, error)
	// Close releases the underlying connection(s).
	Close() error
	// Dialect reports the driver flavor (Postgres, MySQL, or SQLite for
	// the H2 stand-in).
	Dialect() string
}

// Tx is a Driver bound to an open transaction.
type Tx interface {
	Driver
	Commit() error
	Rollback() error
}
