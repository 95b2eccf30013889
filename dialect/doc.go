// Package dialect provides database dialect abstraction for the graph
// query engine.
//
// This package defines the interfaces and types used for database-specific
// operations, allowing the engine to support multiple database backends
// including PostgreSQL, MySQL, and H2 (backed by modernc.org/sqlite).
//
// # Supported Dialects
//
// The following dialects are supported:
//
//   - Postgres: PostgreSQL database (also the default)
//   - MySQL: MySQL/MariaDB database
//   - H2: an embeddable SQL engine, backed here by modernc.org/sqlite
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Transaction Interface
//
// The Tx interface extends Driver with transaction methods:
//
//	type Tx interface {
//	    Driver
//	    Commit() error
//	    Rollback() error
//	}
//
// # ExecQuerier Interface
//
// The ExecQuerier interface is implemented by both Driver and Tx:
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// # Usage
//
// Opening a database connection:
//
//	import (
//	    "github.com/syssam/relgraph/dialect"
//	    "github.com/syssam/relgraph/dialect/sql"
//	)
//
//	db, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// # Sub-packages
//
// The dialect package contains:
//
//   - dialect/sql: SQL builder and driver implementation
//   - dialect/sql/sqlgraph: constraint-error classification
package dialect
