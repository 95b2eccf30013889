// Package sql provides the SQL query building primitives and the
// database/sql-backed driver the graph query engine runs on.
//
// # Builder
//
// Selector builds a single SELECT statement: a column list, a FROM
// target, at most one INNER JOIN (used for many-to-many traversal), and
// an AND-composed WHERE clause.
//
//	q, args := sql.Dialect(dialect.Postgres).
//	    Select(`account.id AS "account/id"`).
//	    From(sql.Table("account")).
//	    Where("account.id IN (1,5,7,9)").
//	    Query()
//
// # Driver
//
// Driver wraps a database/sql.DB (or Tx) and implements
// github.com/syssam/relgraph/dialect.Driver, so the engine can borrow a
// caller-owned handle without knowing which database/sql driver backs it.
package sql
