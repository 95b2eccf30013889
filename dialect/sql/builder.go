package sql

import (
	"fmt"
	"strings"
)

// Builder is the fluent SQL construction entry point (sql.Dialect(...).
// Select()...Query()), scoped to exactly what the SQL emitter needs: a
// SELECT list, a single FROM target, an optional INNER JOIN to a link
// table, and a WHERE clause built from AND-composed fragments. It does not
// implement general predicate composition (AND/OR trees, EXISTS
// subqueries) — the engine never needs it.
type Builder struct {
	dialect string
}

// Dialect starts a builder for the given dialect flavor. The flavor is
// recorded on the Selector but does not change the rendered SQL: every
// dialect gets the same text, with `?` placeholders.
func Dialect(name string) *Builder {
	return &Builder{dialect: name}
}

// Select starts a SELECT statement with the given column expressions.
func (b *Builder) Select(columns ...string) *Selector {
	return &Selector{dialect: b.dialect, columns: append([]string(nil), columns...)}
}

// SelectTable names a table (optionally aliased) to select from or join.
type SelectTable struct {
	name  string
	alias string
}

// Table names a table for use in From/Join.
func Table(name string) *SelectTable {
	return &SelectTable{name: name}
}

// As sets an alias for the table.
func (t *SelectTable) As(alias string) *SelectTable {
	t.alias = alias
	return t
}

// ref returns the identifier this table is referred to by in other clauses.
func (t *SelectTable) ref() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

func (t *SelectTable) String() string {
	if t.alias != "" && t.alias != t.name {
		return fmt.Sprintf("%s AS %s", t.name, t.alias)
	}
	return t.name
}

// joinClause is a single INNER JOIN the selector emits.
type joinClause struct {
	table   *SelectTable
	onLeft  string
	onRight string
}

// Selector builds a single SELECT statement.
type Selector struct {
	dialect string
	columns []string
	from    *SelectTable
	joins   []joinClause
	wheres  []string
	args    []any
}

// From sets the FROM target.
func (s *Selector) From(t *SelectTable) *Selector {
	s.from = t
	return s
}

// Join appends an INNER JOIN against t; call On immediately after to
// supply the join condition.
func (s *Selector) Join(t *SelectTable) *joinBuilder {
	return &joinBuilder{sel: s, table: t}
}

type joinBuilder struct {
	sel   *Selector
	table *SelectTable
}

// On completes a Join with an equality condition between two fully
// qualified columns (e.g. "link.account_id", "account.id").
func (j *joinBuilder) On(left, right string) *Selector {
	j.sel.joins = append(j.sel.joins, joinClause{table: j.table, onLeft: left, onRight: right})
	return j.sel
}

// Where ANDs a raw SQL fragment (using `?` placeholders) with its
// parameters into the WHERE clause.
func (s *Selector) Where(fragment string, args ...any) *Selector {
	if fragment == "" {
		return s
	}
	s.wheres = append(s.wheres, fragment)
	s.args = append(s.args, args...)
	return s
}

// Query renders the statement and its parameters, in MySQL/Postgres/H2
// compatible form. Placeholders are rendered as `?`; the id-set is
// literal-spliced rather than parameterized, so Query never needs
// dialect-specific `$N` numbering for the IN-list itself.
func (s *Selector) Query() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(s.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(s.from.String())
	for _, j := range s.joins {
		fmt.Fprintf(&sb, " INNER JOIN %s ON %s = %s", j.table.String(), j.onLeft, j.onRight)
	}
	if len(s.wheres) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(s.wheres, " AND "))
	}
	return sb.String(), s.args
}
