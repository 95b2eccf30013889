package relgraph

import "fmt"

// Arity annotates a join descriptor: whether traversing it yields at most
// one related row (ToOne) or a list (ToMany). Arity is explicit; when
// unspecified, the default is to-many.
type Arity int

const (
	// ToMany is the default arity.
	ToMany Arity = iota
	ToOne
)

// JoinDescriptor describes how two tables relate. Props has length 2 for a
// direct join ([source-col, target-col]) or length 4 for a many-to-many
// join through a link table
// ([source-col, link-left-col, link-right-col, target-col]).
type JoinDescriptor struct {
	Props []Prop
	Arity Arity
}

// IsManyToMany reports whether the descriptor routes through a link table.
func (d *JoinDescriptor) IsManyToMany() bool { return len(d.Props) == 4 }

// validate checks the 2-or-4-length invariant.
func (d *JoinDescriptor) validate(joinProp string) error {
	if d == nil {
		return NewSchemaError("joins", fmt.Sprintf("join %q: nil descriptor", joinProp))
	}
	if len(d.Props) != 2 && len(d.Props) != 4 {
		return NewSchemaError("joins", fmt.Sprintf("join %q: descriptor must have 2 or 4 sql-properties, got %d", joinProp, len(d.Props)))
	}
	return nil
}

// Schema is the immutable mapping between the caller's graph vocabulary
// and the physical relational schema. Zero-value maps are treated as
// empty; construct with NewSchema to validate eagerly — failing validation
// is a programmer error surfaced immediately.
type Schema struct {
	// GraphToSQL maps a caller property (dotted form, e.g. "person/name")
	// to its SQL property ("member/name"), applied before any other
	// derivation.
	GraphToSQL map[string]string
	// PKs maps a table name to its primary-key column; tables absent here
	// default to "id".
	PKs map[string]string
	// Joins maps a join property to its descriptor.
	Joins map[string]*JoinDescriptor
	// Driver selects dialect-specific behavior: dialect.Postgres,
	// dialect.MySQL, dialect.H2, or dialect.Default.
	Driver string
}

// NewSchema validates s and returns it, or a *SchemaError.
func NewSchema(s *Schema) (*Schema, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the schema declares its three required parts and
// that every join descriptor is well-formed.
func (s *Schema) Validate() error {
	if s.PKs == nil {
		return NewSchemaError("pks", "schema must declare pks (may be empty, not nil)")
	}
	if s.Joins == nil {
		return NewSchemaError("joins", "schema must declare joins (may be empty, not nil)")
	}
	if s.GraphToSQL == nil {
		return NewSchemaError("graph->sql", "schema must declare graph->sql (may be empty, not nil)")
	}
	for joinProp, d := range s.Joins {
		if err := d.validate(joinProp); err != nil {
			return err
		}
	}
	return nil
}

// GraphToSQLProp applies the graph→sql remap if present, else identity,
// then normalizes dashes to underscores.
func (s *Schema) GraphToSQLProp(name string) Prop {
	if IsIDSentinel(name) {
		return Prop{Leaf: idLeaf}
	}
	if mapped, ok := s.GraphToSQL[name]; ok {
		return Sqlize(s, mapped)
	}
	return Sqlize(s, name)
}

// sqlToGraph is the inverse of the GraphToSQL remap: it renames an SQL
// property back to the caller property mapped onto it, by a linear scan of
// GraphToSQL. The result assembler does not call it; assembleRow remaps
// the caller's own names forward instead.
func (s *Schema) sqlToGraph(sqlProp string) string {
	for graph, sql := range s.GraphToSQL {
		if Sqlize(s, sql).String() == sqlProp {
			return graph
		}
	}
	return sqlProp
}

// PK returns the primary-key column for table, defaulting to "id".
func (s *Schema) PK(table string) string {
	if col, ok := s.PKs[table]; ok && col != "" {
		return col
	}
	return idLeaf
}

// IDProp returns the SQL property naming table's primary key, of the form
// "table/pk".
func (s *Schema) IDProp(table string) Prop {
	return Prop{Space: table, Leaf: s.PK(table)}
}

// Join looks up the descriptor for a join's SQL property.
func (s *Schema) Join(sqlProp string) (*JoinDescriptor, bool) {
	d, ok := s.Joins[sqlProp]
	return d, ok
}

// IDColumns returns one SQL property per table declared in PKs.
func (s *Schema) IDColumns() []Prop {
	cols := make([]Prop, 0, len(s.PKs))
	for table, col := range s.PKs {
		cols = append(cols, Prop{Space: table, Leaf: col})
	}
	return cols
}
