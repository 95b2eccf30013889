package relgraph

// sqlPropOf returns the SQL property an element resolves to, and whether
// it participates in table derivation at all (the id/db/id sentinel does
// not).
func sqlPropOf(s *Schema, el Element) (Prop, bool) {
	switch v := el.(type) {
	case Leaf:
		if IsIDSentinel(string(v)) {
			return Prop{}, false
		}
		return s.GraphToSQLProp(string(v)), true
	case Join:
		return s.GraphToSQLProp(v.JoinProp), true
	default:
		return Prop{}, false
	}
}

// TableFor derives the single SQL table a query belongs to. Every
// element's space must agree; otherwise it returns an
// *UnresolvableTableError naming q.
func TableFor(s *Schema, q Query) (string, error) {
	var table string
	seen := false
	for _, el := range q {
		p, ok := sqlPropOf(s, el)
		if !ok {
			continue
		}
		if !seen {
			table = p.Space
			seen = true
			continue
		}
		if p.Space != table {
			return "", NewUnresolvableTableError(q)
		}
	}
	if !seen {
		return "", NewUnresolvableTableError(q)
	}
	return table, nil
}

// JoinDirection classifies a join relative to the table it appears on.
type JoinDirection int

const (
	// Forward joins hold the foreign key on the source (current) table.
	Forward JoinDirection = iota
	// Reverse joins hold the foreign key on the target table.
	Reverse
)

// SQLPropForJoin returns the column on the current table that resolves
// joinProp, and whether the join is Forward or Reverse.
func SQLPropForJoin(s *Schema, joinProp string) (Prop, JoinDirection, error) {
	jp := s.GraphToSQLProp(joinProp)
	sourceTable := jp.Space
	d, ok := s.Join(jp.String())
	if !ok {
		return Prop{}, Forward, NewSchemaError("joins", "no join descriptor for "+jp.String())
	}
	if d.Props[0].Space == sourceTable {
		return d.Props[0], Forward, nil
	}
	return s.IDProp(sourceTable), Reverse, nil
}

// IsForward reports whether joinProp is a forward join on the table
// currently being queried.
func IsForward(s *Schema, joinProp string) (bool, error) {
	_, dir, err := SQLPropForJoin(s, joinProp)
	return dir == Forward, err
}

// IsReverse reports whether joinProp is a reverse join on the table
// currently being queried.
func IsReverse(s *Schema, joinProp string) (bool, error) {
	_, dir, err := SQLPropForJoin(s, joinProp)
	return dir == Reverse, err
}

// ColumnsFor derives the minimum set of SQL properties the SELECT list
// must contain for q's level: the table's PK, every leaf's SQL property,
// and every forward join's FK column. Reverse joins
// contribute nothing — their FK lives on the target table and is fetched
// at the next level.
func ColumnsFor(s *Schema, q Query) ([]Prop, error) {
	table, err := TableFor(s, q)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var cols []Prop
	add := func(p Prop) {
		if key := p.String(); !seen[key] {
			seen[key] = true
			cols = append(cols, p)
		}
	}
	add(s.IDProp(table))
	for _, el := range q {
		switch v := el.(type) {
		case Leaf:
			if IsIDSentinel(string(v)) {
				continue
			}
			add(s.GraphToSQLProp(string(v)))
		case Join:
			fk, dir, err := SQLPropForJoin(s, v.JoinProp)
			if err != nil {
				return nil, err
			}
			if dir == Forward {
				add(fk)
			}
		}
	}
	return cols, nil
}
