package relgraph

// Record is a single result row in caller-facing shape: caller property ->
// scalar, nested *Record* (to-one join), or []Record (to-many join).
type Record map[string]any

// assembleRow renames row's SQL properties back to the caller's vocabulary
// and folds in this level's already arity-enforced child results. row is
// keyed by SQL property string (e.g. "account/name"); children is keyed by
// JoinProp.
func assembleRow(s *Schema, q Query, row map[string]any, children map[string]any) Record {
	out := make(Record, len(q))
	table, _ := TableFor(s, q)
	pk := s.IDProp(table).String()

	for _, el := range q {
		switch v := el.(type) {
		case Leaf:
			name := string(v)
			if IsIDSentinel(name) {
				out[name] = row[pk]
				continue
			}
			sqlProp := s.GraphToSQLProp(name).String()
			out[name] = row[sqlProp]
		case Join:
			val, ok := children[v.JoinProp]
			if !ok {
				val = defaultChildValue(s, v.JoinProp)
			}
			out[v.JoinProp] = val
		}
	}
	return out
}

// defaultChildValue is what a join sub-query resolves to when it produced
// no rows: nil for to-one, an empty (non-nil) list for to-many, so callers
// always get exactly one entry per join sub-query.
func defaultChildValue(s *Schema, joinProp string) any {
	jp := s.GraphToSQLProp(joinProp)
	d, ok := s.Join(jp.String())
	if ok && d.Arity == ToOne {
		return nil
	}
	return []Record{}
}
