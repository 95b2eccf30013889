package relgraph

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// Comparator is one of the fixed vocabulary of filter operators. The engine
// never translates arbitrary predicates, only these.
type Comparator string

const (
	Eq   Comparator = "eq"
	Gt   Comparator = "gt"
	Lt   Comparator = "lt"
	Gte  Comparator = "gte"
	Lte  Comparator = "lte"
	Ne   Comparator = "ne"
	Null Comparator = "null"
)

var comparatorSQL = map[Comparator]string{
	Eq:  "=",
	Gt:  ">",
	Lt:  "<",
	Gte: ">=",
	Lte: "<=",
	Ne:  "!=",
}

// Rule is a single filter-parameter entry: exactly one comparator, and an
// optional depth range (inclusive, defaults 1..1000) bounding which
// traversal levels it applies to.
type Rule struct {
	Op       Comparator
	Value    any
	MinDepth int
	MaxDepth int
}

func (r Rule) minDepth() int {
	if r.MinDepth == 0 {
		return 1
	}
	return r.MinDepth
}

func (r Rule) maxDepth() int {
	if r.MaxDepth == 0 {
		return 1000
	}
	return r.MaxDepth
}

// clause is a single compiled WHERE fragment, table-qualified, carrying its
// own depth range so row-filter can select which clauses apply at a given
// traversal depth.
type clause struct {
	sql      string
	args     []any
	minDepth int
	maxDepth int
}

// Filters is the grouped-by-table result of filter-params→filters: an
// insertion-ordered map keyed by table name, so clause emission order is
// reproducible instead of depending on Go's randomized map iteration.
type Filters = orderedmap.OrderedMap[string, []clause]

// FilterParamsToFilters compiles a declarative filter-parameter map into
// Filters, grouped by each property's derived SQL table. params is itself
// insertion-ordered so clause emission order matches the order the caller
// declared its filters in.
func FilterParamsToFilters(s *Schema, params *orderedmap.OrderedMap[string, Rule]) (*Filters, error) {
	out := orderedmap.NewOrderedMap[string, []clause]()
	for el := params.Front(); el != nil; el = el.Next() {
		prop, rule := el.Key, el.Value
		c, err := compileClause(s, prop, rule)
		if err != nil {
			return nil, err
		}
		p := s.GraphToSQLProp(prop)
		existing, _ := out.Get(p.Space)
		out.Set(p.Space, append(existing, c))
	}
	return out, nil
}

func compileClause(s *Schema, prop string, rule Rule) (clause, error) {
	p := s.GraphToSQLProp(prop)
	col := fmt.Sprintf("%s.%s", p.Space, p.Leaf)

	c := clause{minDepth: rule.minDepth(), maxDepth: rule.maxDepth()}
	switch rule.Op {
	case Null:
		isNull, ok := rule.Value.(bool)
		if !ok {
			return clause{}, NewUnknownFilterOpError(prop, map[string]any{"op": rule.Op, "value": rule.Value})
		}
		if isNull {
			c.sql = col + " IS NULL"
		} else {
			c.sql = col + " IS NOT NULL"
		}
	case Eq, Gt, Lt, Gte, Lte, Ne:
		op, ok := comparatorSQL[rule.Op]
		if !ok {
			return clause{}, NewUnknownFilterOpError(prop, map[string]any{"op": rule.Op, "value": rule.Value})
		}
		c.sql = fmt.Sprintf("%s %s ?", col, op)
		c.args = []any{rule.Value}
	default:
		return clause{}, NewUnknownFilterOpError(prop, map[string]any{"op": rule.Op, "value": rule.Value})
	}
	return c, nil
}

// RowFilter composes, for the tables participating in the current SQL
// level, the subset of clauses whose depth range contains depth. Returns
// ("", nil) if nothing applies. applicableTables is walked
// in the order filters itself was populated in, restricted to the tables
// the caller names, so two equivalent calls with the same filters and
// table set always concatenate clauses in the same order.
func RowFilter(filters *Filters, applicableTables []string, depth int) (string, []any) {
	if filters == nil {
		return "", nil
	}
	want := make(map[string]bool, len(applicableTables))
	for _, t := range applicableTables {
		want[t] = true
	}

	var parts []string
	var args []any
	for el := filters.Front(); el != nil; el = el.Next() {
		if !want[el.Key] {
			continue
		}
		for _, c := range el.Value {
			if depth < c.minDepth || depth > c.maxDepth {
				continue
			}
			parts = append(parts, c.sql)
			args = append(args, c.args...)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, " AND "), args
}
