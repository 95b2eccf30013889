package relgraph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	gsql "github.com/syssam/relgraph/dialect/sql"
)

// ColumnSpec renders a SQL property as a SELECT list entry, aliased back
// to its caller-facing form: `table.col AS "table/col"`.
func ColumnSpec(_ *Schema, p Prop) string {
	return fmt.Sprintf(`%s.%s AS "%s"`, p.Space, p.Leaf, p.String())
}

// idToInt64 coerces an id value to int64. Ids are assumed safe integers;
// the id-set is spliced as literals, never parameterized.
func idToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

// renderIDList renders an id-set as ascending, comma-joined integer
// literals.
func renderIDList(ids []any) (string, error) {
	nums := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, ok := idToInt64(id)
		if !ok {
			return "", fmt.Errorf("relgraph: non-integer id %v in id-set", id)
		}
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.FormatInt(n, 10)
	}
	return strings.Join(parts, ","), nil
}

// sortedColumns returns cols sorted lexicographically by SQL property
// string, for deterministic SQL.
func sortedColumns(cols []Prop) []Prop {
	out := append([]Prop(nil), cols...)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// queryPlan is the resolved shape of a single-level query, computed once
// by QueryFor and also consulted by the traversal driver to know how to
// gather the next level's root-ids.
type queryPlan struct {
	Table        string
	FilterColumn Prop
	LinkColumn   *Prop // set only for many-to-many joins
}

// QueryFor emits `SELECT ... FROM ... WHERE ...` for one traversal level.
//
//   - incomingJoinProp == "": the query targets idSet as PKs of
//     TableFor(q); filter column is table.pk.
//   - incomingJoinProp names a direct (2-element) join: target table and
//     filter column are whichever descriptor element does not belong to
//     the join's own (source) table: for forward joins, the FK value(s) in
//     the parent rows; for reverse joins, the set of parent PKs is exactly
//     idSet in that case. The filter column is added to the SELECT list
//     so the traversal driver can group rows by parent.
//   - incomingJoinProp names a many-to-many (4-element) join: the FROM
//     clause becomes `target INNER JOIN link ON link.col = target.col`;
//     the filter column is the link table's parent-referencing column,
//     which is also added to the SELECT list so the assembler can
//     re-group rows by parent.
func QueryFor(s *Schema, incomingJoinProp string, q Query, idSet []any, whereFragment string, whereArgs []any) (string, []any, *queryPlan, error) {
	if len(idSet) == 0 {
		return "", nil, nil, nil
	}
	cols, err := ColumnsFor(s, q)
	if err != nil {
		return "", nil, nil, err
	}

	var (
		table  string
		plan   *queryPlan
		linkOn [2]Prop // [link-side, target-side]
	)
	if incomingJoinProp == "" {
		t, err := TableFor(s, q)
		if err != nil {
			return "", nil, nil, err
		}
		table = t
		plan = &queryPlan{Table: table, FilterColumn: s.IDProp(table)}
	} else {
		jp := s.GraphToSQLProp(incomingJoinProp)
		sourceTable := jp.Space
		d, ok := s.Join(jp.String())
		if !ok {
			return "", nil, nil, NewSchemaError("joins", "no join descriptor for "+jp.String())
		}
		switch len(d.Props) {
		case 2:
			a, b := d.Props[0], d.Props[1]
			target, filterCol := b, b
			if a.Space != sourceTable {
				target, filterCol = a, a
			}
			table = target.Space
			plan = &queryPlan{Table: table, FilterColumn: filterCol}
			cols = append(cols, filterCol)
		case 4:
			// a-b: source -> link-left; c-d: link-right -> target.
			_, linkLeft, linkRight, target := d.Props[0], d.Props[1], d.Props[2], d.Props[3]
			table = target.Space
			linkOn = [2]Prop{linkRight, target}
			plan = &queryPlan{Table: table, FilterColumn: linkLeft, LinkColumn: &linkLeft}
			cols = append(cols, linkLeft)
		default:
			return "", nil, nil, NewSchemaError("joins", "unexpected descriptor length")
		}
	}

	cols = sortedColumns(dedupeProps(cols))
	specs := make([]string, len(cols))
	for i, c := range cols {
		specs[i] = ColumnSpec(s, c)
	}

	ids, err := renderIDList(idSet)
	if err != nil {
		return "", nil, nil, err
	}

	sel := gsql.Dialect(s.Driver).Select(specs...).From(gsql.Table(table))
	if plan.LinkColumn != nil {
		sel = sel.Join(gsql.Table(linkOn[0].Space)).On(
			fmt.Sprintf("%s.%s", linkOn[0].Space, linkOn[0].Leaf),
			fmt.Sprintf("%s.%s", linkOn[1].Space, linkOn[1].Leaf),
		)
	}
	if whereFragment != "" {
		sel = sel.Where(fmt.Sprintf("(%s)", whereFragment), whereArgs...)
	}
	sel = sel.Where(fmt.Sprintf("%s.%s IN (%s)", plan.FilterColumn.Space, plan.FilterColumn.Leaf, ids))

	query, args := sel.Query()
	return query, args, plan, nil
}

func dedupeProps(cols []Prop) []Prop {
	seen := map[string]bool{}
	out := make([]Prop, 0, len(cols))
	for _, c := range cols {
		if k := c.String(); !seen[k] {
			seen[k] = true
			out = append(out, c)
		}
	}
	return out
}
