package relgraph

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"golang.org/x/sync/singleflight"

	gsql "github.com/syssam/relgraph/dialect/sql"
	"github.com/syssam/relgraph/internal/logx"
	"github.com/syssam/relgraph/internal/rowgroup"
)

// DefaultMaxDepth bounds sentinel (Rest) recursion so a schema without a
// true cycle in its data cannot run the traversal forever, a safety net
// distinct from cycle detection itself.
const DefaultMaxDepth = 1000

// queryRower is the subset of dialect/sql.Conn/Driver the traversal driver
// needs; satisfied by *dialect/sql.Driver, dialect/sql.Conn and
// dialect/sql.Tx via their QueryRows method.
type queryRower interface {
	QueryRows(ctx context.Context, query string, args []any) ([]gsql.Row, error)
}

// Collapser optionally collapses duplicate in-flight identical level
// queries. Pass nil to disable; it never changes result semantics, only
// latency under concurrent callers sharing a handle.
type Collapser = *singleflight.Group

// runCtx carries state threaded through one Run call's recursion: the
// db handle, schema, filters, recursion budgets, and cycle-detection
// state. branch() copies it so sibling join branches never observe each
// other's visited sets.
type runCtx struct {
	ctx       context.Context
	db        queryRower
	schema    *Schema
	filters   *Filters
	maxDepth    int
	collapser   Collapser
	log         logx.Logger
	stableOrder bool

	budgets map[string]int          // joinProp -> remaining int recursion depth
	visited map[string]map[any]bool // joinProp -> parent-ids already expanded (sentinel recursion)
}

func (r runCtx) branch() runCtx {
	out := r
	out.budgets = cloneIntMap(r.budgets)
	out.visited = make(map[string]map[any]bool, len(r.visited))
	for k, v := range r.visited {
		out.visited[k] = cloneAnyBoolMap(v)
	}
	return out
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneAnyBoolMap(m map[any]bool) map[any]bool {
	out := make(map[any]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// RunOption configures a Run call.
type RunOption func(*runCtx)

// WithCollapser enables duplicate in-flight level-query collapsing.
func WithCollapser(c Collapser) RunOption {
	return func(r *runCtx) { r.collapser = c }
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) RunOption {
	return func(r *runCtx) { r.maxDepth = n }
}

// WithLogger overrides the default logx.Logger.
func WithLogger(l logx.Logger) RunOption {
	return func(r *runCtx) { r.log = l }
}

// WithStableOrder sorts each to-many group by its rows' PK before
// attaching it to a parent row. By default to-many order is whatever order
// rows come back from the driver; this is an opt-in override for callers
// who need that order to be reproducible across dialects.
func WithStableOrder() RunOption {
	return func(r *runCtx) { r.stableOrder = true }
}

// recordWithID pairs an assembled Record with the raw value of its row's
// PK, used only to restore root-id order at the top level.
type recordWithID struct {
	Record
	id any
}

// Run executes a graph query against db: run-query(db, schema,
// join-or-id-prop, query, root-ids, filters). joinOrIDProp is the level-0
// id property (e.g. "account/id"); it is not read: SQL emission always
// treats level 0 as table-PK filtered.
func Run(ctx context.Context, db queryRower, s *Schema, joinOrIDProp string, q Query, rootIDs []any, filters *Filters, opts ...RunOption) ([]Record, error) {
	_ = joinOrIDProp
	rc := runCtx{
		ctx:      ctx,
		db:       db,
		schema:   s,
		filters:  filters,
		maxDepth: DefaultMaxDepth,
		log:      logx.New(),
		budgets:  map[string]int{},
		visited:  map[string]map[any]bool{},
	}
	for _, opt := range opts {
		opt(&rc)
	}
	rows, _, err := runLevel(rc, "", q, rootIDs, 1)
	if err != nil {
		return nil, err
	}
	ordered := rowgroup.OrderByKeys(rootIDs, rows, func(r recordWithID) any { return r.id })
	out := make([]Record, len(ordered))
	for i, r := range ordered {
		out[i] = r.Record
	}
	return out, nil
}

// runLevel executes one traversal level and returns its assembled records
// plus those records grouped by the raw SQL value of the plan's filter
// column, so the caller can attach each group to the parent row that
// selected it.
func runLevel(rc runCtx, incomingJoinProp string, q Query, rootIDs []any, depth int) (rows []recordWithID, grouped map[any][]recordWithID, err error) {
	if len(rootIDs) == 0 {
		return nil, nil, nil
	}
	if depth > rc.maxDepth {
		return nil, nil, NewDepthExceededError(incomingJoinProp, rc.maxDepth)
	}

	table, err := TableFor(rc.schema, q)
	if err != nil {
		return nil, nil, err
	}
	log := rc.log.WithTable(table).WithDepth(depth)

	span, spanCtx := opentracing.StartSpanFromContext(rc.ctx, "relgraph.runLevel")
	span.SetTag("table", table)
	span.SetTag("depth", depth)
	defer span.Finish()

	where, whereArgs := RowFilter(rc.filters, []string{table}, depth)
	sqlText, args, plan, err := QueryFor(rc.schema, incomingJoinProp, q, rootIDs, where, whereArgs)
	if err != nil {
		return nil, nil, err
	}
	if sqlText == "" {
		return nil, nil, nil
	}

	raw, err := rc.queryRows(spanCtx, sqlText, args)
	if err != nil {
		log.WarnContext(spanCtx, "level query failed", "error", err, "correlation_id", uuid.NewString())
		return nil, nil, err
	}
	log.DebugContext(spanCtx, "level query executed", "rows", len(raw))

	pkProp := rc.schema.IDProp(table).String()
	childResultsByRow := make([]map[string]any, len(raw))
	for i := range raw {
		childResultsByRow[i] = map[string]any{}
	}

	for _, el := range q {
		j, ok := el.(Join)
		if !ok {
			continue
		}
		if err := rc.runJoin(j, table, q, raw, childResultsByRow, depth); err != nil {
			return nil, nil, err
		}
	}

	rows = make([]recordWithID, len(raw))
	for i, row := range raw {
		rec := assembleRow(rc.schema, q, row, childResultsByRow[i])
		rows[i] = recordWithID{Record: rec, id: row[pkProp]}
	}

	filterKey := plan.FilterColumn.String()
	grouped = make(map[any][]recordWithID, len(rows))
	for i, row := range raw {
		k := row[filterKey]
		grouped[k] = append(grouped[k], rows[i])
	}
	if rc.stableOrder {
		for k := range grouped {
			sortByID(grouped[k])
		}
	}

	return rows, grouped, nil
}

// sortByID sorts a to-many group by its rows' PK, for callers that need
// cross-driver-deterministic child order (WithStableOrder). Ids are
// compared as strings since they may come back as int64, string, or
// []byte depending on driver and column type.
func sortByID(recs []recordWithID) {
	sort.Slice(recs, func(i, j int) bool {
		return fmt.Sprint(recs[i].id) < fmt.Sprint(recs[j].id)
	})
}

func (rc runCtx) queryRows(ctx context.Context, query string, args []any) ([]gsql.Row, error) {
	if rc.collapser == nil {
		return rc.db.QueryRows(ctx, query, args)
	}
	key := fmt.Sprintf("%s|%v", query, args)
	v, err, _ := rc.collapser.Do(key, func() (any, error) {
		return rc.db.QueryRows(ctx, query, args)
	})
	if err != nil {
		return nil, err
	}
	return v.([]gsql.Row), nil
}

// runJoin resolves one Join element for every row in raw, determines each
// row's child root-id, applies the cycle/depth gate, recurses, and writes
// the arity-enforced result into childResultsByRow. enclosing is the query
// q that j appears in, reused verbatim as the recursive sub-query for
// int/Rest joins: a recursive join has no explicit sub-query of its own,
// it re-selects the same shape one level deeper.
func (rc runCtx) runJoin(j Join, sourceTable string, enclosing Query, raw []gsql.Row, childResultsByRow []map[string]any, depth int) error {
	jp := rc.schema.GraphToSQLProp(j.JoinProp)
	d, ok := rc.schema.Join(jp.String())
	if !ok {
		return NewSchemaError("joins", "no join descriptor for "+jp.String())
	}

	childQuery, litDepth, isRest, isRecursive := subQuery(j.Sub)
	readKey := childReadKey(rc.schema, jp, d, sourceTable)

	branch := rc.branch()

	if isRecursive && !isRest {
		remaining, seen := branch.budgets[j.JoinProp]
		if !seen {
			remaining = litDepth
		}
		if remaining <= 0 {
			for i := range raw {
				childResultsByRow[i][j.JoinProp] = defaultChildValue(rc.schema, j.JoinProp)
			}
			return nil
		}
		branch.budgets[j.JoinProp] = remaining - 1
	}

	var idSet []any
	seenIDs := map[any]bool{}
	rowKeys := make([]any, len(raw))
	for i, row := range raw {
		v := row[readKey]
		rowKeys[i] = v
		if v == nil {
			continue
		}
		if isRecursive && isRest {
			vis := branch.visited[j.JoinProp]
			if vis == nil {
				vis = map[any]bool{}
				branch.visited[j.JoinProp] = vis
			}
			if vis[v] {
				continue
			}
			vis[v] = true
		}
		if !seenIDs[v] {
			seenIDs[v] = true
			idSet = append(idSet, v)
		}
	}

	subQ := childQuery
	if isRecursive {
		subQ = enclosing
	}

	_, childGrouped, err := runLevel(branch, j.JoinProp, subQ, idSet, depth+1)
	if err != nil {
		return err
	}

	for i, v := range rowKeys {
		childResultsByRow[i][j.JoinProp] = enforceArity(d.Arity, childGrouped[v])
	}
	return nil
}

// enforceArity converts a grouped slice of child records into the shape
// the caller expects: first element (or nil) for to-one, the full ordered
// list for to-many.
func enforceArity(arity Arity, kids []recordWithID) any {
	if arity == ToOne {
		if len(kids) == 0 {
			return nil
		}
		return kids[0].Record
	}
	out := make([]Record, len(kids))
	for i, k := range kids {
		out[i] = k.Record
	}
	return out
}

// childReadKey returns the SQL property, as it appears in a raw row map,
// whose value identifies which child rows belong to a given parent row
// for this join.
func childReadKey(s *Schema, jp Prop, d *JoinDescriptor, sourceTable string) string {
	switch len(d.Props) {
	case 2:
		a := d.Props[0]
		if a.Space == sourceTable {
			return a.String() // forward: FK column already in the parent row.
		}
		return s.IDProp(sourceTable).String() // reverse: parent's own PK.
	case 4:
		return s.IDProp(sourceTable).String() // many-to-many: parent's own PK.
	default:
		return jp.String()
	}
}
