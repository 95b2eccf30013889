package relgraph

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gsql "github.com/syssam/relgraph/dialect/sql"
)

func traverseTestSchema() *Schema {
	s, err := NewSchema(&Schema{
		GraphToSQL: map[string]string{},
		PKs:        map[string]string{},
		Joins: map[string]*JoinDescriptor{
			"account/members": {
				Props: []Prop{
					{Space: "member", Leaf: "account_id"},
					{Space: "account", Leaf: "id"},
				},
				Arity: ToMany,
			},
			"account/spouse": {
				Props: []Prop{
					{Space: "account", Leaf: "spouse_id"},
					{Space: "account", Leaf: "id"},
				},
				Arity: ToOne,
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return s
}

// canned is a queryRower stub that matches a query's FROM table, then
// filters that table's fixture rows by the emitted "col IN (n,n,...)"
// fragment, so per-level id-set filtering behaves like a real database.
type canned struct {
	byTable map[string][]gsql.Row
	calls   []string
}

var inListRe = regexp.MustCompile(`(\w+)\.(\w+) IN \(([0-9,]+)\)`)

func (c *canned) QueryRows(_ context.Context, query string, _ []any) ([]gsql.Row, error) {
	c.calls = append(c.calls, query)
	var table string
	for t := range c.byTable {
		if strings.Contains(query, "FROM "+t) {
			table = t
			break
		}
	}
	if table == "" {
		return nil, nil
	}
	m := inListRe.FindStringSubmatch(query)
	if m == nil {
		return c.byTable[table], nil
	}
	col, idCSV := m[2], m[3]
	want := map[int64]bool{}
	for _, s := range strings.Split(idCSV, ",") {
		n, _ := strconv.ParseInt(s, 10, 64)
		want[n] = true
	}
	key := table + "/" + col
	var out []gsql.Row
	for _, row := range c.byTable[table] {
		v, ok := row[key]
		if !ok {
			continue
		}
		n, ok := idToInt64(v)
		if ok && want[n] {
			out = append(out, row)
		}
	}
	return out, nil
}

func TestRunAssemblesNestedToManyJoin(t *testing.T) {
	s := traverseTestSchema()
	db := &canned{byTable: map[string][]gsql.Row{
		"account": {
			{"account/id": int64(1), "account/name": "Acme"},
			{"account/id": int64(2), "account/name": "Other"},
		},
		"member": {
			{"member/id": int64(10), "member/name": "Joe", "member/account_id": int64(1)},
			{"member/id": int64(11), "member/name": "Mary", "member/account_id": int64(1)},
			{"member/id": int64(12), "member/name": "Bob", "member/account_id": int64(2)},
		},
	}}

	q := Query{
		Leaf("id"),
		Leaf("account/name"),
		Join{JoinProp: "account/members", Sub: Query{Leaf("id"), Leaf("member/name")}},
	}

	records, err := Run(context.Background(), db, s, "account/id", q, []any{int64(1), int64(2)}, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(1), records[0]["id"])
	assert.Equal(t, "Acme", records[0]["account/name"])
	members, ok := records[0]["account/members"].([]Record)
	require.True(t, ok)
	require.Len(t, members, 2)
	assert.Equal(t, "Joe", members[0]["member/name"])
	assert.Equal(t, "Mary", members[1]["member/name"])

	members2 := records[1]["account/members"].([]Record)
	require.Len(t, members2, 1)
	assert.Equal(t, "Bob", members2[0]["member/name"])
}

func TestRunPreservesRootIDOrder(t *testing.T) {
	s := traverseTestSchema()
	db := &canned{byTable: map[string][]gsql.Row{
		"account": {
			{"account/id": int64(2), "account/name": "Other"},
			{"account/id": int64(1), "account/name": "Acme"},
		},
	}}
	q := Query{Leaf("id"), Leaf("account/name")}
	records, err := Run(context.Background(), db, s, "account/id", q, []any{int64(1), int64(2)}, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0]["id"])
	assert.Equal(t, int64(2), records[1]["id"])
}

func TestRunEmptyRootIDsReturnsEmpty(t *testing.T) {
	s := traverseTestSchema()
	db := &canned{byTable: map[string][]gsql.Row{}}
	q := Query{Leaf("id")}
	records, err := Run(context.Background(), db, s, "account/id", q, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRunDetectsSelfReferentialCycle(t *testing.T) {
	s := traverseTestSchema()
	db := &canned{byTable: map[string][]gsql.Row{
		"account": {
			{"account/id": int64(1), "account/name": "Joe", "account/spouse_id": int64(2)},
			{"account/id": int64(2), "account/name": "Mary", "account/spouse_id": int64(1)},
		},
	}}
	q := Query{
		Leaf("id"), Leaf("account/name"),
		Join{JoinProp: "account/spouse", Sub: Rest},
	}
	records, err := Run(context.Background(), db, s, "account/id", q, []any{int64(1)}, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	joe := records[0]
	assert.Equal(t, "Joe", joe["account/name"])
	mary, ok := joe["account/spouse"].(Record)
	require.True(t, ok)
	assert.Equal(t, "Mary", mary["account/name"])
	joeAgain, ok := mary["account/spouse"].(Record)
	require.True(t, ok)
	assert.Equal(t, "Joe", joeAgain["account/name"])
	assert.Nil(t, joeAgain["account/spouse"])
}

func TestRunHonorsIntegerRecursionBudget(t *testing.T) {
	s := traverseTestSchema()
	db := &canned{byTable: map[string][]gsql.Row{
		"account": {
			{"account/id": int64(1), "account/name": "L0", "account/spouse_id": int64(2)},
			{"account/id": int64(2), "account/name": "L1", "account/spouse_id": int64(3)},
			{"account/id": int64(3), "account/name": "L2", "account/spouse_id": nil},
		},
	}}
	q := Query{
		Leaf("id"), Leaf("account/name"),
		Join{JoinProp: "account/spouse", Sub: 1},
	}
	records, err := Run(context.Background(), db, s, "account/id", q, []any{int64(1)}, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	l0 := records[0]
	l1, ok := l0["account/spouse"].(Record)
	require.True(t, ok)
	assert.Equal(t, "L1", l1["account/name"])
	assert.Nil(t, l1["account/spouse"])
}
