package relgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleRowRenamesAndKeepsScalars(t *testing.T) {
	s := accountMemberSchema()
	q := Query{Leaf("id"), Leaf("account/name")}
	row := map[string]any{"account/id": int64(1), "account/name": "acme"}

	rec := assembleRow(s, q, row, nil)
	assert.Equal(t, int64(1), rec["id"])
	assert.Equal(t, "acme", rec["account/name"])
}

func TestAssembleRowFillsDefaultForMissingToManyJoin(t *testing.T) {
	s := accountMemberSchema()
	q := Query{Join{JoinProp: "account/members", Sub: Query{Leaf("id")}}}
	rec := assembleRow(s, q, map[string]any{"account/id": int64(1)}, nil)
	assert.Equal(t, []Record{}, rec["account/members"])
}

func TestAssembleRowFillsDefaultForMissingToOneJoin(t *testing.T) {
	s := accountMemberSchema()
	q := Query{Join{JoinProp: "member/account", Sub: Query{Leaf("id")}}}
	rec := assembleRow(s, q, map[string]any{"member/id": int64(1)}, nil)
	assert.Nil(t, rec["member/account"])
}

func TestAssembleRowUsesProvidedChildren(t *testing.T) {
	s := accountMemberSchema()
	q := Query{Join{JoinProp: "account/members", Sub: Query{Leaf("id")}}}
	children := map[string]any{"account/members": []Record{{"id": int64(5)}}}
	rec := assembleRow(s, q, map[string]any{"account/id": int64(1)}, children)
	assert.Equal(t, []Record{{"id": int64(5)}}, rec["account/members"])
}

func TestDefaultChildValue(t *testing.T) {
	s := accountMemberSchema()
	assert.Equal(t, []Record{}, defaultChildValue(s, "account/members"))
	assert.Nil(t, defaultChildValue(s, "member/account"))
}
