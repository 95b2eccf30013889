package rowgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	parent int
	name   string
}

func TestGroupByKey(t *testing.T) {
	rows := []row{
		{parent: 1, name: "a"},
		{parent: 2, name: "b"},
		{parent: 1, name: "c"},
	}
	groups := GroupByKey(rows, func(r row) int { return r.parent })
	require.Len(t, groups, 2)
	assert.Equal(t, []row{{1, "a"}, {1, "c"}}, groups[1])
	assert.Equal(t, []row{{2, "b"}}, groups[2])
}

func TestOrderGroupsByKeys(t *testing.T) {
	groups := map[int][]row{
		1: {{1, "a"}, {1, "c"}},
		2: {{2, "b"}},
	}
	ordered := OrderGroupsByKeys([]int{2, 1, 3}, groups)
	require.Len(t, ordered, 3)
	assert.Equal(t, []row{{2, "b"}}, ordered[0])
	assert.Equal(t, []row{{1, "a"}, {1, "c"}}, ordered[1])
	assert.Nil(t, ordered[2])
}

func TestOrderByKeys(t *testing.T) {
	rows := []row{{3, "third"}, {1, "first"}, {2, "second"}}
	ordered := OrderByKeys([]int{1, 2, 3, 4}, rows, func(r row) int { return r.parent })
	require.Len(t, ordered, 4)
	assert.Equal(t, "first", ordered[0].name)
	assert.Equal(t, "second", ordered[1].name)
	assert.Equal(t, "third", ordered[2].name)
	assert.Equal(t, row{}, ordered[3])
}
