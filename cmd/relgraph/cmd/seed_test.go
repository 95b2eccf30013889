package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relgraph"
)

func TestTranslateScalarPlaceholder(t *testing.T) {
	assert.Equal(t, relgraph.Placeholder("joe"), translateScalar("$joe"))
}

func TestTranslateScalarNumericString(t *testing.T) {
	assert.Equal(t, int64(42), translateScalar("42"))
}

func TestTranslateScalarPlainString(t *testing.T) {
	assert.Equal(t, "Joe", translateScalar("Joe"))
}

func TestTranslateScalarNonString(t *testing.T) {
	assert.Equal(t, true, translateScalar(true))
}

func TestTranslateValuesMixesPlaceholdersAndScalars(t *testing.T) {
	out := translateValues(map[string]any{
		"id":   "$joe",
		"name": "Joe",
		"age":  "30",
	})
	assert.Equal(t, relgraph.Placeholder("joe"), out["id"])
	assert.Equal(t, "Joe", out["name"])
	assert.Equal(t, int64(30), out["age"])
}
