package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/syssam/relgraph"
)

// schemaDoc is the on-disk JSON shape of a relgraph.Schema: join
// descriptors are written as dotted "table/column" strings rather than
// raw Prop structs, matching the query language's own notation.
type schemaDoc struct {
	GraphToSQL map[string]string `json:"graph_to_sql"`
	PKs        map[string]string `json:"pks"`
	Driver     string            `json:"driver"`
	Joins      map[string]struct {
		Props []string `json:"props"`
		Arity string   `json:"arity"` // "to-one" or "to-many", default "to-many"
	} `json:"joins"`
}

// LoadSchema reads path (a JSON schema document) into a validated
// relgraph.Schema.
func LoadSchema(path string) (*relgraph.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cmd: read schema %s: %w", path, err)
	}
	var doc schemaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cmd: parse schema %s: %w", path, err)
	}

	if doc.GraphToSQL == nil {
		doc.GraphToSQL = map[string]string{}
	}
	if doc.PKs == nil {
		doc.PKs = map[string]string{}
	}
	joins := make(map[string]*relgraph.JoinDescriptor, len(doc.Joins))
	for joinProp, j := range doc.Joins {
		props := make([]relgraph.Prop, len(j.Props))
		for i, p := range j.Props {
			props[i] = relgraph.ParseProp(p)
		}
		arity := relgraph.ToMany
		if j.Arity == "to-one" {
			arity = relgraph.ToOne
		}
		joins[joinProp] = &relgraph.JoinDescriptor{Props: props, Arity: arity}
	}

	return relgraph.NewSchema(&relgraph.Schema{
		GraphToSQL: doc.GraphToSQL,
		PKs:        doc.PKs,
		Joins:      joins,
		Driver:     doc.Driver,
	})
}
