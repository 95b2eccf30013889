package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/syssam/relgraph"
)

// queryElement is the on-disk JSON shape of one relgraph.Element: either a
// bare string (a Leaf) or an object naming a join and its sub-query, an
// integer recursion depth, or "rest": true for relgraph.Rest.
type queryElement struct {
	Join  string         `json:"join"`
	Sub   []queryElement `json:"sub,omitempty"`
	Depth *int           `json:"depth,omitempty"`
	Rest  bool           `json:"rest,omitempty"`
	leaf  string
}

func (e *queryElement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.leaf = s
		return nil
	}
	type alias queryElement
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("cmd: query element: %w", err)
	}
	*e = queryElement(a)
	return nil
}

// ParseQuery decodes a JSON query document into a relgraph.Query.
func ParseQuery(data []byte) (relgraph.Query, error) {
	var elems []queryElement
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("cmd: parse query: %w", err)
	}
	return buildQuery(elems)
}

func buildQuery(elems []queryElement) (relgraph.Query, error) {
	q := make(relgraph.Query, 0, len(elems))
	for _, e := range elems {
		if e.Join == "" {
			q = append(q, relgraph.Leaf(e.leaf))
			continue
		}
		switch {
		case e.Rest:
			q = append(q, relgraph.Join{JoinProp: e.Join, Sub: relgraph.Rest})
		case e.Depth != nil:
			q = append(q, relgraph.Join{JoinProp: e.Join, Sub: *e.Depth})
		default:
			sub, err := buildQuery(e.Sub)
			if err != nil {
				return nil, err
			}
			q = append(q, relgraph.Join{JoinProp: e.Join, Sub: sub})
		}
	}
	return q, nil
}
