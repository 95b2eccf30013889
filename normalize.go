package relgraph

import "strings"

// Prop is a caller-facing property name, split into its namespace and
// leaf parts: "account/name" → {Space: "account", Leaf: "name"}.
type Prop struct {
	Space string
	Leaf  string
}

// String renders the property back into dotted-slash form.
func (p Prop) String() string {
	if p.Space == "" {
		return p.Leaf
	}
	return p.Space + "/" + p.Leaf
}

// idLeaf and dbIDProp are the two spellings of the primary-key sentinel: a
// bare "id" or "db/id" means the primary key of the inferred table.
const (
	idLeaf   = "id"
	dbIDProp = "db/id"
)

// IsIDSentinel reports whether name is the bare "id" or "db/id" sentinel.
func IsIDSentinel(name string) bool {
	return name == idLeaf || name == dbIDProp
}

// ParseProp splits a namespaced property into space/leaf. Both id
// sentinel spellings are kept whole as a single leaf. It does not
// normalize dashes; callers needing SQL form should use Sqlize.
func ParseProp(name string) Prop {
	if IsIDSentinel(name) {
		return Prop{Leaf: name}
	}
	space, leaf, ok := strings.Cut(name, "/")
	if !ok {
		return Prop{Leaf: name}
	}
	return Prop{Space: space, Leaf: leaf}
}

// Sqlize canonicalizes a caller property into SQL identifier form: dashes
// become underscores in both the space and leaf parts. The schema
// parameter exists so dialect-specific drivers can override this behavior;
// the default suffices for Postgres, MySQL, and H2.
func Sqlize(_ *Schema, name string) Prop {
	p := ParseProp(name)
	p.Space = dashesToUnderscores(p.Space)
	p.Leaf = dashesToUnderscores(p.Leaf)
	return p
}

func dashesToUnderscores(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	return strings.ReplaceAll(s, "-", "_")
}
