// Package relgraph translates declarative graph queries into SQL against a
// relational schema, executes them, and reassembles the rows into the
// nested shape the caller asked for.
package relgraph

import (
	"errors"
	"fmt"
)

// SchemaError reports a schema value that failed validation (kind 1): a
// programmer error, surfaced immediately rather than deferred to the first
// query that would have needed the missing part.
type SchemaError struct {
	Part    string // "pks", "joins", "graph->sql", or a specific join/table name
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("relgraph: invalid schema (%s): %s", e.Part, e.Message)
}

// NewSchemaError returns a new SchemaError.
func NewSchemaError(part, message string) *SchemaError {
	return &SchemaError{Part: part, Message: message}
}

// IsSchemaError reports whether err is a SchemaError.
func IsSchemaError(err error) bool {
	var e *SchemaError
	return errors.As(err, &e)
}

// UnresolvableTableError reports a query shape whose leaves and joins do
// not agree on a single table (kind 2).
type UnresolvableTableError struct {
	Query any // the offending query shape, for diagnostics
}

func (e *UnresolvableTableError) Error() string {
	return fmt.Sprintf("Could not determine a single table from the subquery %v", e.Query)
}

// NewUnresolvableTableError returns a new UnresolvableTableError.
func NewUnresolvableTableError(query any) *UnresolvableTableError {
	return &UnresolvableTableError{Query: query}
}

// IsUnresolvableTable reports whether err is an UnresolvableTableError.
func IsUnresolvableTable(err error) bool {
	var e *UnresolvableTableError
	return errors.As(err, &e)
}

// UnknownFilterOpError reports a filter rule naming a comparator outside
// the fixed vocabulary {eq, gt, lt, gte, lte, ne, null} (kind 3). It
// carries the offending rule as structured data.
type UnknownFilterOpError struct {
	Property string
	Rule     map[string]any
}

func (e *UnknownFilterOpError) Error() string {
	return fmt.Sprintf("relgraph: unknown filter operation for %q: %v", e.Property, e.Rule)
}

// NewUnknownFilterOpError returns a new UnknownFilterOpError.
func NewUnknownFilterOpError(property string, rule map[string]any) *UnknownFilterOpError {
	return &UnknownFilterOpError{Property: property, Rule: rule}
}

// IsUnknownFilterOp reports whether err is an UnknownFilterOpError.
func IsUnknownFilterOp(err error) bool {
	var e *UnknownFilterOpError
	return errors.As(err, &e)
}

// DepthExceededError reports that a sentinel (Rest) recursion ran past
// MaxDepth without a cycle ever closing it off. This is distinct from
// normal cycle termination.
type DepthExceededError struct {
	JoinProp string
	MaxDepth int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("relgraph: recursion on %q exceeded max depth %d without closing a cycle", e.JoinProp, e.MaxDepth)
}

// NewDepthExceededError returns a new DepthExceededError.
func NewDepthExceededError(joinProp string, maxDepth int) *DepthExceededError {
	return &DepthExceededError{JoinProp: joinProp, MaxDepth: maxDepth}
}

// IsDepthExceeded reports whether err is a DepthExceededError.
func IsDepthExceeded(err error) bool {
	var e *DepthExceededError
	return errors.As(err, &e)
}

// SeedError reports a failure resolving or replaying seed instructions,
// such as reusing a placeholder across two inserts.
type SeedError struct {
	Placeholder string
	Message     string
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("relgraph: seed placeholder %q: %s", e.Placeholder, e.Message)
}

// NewSeedError returns a new SeedError.
func NewSeedError(placeholder, message string) *SeedError {
	return &SeedError{Placeholder: placeholder, Message: message}
}
