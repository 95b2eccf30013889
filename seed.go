package relgraph

import (
	"context"
	"fmt"

	"github.com/syssam/relgraph/dialect/sql/sqlgraph"
)

// Placeholder is a symbolic stand-in for a not-yet-allocated primary key,
// used in seed instructions wherever a real id isn't known yet:
// "invoice-1", "joe", etc.
type Placeholder string

// Instruction is one step of a seed sequence: SeedRow or SeedUpdate.
type Instruction interface{ isInstruction() }

// SeedRow inserts a row. Value may hold a Placeholder in the PK slot
// (requesting a freshly allocated id, recorded under that name) and/or in
// any other column (referencing an id allocated by an earlier SeedRow).
type SeedRow struct {
	Table string
	Value map[string]any
}

func (SeedRow) isInstruction() {}

// SeedUpdate updates a previously seeded row. ID may itself be a
// Placeholder.
type SeedUpdate struct {
	Table string
	ID    any
	Value map[string]any
}

func (SeedUpdate) isInstruction() {}

// seedExecutor is the subset of dialect/sql.Conn the seed helper needs.
type seedExecutor interface {
	idDriver
	InsertRow(ctx context.Context, table string, value map[string]any) (int64, error)
	UpdateRows(ctx context.Context, table string, value map[string]any, whereSQL string, whereArgs []any) error
}

// Seed executes an ordered sequence of instructions against db: it
// allocates real ids for every PK placeholder first, substitutes
// placeholders everywhere they appear, then replays the instructions in
// their original order, returning the placeholder -> real-id mapping.
func Seed(ctx context.Context, db seedExecutor, s *Schema, instructions []Instruction) (map[Placeholder]int64, error) {
	ids, err := allocatePlaceholderIDs(ctx, db, s, instructions)
	if err != nil {
		return nil, err
	}
	resolved := resolveInstructions(instructions, ids)
	if err := replay(ctx, db, s, resolved); err != nil {
		return nil, err
	}
	return ids, nil
}

// allocatePlaceholderIDs is pass one: every insert whose PK slot names a
// placeholder gets a real id via NextID.
func allocatePlaceholderIDs(ctx context.Context, db seedExecutor, s *Schema, instructions []Instruction) (map[Placeholder]int64, error) {
	ids := make(map[Placeholder]int64)
	for _, instr := range instructions {
		row, ok := instr.(SeedRow)
		if !ok {
			continue
		}
		pk := s.PK(row.Table)
		ph, ok := row.Value[pk].(Placeholder)
		if !ok {
			continue
		}
		if _, exists := ids[ph]; exists {
			return nil, NewSeedError(string(ph), "placeholder reused as a PK across two inserts")
		}
		id, err := NextID(ctx, db, s.Driver, row.Table, pk)
		if err != nil {
			return nil, fmt.Errorf("relgraph: allocate id for placeholder %q: %w", ph, err)
		}
		ids[ph] = id
	}
	return ids, nil
}

// resolveInstructions is pass two: substitute every placeholder occurrence
// (PK slot or value column, on inserts or updates) with its allocated real
// id. A placeholder with no allocated id passes through unchanged.
func resolveInstructions(instructions []Instruction, ids map[Placeholder]int64) []Instruction {
	out := make([]Instruction, len(instructions))
	for i, instr := range instructions {
		switch v := instr.(type) {
		case SeedRow:
			out[i] = SeedRow{Table: v.Table, Value: resolveValue(v.Value, ids)}
		case SeedUpdate:
			out[i] = SeedUpdate{Table: v.Table, ID: resolveScalar(v.ID, ids), Value: resolveValue(v.Value, ids)}
		}
	}
	return out
}

func resolveValue(value map[string]any, ids map[Placeholder]int64) map[string]any {
	out := make(map[string]any, len(value))
	for k, v := range value {
		out[k] = resolveScalar(v, ids)
	}
	return out
}

func resolveScalar(v any, ids map[Placeholder]int64) any {
	ph, ok := v.(Placeholder)
	if !ok {
		return v
	}
	if id, ok := ids[ph]; ok {
		return id
	}
	return v
}

// replay executes resolved instructions in their original order: inserts
// and updates are issued as they appear, never reordered.
func replay(ctx context.Context, db seedExecutor, s *Schema, instructions []Instruction) error {
	for _, instr := range instructions {
		switch v := instr.(type) {
		case SeedRow:
			if _, err := db.InsertRow(ctx, v.Table, v.Value); err != nil {
				return seedReplayError(v.Table, err)
			}
		case SeedUpdate:
			pk := s.PK(v.Table)
			if err := db.UpdateRows(ctx, v.Table, v.Value, fmt.Sprintf("%s = ?", pk), []any{v.ID}); err != nil {
				return seedReplayError(v.Table, err)
			}
		}
	}
	return nil
}

// seedReplayError annotates a replay failure with the kind of database
// constraint it tripped, if any, while keeping the original error
// reachable via errors.As/errors.Is.
func seedReplayError(table string, err error) error {
	switch {
	case sqlgraph.IsUniqueConstraintError(err):
		return fmt.Errorf("relgraph: seed %s: unique constraint violated: %w", table, err)
	case sqlgraph.IsForeignKeyConstraintError(err):
		return fmt.Errorf("relgraph: seed %s: foreign key constraint violated: %w", table, err)
	case sqlgraph.IsCheckConstraintError(err):
		return fmt.Errorf("relgraph: seed %s: check constraint violated: %w", table, err)
	default:
		return fmt.Errorf("relgraph: seed %s: %w", table, err)
	}
}
