package relgraph

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/syssam/relgraph/dialect"

	gsql "github.com/syssam/relgraph/dialect/sql"
)

// idDriver is the subset of dialect/sql.Conn NextID needs.
type idDriver interface {
	QueryRows(ctx context.Context, query string, args []any) ([]gsql.Row, error)
	Execute(ctx context.Context, query string) error
}

type devModeKey struct{}

// WithDev marks ctx so NextID burns a random run of extra ids first, so the
// first rows seeded across tables don't share identical small ids, which
// would mask cross-table bugs in tests.
func WithDev(ctx context.Context) context.Context {
	return context.WithValue(ctx, devModeKey{}, true)
}

func isDev(ctx context.Context) bool {
	v, _ := ctx.Value(devModeKey{}).(bool)
	return v
}

// NextID returns a fresh, monotonically increasing primary key value for
// table/pk, dialect-dispatched on schemaDriver.
func NextID(ctx context.Context, db idDriver, schemaDriver, table, pk string) (int64, error) {
	if isDev(ctx) {
		burn := rand.IntN(20)
		for i := 0; i < burn; i++ {
			if _, err := nextIDOnce(ctx, db, schemaDriver, table, pk); err != nil {
				return 0, err
			}
		}
	}
	return nextIDOnce(ctx, db, schemaDriver, table, pk)
}

func nextIDOnce(ctx context.Context, db idDriver, schemaDriver, table, pk string) (int64, error) {
	switch schemaDriver {
	case dialect.MySQL:
		return nextIDMySQL(ctx, db, table, pk)
	case dialect.H2:
		return nextIDH2(ctx, db, table)
	case dialect.Postgres, dialect.Default, "":
		return nextIDSequence(ctx, db, table, pk)
	default:
		return nextIDSequence(ctx, db, table, pk)
	}
}

func sequenceName(table, pk string) string {
	return fmt.Sprintf("%s_%s_seq", table, pk)
}

// nextIDSequence implements the default/Postgres case: `SELECT
// nextval('<table>_<pk>_seq')`.
func nextIDSequence(ctx context.Context, db idDriver, table, pk string) (int64, error) {
	seq := sequenceName(table, pk)
	rows, err := db.QueryRows(ctx, fmt.Sprintf("SELECT nextval('%s') AS next", seq), nil)
	if err != nil {
		return 0, err
	}
	return scanNext(rows)
}

// nextIDMySQL emulates a sequence with a counter table and the
// LAST_INSERT_ID(expr) idiom, the common MySQL sequence-emulation
// approach.
func nextIDMySQL(ctx context.Context, db idDriver, table, pk string) (int64, error) {
	seq := sequenceName(table, pk)
	upsert := fmt.Sprintf(
		"INSERT INTO relgraph_sequences (name, value) VALUES ('%s', LAST_INSERT_ID(1)) "+
			"ON DUPLICATE KEY UPDATE value = LAST_INSERT_ID(value + 1)", seq)
	if err := db.Execute(ctx, upsert); err != nil {
		return 0, err
	}
	rows, err := db.QueryRows(ctx, "SELECT LAST_INSERT_ID() AS next", nil)
	if err != nil {
		return 0, err
	}
	return scanNext(rows)
}

// nextIDH2 advances and reads modernc.org/sqlite's AUTOINCREMENT
// bookkeeping table directly, since H2 has no first-class Go driver in
// this ecosystem and this module uses the embedded sqlite engine in its
// place.
func nextIDH2(ctx context.Context, db idDriver, table string) (int64, error) {
	bump := fmt.Sprintf("UPDATE sqlite_sequence SET seq = seq + 1 WHERE name = '%s'", table)
	if err := db.Execute(ctx, bump); err != nil {
		return 0, err
	}
	rows, err := db.QueryRows(ctx, fmt.Sprintf("SELECT seq AS next FROM sqlite_sequence WHERE name = '%s'", table), nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		if err := db.Execute(ctx, fmt.Sprintf("INSERT INTO sqlite_sequence (name, seq) VALUES ('%s', 1)", table)); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return scanNext(rows)
}

func scanNext(rows []gsql.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("relgraph: next-id query returned no rows")
	}
	v := rows[0]["next"]
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("relgraph: next-id query returned non-integer %T", v)
	}
}
