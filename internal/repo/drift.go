package repo

import (
	"errors"
	"regexp"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUndefinedColumn is the Postgres SQLSTATE for "column does not exist".
const pgUndefinedColumn = "42703"

// undefinedColumnExpr pulls the column name out of an undefined-column error
// message, e.g. `column "notes" of relation "itinerary_days" does not exist`.
var undefinedColumnExpr = regexp.MustCompile(`column "([^"]+)"`)

// undefinedColumn reports whether err is a Postgres undefined-column
// rejection and, if so, which column the store rejected.
func undefinedColumn(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUndefinedColumn {
		return "", false
	}
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName, true
	}
	m := undefinedColumnExpr.FindStringSubmatch(pgErr.Message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// columnSupport remembers which optional columns the live schema has rejected
// so a run never re-attempts a column it has already seen fail. The zero
// state assumes every column exists; absence is only ever learned from a
// rejection, never probed for.
type columnSupport struct {
	mu     sync.Mutex
	absent map[string]struct{}
}

func newColumnSupport() *columnSupport {
	return &columnSupport{absent: make(map[string]struct{})}
}

// markAbsent records that the schema rejected col.
func (c *columnSupport) markAbsent(col string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.absent[col] = struct{}{}
}

// has reports whether col is still believed to exist in the schema.
func (c *columnSupport) has(col string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, gone := c.absent[col]
	return !gone
}
