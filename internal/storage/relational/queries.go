// Package relational holds the SQL shared by the sqlite and postgres stores.
// Statements are written with ? placeholders and rebound per dialect.
package relational

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/utils"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// timestampFormat is fixed-width so text ordering matches chronological ordering.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

var errNotOpen = errors.New("storage not open, call Init or Load first")

// Queries implements every data operation of storage.Provider on top of an open *sql.DB.
// Backends embed it and add their own lifecycle.
type Queries struct {
	DB      *sql.DB
	Dialect Dialect
	// Now stamps created_at/updated_at. Defaults to time.Now.
	Now func() time.Time
}

func (q *Queries) now() time.Time {
	if q.Now == nil {
		return time.Now().UTC()
	}
	return q.Now().UTC()
}

func (q *Queries) db() (*sql.DB, error) {
	if q.DB == nil {
		return nil, errNotOpen
	}
	return q.DB, nil
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
func (q *Queries) Rebind(query string) string {
	if q.Dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// inTx runs fn inside a transaction and commits when it returns nil.
func (q *Queries) inTx(fn func(tx *sql.Tx) error) error {
	db, err := q.db()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// placeholders returns "?, ?, ?" for n values.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func formatDate(t time.Time) string {
	return utils.DayOf(t).Format(constants.DateFormat)
}

// dateRange appends inclusive entry_date bounds for the given column.
func dateRange(column string, start, end *time.Time) (string, []any) {
	var clause strings.Builder
	var args []any
	if start != nil {
		clause.WriteString(" AND " + column + " >= ?")
		args = append(args, formatDate(*start))
	}
	if end != nil {
		clause.WriteString(" AND " + column + " <= ?")
		args = append(args, formatDate(*end))
	}
	return clause.String(), args
}
