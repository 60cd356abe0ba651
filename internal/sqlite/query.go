package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// formatTime renders t as RFC 3339 UTC text.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses text written by formatTime.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// formatDate renders the calendar date of t.
func formatDate(t time.Time) string {
	return t.Format(types.DateLayout)
}

// parseDate parses a calendar date into UTC midnight.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// nowUTC returns the current time in UTC without a monotonic reading.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// orderClause builds an ORDER BY clause from opts. sortable maps the public
// sort keys to column names. An empty OrderBy yields an empty clause.
func orderClause(opts types.ListOptions, sortable map[string]string) (string, error) {
	if opts.OrderBy == "" {
		return "", nil
	}
	col, ok := sortable[opts.OrderBy]
	if !ok {
		return "", fmt.Errorf("%w: %q", types.ErrInvalidSortKey, opts.OrderBy)
	}
	dir := "ASC"
	if opts.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir), nil
}

// setClause accumulates column assignments for a single UPDATE statement.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, val any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, val)
}

// updateRow applies the assignments in set to the row with the given id.
// An empty set only checks that the row exists.
func updateRow(db *sql.DB, table, id string, set setClause) error {
	if len(set.cols) == 0 {
		return rowExists(db, table, id)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(set.cols, ", "))
	res, err := db.Exec(query, append(set.args, id)...)
	if err != nil {
		return mapWriteError("updating "+table, err)
	}
	return requireAffected(res, table, id)
}

// deleteRow removes the row with the given id.
func deleteRow(db *sql.DB, table, id string) error {
	res, err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return mapWriteError("deleting from "+table, err)
	}
	return requireAffected(res, table, id)
}

// rowExists returns ErrNotFound unless table holds a row with the given id.
func rowExists(db *sql.DB, table, id string) error {
	var one int
	err := db.QueryRow(fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", table), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", table, id, types.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up %s %s: %w", table, id, err)
	}
	return nil
}

func requireAffected(res sql.Result, table, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, types.ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error, table, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", table, id, types.ErrNotFound)
	}
	return fmt.Errorf("reading %s %s: %w", table, id, err)
}

// queryList runs query and scans every row with scan.
func queryList[T any](db *sql.DB, query string, scan func(rowScanner) (*T, error), args ...any) ([]*T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}
