package sqlite

import (
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// unavailable wraps err with ErrStorageUnavailable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", types.ErrStorageUnavailable, op, err)
}

// mapWriteError translates SQLite result codes on insert, update and delete
// into the sentinel errors of pkg/types.
func mapWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return fmt.Errorf("%s: %w", op, err)
	}
	code := se.Code()
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%s: %w", op, types.ErrDuplicate)
	}
	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return fmt.Errorf("%s: %w: %v", op, types.ErrConstraintViolation, err)
	case sqlite3.SQLITE_READONLY, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR,
		sqlite3.SQLITE_PERM, sqlite3.SQLITE_FULL:
		return unavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
