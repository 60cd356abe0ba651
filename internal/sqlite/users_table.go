package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/shipmgr/internal/auth"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

const userColumns = "id, username, role, created_at"

var userSortKeys = map[string]string{
	"username":   "username",
	"created_at": "created_at",
}

type usersTable struct {
	b *Backend
}

// Create inserts u with a bcrypt hash of password. An empty Role defaults
// to operator.
func (t *usersTable) Create(u *types.User, password string) (string, error) {
	u.Username = strings.TrimSpace(u.Username)
	if err := u.Validate(); err != nil {
		return "", err
	}
	if u.Role == "" {
		u.Role = types.RoleOperator
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	id := newUUID()
	created := nowUTC()
	err = t.b.write(func(db *sql.DB) error {
		_, err := db.Exec(
			"INSERT INTO users (id, username, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)",
			id, u.Username, hash, u.Role, formatTime(created),
		)
		return mapWriteError("inserting user", err)
	})
	if err != nil {
		return "", err
	}
	u.ID = id
	u.CreatedAt = created
	return id, nil
}

func (t *usersTable) Get(id string) (*types.User, error) {
	return t.getBy("id", id)
}

func (t *usersTable) GetByUsername(username string) (*types.User, error) {
	return t.getBy("username", username)
}

func (t *usersTable) getBy(col, val string) (*types.User, error) {
	var u *types.User
	err := t.b.read(func(db *sql.DB) error {
		row := db.QueryRow("SELECT "+userColumns+" FROM users WHERE "+col+" = ?", val)
		var err error
		u, err = scanUser(row)
		if err != nil {
			return notFound(err, types.UsersTable, val)
		}
		return nil
	})
	return u, err
}

func (t *usersTable) List(opts types.ListOptions) ([]*types.User, error) {
	order, err := orderClause(opts, userSortKeys)
	if err != nil {
		return nil, err
	}
	var out []*types.User
	err = t.b.read(func(db *sql.DB) error {
		out, err = queryList(db, "SELECT "+userColumns+" FROM users"+order, scanUser)
		return err
	})
	return out, err
}

// Authenticate compares password against the stored hash. Unknown users
// and wrong passwords both return ErrInvalidCredentials.
func (t *usersTable) Authenticate(username, password string) (*types.User, error) {
	var u *types.User
	var hash string
	err := t.b.read(func(db *sql.DB) error {
		row := db.QueryRow("SELECT "+userColumns+", password_hash FROM users WHERE username = ?", username)
		var created string
		var rec types.User
		err := row.Scan(&rec.ID, &rec.Username, &rec.Role, &created, &hash)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading user: %w", err)
		}
		if rec.CreatedAt, err = parseTime(created); err != nil {
			return err
		}
		u = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		auth.BurnCompare(password)
		return nil, types.ErrInvalidCredentials
	}
	if !auth.CheckPassword(hash, password) {
		return nil, types.ErrInvalidCredentials
	}
	return u, nil
}

func (t *usersTable) SetPassword(username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return t.b.write(func(db *sql.DB) error {
		res, err := db.Exec("UPDATE users SET password_hash = ? WHERE username = ?", hash, username)
		if err != nil {
			return mapWriteError("updating password", err)
		}
		return requireAffected(res, types.UsersTable, username)
	})
}

func scanUser(s rowScanner) (*types.User, error) {
	var u types.User
	var created string
	if err := s.Scan(&u.ID, &u.Username, &u.Role, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = t
	return &u, nil
}
