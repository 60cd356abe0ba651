package sqlite

import (
	"database/sql"
	"strings"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

const farmerColumns = "id, name, contact, address, created_at"

var farmerSortKeys = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

type farmersTable struct {
	b *Backend
}

func (t *farmersTable) Create(f *types.Farmer) (string, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := f.Validate(); err != nil {
		return "", err
	}
	id := newUUID()
	created := nowUTC()
	err := t.b.write(func(db *sql.DB) error {
		_, err := db.Exec(
			"INSERT INTO farmers ("+farmerColumns+") VALUES (?, ?, ?, ?, ?)",
			id, f.Name, f.Contact, f.Address, formatTime(created),
		)
		return mapWriteError("inserting farmer", err)
	})
	if err != nil {
		return "", err
	}
	f.ID = id
	f.CreatedAt = created
	return id, nil
}

func (t *farmersTable) Get(id string) (*types.Farmer, error) {
	var f *types.Farmer
	err := t.b.read(func(db *sql.DB) error {
		row := db.QueryRow("SELECT "+farmerColumns+" FROM farmers WHERE id = ?", id)
		var err error
		f, err = scanFarmer(row)
		if err != nil {
			return notFound(err, types.FarmersTable, id)
		}
		return nil
	})
	return f, err
}

func (t *farmersTable) List(opts types.ListOptions) ([]*types.Farmer, error) {
	order, err := orderClause(opts, farmerSortKeys)
	if err != nil {
		return nil, err
	}
	var out []*types.Farmer
	err = t.b.read(func(db *sql.DB) error {
		out, err = queryList(db, "SELECT "+farmerColumns+" FROM farmers"+order, scanFarmer)
		return err
	})
	return out, err
}

func (t *farmersTable) Update(id string, patch types.FarmerPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Contact != nil {
		set.add("contact", *patch.Contact)
	}
	if patch.Address != nil {
		set.add("address", *patch.Address)
	}
	return t.b.write(func(db *sql.DB) error {
		return updateRow(db, types.FarmersTable, id, set)
	})
}

func (t *farmersTable) Delete(id string) error {
	return t.b.write(func(db *sql.DB) error {
		return deleteRow(db, types.FarmersTable, id)
	})
}

func scanFarmer(s rowScanner) (*types.Farmer, error) {
	var f types.Farmer
	var created string
	if err := s.Scan(&f.ID, &f.Name, &f.Contact, &f.Address, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	f.CreatedAt = t
	return &f, nil
}
