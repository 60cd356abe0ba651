package sqlite

import (
	"database/sql"
	"strings"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

const productColumns = "id, name, unit_price, quantity, created_at"

var productSortKeys = map[string]string{
	"name":       "name",
	"unit_price": "unit_price",
	"quantity":   "quantity",
	"created_at": "created_at",
}

type productsTable struct {
	b *Backend
}

func (t *productsTable) Create(p *types.Product) (string, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return "", err
	}
	id := newUUID()
	created := nowUTC()
	err := t.b.write(func(db *sql.DB) error {
		_, err := db.Exec(
			"INSERT INTO products ("+productColumns+") VALUES (?, ?, ?, ?, ?)",
			id, p.Name, p.UnitPrice, p.Quantity, formatTime(created),
		)
		return mapWriteError("inserting product", err)
	})
	if err != nil {
		return "", err
	}
	p.ID = id
	p.CreatedAt = created
	return id, nil
}

func (t *productsTable) Get(id string) (*types.Product, error) {
	var p *types.Product
	err := t.b.read(func(db *sql.DB) error {
		row := db.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", id)
		var err error
		p, err = scanProduct(row)
		if err != nil {
			return notFound(err, types.ProductsTable, id)
		}
		return nil
	})
	return p, err
}

func (t *productsTable) List(opts types.ListOptions) ([]*types.Product, error) {
	order, err := orderClause(opts, productSortKeys)
	if err != nil {
		return nil, err
	}
	var out []*types.Product
	err = t.b.read(func(db *sql.DB) error {
		out, err = queryList(db, "SELECT "+productColumns+" FROM products"+order, scanProduct)
		return err
	})
	return out, err
}

func (t *productsTable) Update(id string, patch types.ProductPatch) error {
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
	if patch.UnitPrice != nil {
		set.add("unit_price", *patch.UnitPrice)
	}
	if patch.Quantity != nil {
		set.add("quantity", *patch.Quantity)
	}
	return t.b.write(func(db *sql.DB) error {
		return updateRow(db, types.ProductsTable, id, set)
	})
}

func (t *productsTable) Delete(id string) error {
	return t.b.write(func(db *sql.DB) error {
		return deleteRow(db, types.ProductsTable, id)
	})
}

func scanProduct(s rowScanner) (*types.Product, error) {
	var p types.Product
	var created string
	if err := s.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Quantity, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t
	return &p, nil
}
