package sqlite

import (
	"database/sql"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

var ledgerSortKeys = map[string]string{
	"quantity":   "quantity",
	"created_at": "created_at",
}

const saleColumns = "id, farmer_id, product_id, shipment_id, quantity, unit_price, total_paid, created_at"

type salesTable struct {
	b *Backend
}

// Create inserts s, computing TotalPaid from quantity and unit price.
func (t *salesTable) Create(s *types.Sale) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	s.TotalPaid = s.Total()
	var shipment any
	if s.ShipmentID != "" {
		shipment = s.ShipmentID
	}
	id := newUUID()
	created := nowUTC()
	err := t.b.write(func(db *sql.DB) error {
		_, err := db.Exec(
			"INSERT INTO sales ("+saleColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			id, s.FarmerID, s.ProductID, shipment, s.Quantity, s.UnitPrice, s.TotalPaid, formatTime(created),
		)
		return mapWriteError("inserting sale", err)
	})
	if err != nil {
		return "", err
	}
	s.ID = id
	s.CreatedAt = created
	return id, nil
}

func (t *salesTable) Get(id string) (*types.Sale, error) {
	var s *types.Sale
	err := t.b.read(func(db *sql.DB) error {
		row := db.QueryRow("SELECT "+saleColumns+" FROM sales WHERE id = ?", id)
		var err error
		s, err = scanSale(row)
		if err != nil {
			return notFound(err, types.SalesTable, id)
		}
		return nil
	})
	return s, err
}

func (t *salesTable) List(opts types.ListOptions) ([]*types.Sale, error) {
	order, err := orderClause(opts, ledgerSortKeys)
	if err != nil {
		return nil, err
	}
	var out []*types.Sale
	err = t.b.read(func(db *sql.DB) error {
		out, err = queryList(db, "SELECT "+saleColumns+" FROM sales"+order, scanSale)
		return err
	})
	return out, err
}

func (t *salesTable) Delete(id string) error {
	return t.b.write(func(db *sql.DB) error {
		return deleteRow(db, types.SalesTable, id)
	})
}

func scanSale(s rowScanner) (*types.Sale, error) {
	var sa types.Sale
	var shipment sql.NullString
	var created string
	if err := s.Scan(&sa.ID, &sa.FarmerID, &sa.ProductID, &shipment, &sa.Quantity, &sa.UnitPrice, &sa.TotalPaid, &created); err != nil {
		return nil, err
	}
	c, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	sa.ShipmentID = shipment.String
	sa.CreatedAt = c
	return &sa, nil
}

const transferColumns = "id, from_farmer_id, to_farmer_id, product_id, quantity, note, created_at"

type transfersTable struct {
	b *Backend
}

func (t *transfersTable) Create(tr *types.Transfer) (string, error) {
	if err := tr.Validate(); err != nil {
		return "", err
	}
	id := newUUID()
	created := nowUTC()
	err := t.b.write(func(db *sql.DB) error {
		_, err := db.Exec(
			"INSERT INTO transfers ("+transferColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, tr.FromFarmerID, tr.ToFarmerID, tr.ProductID, tr.Quantity, tr.Note, formatTime(created),
		)
		return mapWriteError("inserting transfer", err)
	})
	if err != nil {
		return "", err
	}
	tr.ID = id
	tr.CreatedAt = created
	return id, nil
}

func (t *transfersTable) Get(id string) (*types.Transfer, error) {
	var tr *types.Transfer
	err := t.b.read(func(db *sql.DB) error {
		row := db.QueryRow("SELECT "+transferColumns+" FROM transfers WHERE id = ?", id)
		var err error
		tr, err = scanTransfer(row)
		if err != nil {
			return notFound(err, types.TransfersTable, id)
		}
		return nil
	})
	return tr, err
}

func (t *transfersTable) List(opts types.ListOptions) ([]*types.Transfer, error) {
	order, err := orderClause(opts, ledgerSortKeys)
	if err != nil {
		return nil, err
	}
	var out []*types.Transfer
	err = t.b.read(func(db *sql.DB) error {
		out, err = queryList(db, "SELECT "+transferColumns+" FROM transfers"+order, scanTransfer)
		return err
	})
	return out, err
}

func (t *transfersTable) Delete(id string) error {
	return t.b.write(func(db *sql.DB) error {
		return deleteRow(db, types.TransfersTable, id)
	})
}

func scanTransfer(s rowScanner) (*types.Transfer, error) {
	var tr types.Transfer
	var created string
	if err := s.Scan(&tr.ID, &tr.FromFarmerID, &tr.ToFarmerID, &tr.ProductID, &tr.Quantity, &tr.Note, &created); err != nil {
		return nil, err
	}
	c, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	tr.CreatedAt = c
	return &tr, nil
}

const returnColumns = "id, farmer_id, product_id, quantity, refund_amount, note, created_at"

type returnsTable struct {
	b *Backend
}

func (t *returnsTable) Create(r *types.Return) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	r.RefundAmount = types.RoundCents(r.RefundAmount)
	id := newUUID()
	created := nowUTC()
	err := t.b.write(func(db *sql.DB) error {
		_, err := db.Exec(
			"INSERT INTO returns ("+returnColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, r.FarmerID, r.ProductID, r.Quantity, r.RefundAmount, r.Note, formatTime(created),
		)
		return mapWriteError("inserting return", err)
	})
	if err != nil {
		return "", err
	}
	r.ID = id
	r.CreatedAt = created
	return id, nil
}

func (t *returnsTable) Get(id string) (*types.Return, error) {
	var r *types.Return
	err := t.b.read(func(db *sql.DB) error {
		row := db.QueryRow("SELECT "+returnColumns+" FROM returns WHERE id = ?", id)
		var err error
		r, err = scanReturn(row)
		if err != nil {
			return notFound(err, types.ReturnsTable, id)
		}
		return nil
	})
	return r, err
}

func (t *returnsTable) List(opts types.ListOptions) ([]*types.Return, error) {
	order, err := orderClause(opts, ledgerSortKeys)
	if err != nil {
		return nil, err
	}
	var out []*types.Return
	err = t.b.read(func(db *sql.DB) error {
		out, err = queryList(db, "SELECT "+returnColumns+" FROM returns"+order, scanReturn)
		return err
	})
	return out, err
}

func (t *returnsTable) Delete(id string) error {
	return t.b.write(func(db *sql.DB) error {
		return deleteRow(db, types.ReturnsTable, id)
	})
}

func scanReturn(s rowScanner) (*types.Return, error) {
	var r types.Return
	var created string
	if err := s.Scan(&r.ID, &r.FarmerID, &r.ProductID, &r.Quantity, &r.RefundAmount, &r.Note, &created); err != nil {
		return nil, err
	}
	c, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = c
	return &r, nil
}
