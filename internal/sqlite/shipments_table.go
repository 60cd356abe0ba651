package sqlite

import (
	"database/sql"
	"time"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

const shipmentColumns = "id, farmer_id, product_id, quantity, date, status, notes, created_at"

var shipmentSortKeys = map[string]string{
	"date":       "date",
	"status":     "status",
	"quantity":   "quantity",
	"created_at": "created_at",
}

type shipmentsTable struct {
	b *Backend
}

// Create inserts s. A zero Date defaults to today and an empty Status to
// pending.
func (t *shipmentsTable) Create(s *types.Shipment) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	if s.Status == "" {
		s.Status = types.ShipmentPending
	}
	created := nowUTC()
	if s.Date.IsZero() {
		s.Date = created
	}
	date := formatDate(s.Date)
	id := newUUID()
	err := t.b.write(func(db *sql.DB) error {
		_, err := db.Exec(
			"INSERT INTO shipments ("+shipmentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			id, s.FarmerID, s.ProductID, s.Quantity, date, s.Status, s.Notes, formatTime(created),
		)
		return mapWriteError("inserting shipment", err)
	})
	if err != nil {
		return "", err
	}
	s.ID = id
	y, m, d := s.Date.Date()
	s.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	s.CreatedAt = created
	return id, nil
}

func (t *shipmentsTable) Get(id string) (*types.Shipment, error) {
	var s *types.Shipment
	err := t.b.read(func(db *sql.DB) error {
		row := db.QueryRow("SELECT "+shipmentColumns+" FROM shipments WHERE id = ?", id)
		var err error
		s, err = scanShipment(row)
		if err != nil {
			return notFound(err, types.ShipmentsTable, id)
		}
		return nil
	})
	return s, err
}

func (t *shipmentsTable) List(opts types.ListOptions) ([]*types.Shipment, error) {
	order, err := orderClause(opts, shipmentSortKeys)
	if err != nil {
		return nil, err
	}
	var out []*types.Shipment
	err = t.b.read(func(db *sql.DB) error {
		out, err = queryList(db, "SELECT "+shipmentColumns+" FROM shipments"+order, scanShipment)
		return err
	})
	return out, err
}

func (t *shipmentsTable) Update(id string, patch types.ShipmentPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	var set setClause
	if patch.FarmerID != nil {
		set.add("farmer_id", *patch.FarmerID)
	}
	if patch.ProductID != nil {
		set.add("product_id", *patch.ProductID)
	}
	if patch.Quantity != nil {
		set.add("quantity", *patch.Quantity)
	}
	if patch.Date != nil {
		set.add("date", formatDate(*patch.Date))
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if patch.Notes != nil {
		set.add("notes", *patch.Notes)
	}
	return t.b.write(func(db *sql.DB) error {
		return updateRow(db, types.ShipmentsTable, id, set)
	})
}

func (t *shipmentsTable) Delete(id string) error {
	return t.b.write(func(db *sql.DB) error {
		return deleteRow(db, types.ShipmentsTable, id)
	})
}

func scanShipment(s rowScanner) (*types.Shipment, error) {
	var sh types.Shipment
	var date, created string
	if err := s.Scan(&sh.ID, &sh.FarmerID, &sh.ProductID, &sh.Quantity, &date, &sh.Status, &sh.Notes, &created); err != nil {
		return nil, err
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	c, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	sh.Date = d
	sh.CreatedAt = c
	return &sh, nil
}
