package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// Cancelled shipments never count toward stock or farmer totals.
const stockQuery = `SELECT p.id, p.name, p.quantity,
    COALESCE((SELECT SUM(s.quantity) FROM shipments s WHERE s.product_id = p.id AND s.status <> 'cancelled'), 0),
    COALESCE((SELECT SUM(sa.quantity) FROM sales sa WHERE sa.product_id = p.id), 0),
    COALESCE((SELECT SUM(r.quantity) FROM returns r WHERE r.product_id = p.id), 0)
FROM products p
ORDER BY p.name, p.id`

const farmerSummaryQuery = `SELECT f.id, f.name,
    (SELECT COUNT(*) FROM shipments s WHERE s.farmer_id = f.id AND s.status <> 'cancelled'),
    COALESCE((SELECT SUM(s.quantity) FROM shipments s WHERE s.farmer_id = f.id AND s.status <> 'cancelled'), 0),
    COALESCE((SELECT SUM(sa.total_paid) FROM sales sa WHERE sa.farmer_id = f.id), 0),
    COALESCE((SELECT SUM(r.refund_amount) FROM returns r WHERE r.farmer_id = f.id), 0)
FROM farmers f
ORDER BY f.name, f.id`

const receiptQuery = `SELECT s.id, s.date, s.status, s.notes, s.quantity,
    COALESCE(f.name, ''), COALESCE(p.name, ''), COALESCE(p.unit_price, 0)
FROM shipments s
LEFT JOIN farmers f ON f.id = s.farmer_id
LEFT JOIN products p ON p.id = s.product_id
WHERE s.id = ?`

type reports struct {
	b *Backend
}

func (r *reports) Stock() ([]types.StockRow, error) {
	var out []types.StockRow
	err := r.b.read(func(db *sql.DB) error {
		rows, err := db.Query(stockQuery)
		if err != nil {
			return fmt.Errorf("querying stock: %w", err)
		}
		defer rows.Close()
		out = []types.StockRow{}
		for rows.Next() {
			var row types.StockRow
			if err := rows.Scan(&row.ProductID, &row.Name, &row.OnHand, &row.ShippedIn, &row.Sold, &row.Returned); err != nil {
				return fmt.Errorf("scanning stock row: %w", err)
			}
			out = append(out, row)
		}
		return rows.Err()
	})
	return out, err
}

func (r *reports) FarmerSummaries() ([]types.FarmerSummary, error) {
	var out []types.FarmerSummary
	err := r.b.read(func(db *sql.DB) error {
		rows, err := db.Query(farmerSummaryQuery)
		if err != nil {
			return fmt.Errorf("querying farmer summaries: %w", err)
		}
		defer rows.Close()
		out = []types.FarmerSummary{}
		for rows.Next() {
			var fs types.FarmerSummary
			if err := rows.Scan(&fs.FarmerID, &fs.Name, &fs.Shipments, &fs.QuantityIn, &fs.TotalPaid, &fs.TotalRefunded); err != nil {
				return fmt.Errorf("scanning farmer summary: %w", err)
			}
			fs.TotalPaid = types.RoundCents(fs.TotalPaid)
			fs.TotalRefunded = types.RoundCents(fs.TotalRefunded)
			out = append(out, fs)
		}
		return rows.Err()
	})
	return out, err
}

// Receipt joins the shipment with its farmer and product. Names of deleted
// records are empty and a deleted product prices the line at zero.
func (r *reports) Receipt(shipmentID string) (*types.Receipt, error) {
	var rc types.Receipt
	err := r.b.read(func(db *sql.DB) error {
		var date string
		err := db.QueryRow(receiptQuery, shipmentID).Scan(
			&rc.ShipmentID, &date, &rc.Status, &rc.Notes, &rc.Quantity,
			&rc.FarmerName, &rc.ProductName, &rc.UnitPrice,
		)
		if err != nil {
			return notFound(err, types.ShipmentsTable, shipmentID)
		}
		rc.Date, err = parseDate(date)
		return err
	})
	if err != nil {
		return nil, err
	}
	rc.Total = types.RoundCents(rc.Quantity * rc.UnitPrice)
	return &rc, nil
}
