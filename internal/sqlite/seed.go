package sqlite

import (
	"database/sql"
	"time"

	"github.com/mesh-intelligence/shipmgr/internal/auth"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// seedAdmin creates the default admin account if no user has that name.
// An existing account keeps its password.
func seedAdmin(db *sql.DB, password string) error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", types.DefaultAdminUsername).Scan(&count)
	if err != nil {
		return unavailable("counting users", err)
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		"INSERT INTO users (id, username, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)",
		newUUID(), types.DefaultAdminUsername, hash, types.RoleAdmin, formatTime(time.Now()),
	)
	return mapWriteError("inserting admin", err)
}

// Sample data set, loaded only when none of the tables it fills has rows.
var (
	sampleProducts = []string{"Tomato", "Potato", "Onion"}
	sampleFarmers  = []string{"Farmer A", "Farmer B", "Farmer C"}
)

var sampleTables = []string{types.ProductsTable, types.FarmersTable, types.ShipmentsTable, types.SalesTable}

const (
	sampleShipmentPrice    = 50.0
	sampleShipmentQuantity = 100.0
	sampleSaleQuantity     = 50.0
	sampleSalePrice        = 65.0
)

// seedSampleData inserts three products, three farmers, one shipment of the
// first product from the first farmer and one sale out of that shipment.
// Returns false without changes if products, farmers, shipments or sales
// already exist.
func seedSampleData(db *sql.DB) (bool, error) {
	for _, table := range sampleTables {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return false, unavailable("counting "+table, err)
		}
		if n > 0 {
			return false, nil
		}
	}

	now := time.Now()
	nowStr := formatTime(now)

	tx, err := db.Begin()
	if err != nil {
		return false, unavailable("beginning seed transaction", err)
	}
	defer tx.Rollback()

	productIDs := make([]string, len(sampleProducts))
	for i, name := range sampleProducts {
		productIDs[i] = newUUID()
		price := 0.0
		if i == 0 {
			price = sampleShipmentPrice
		}
		_, err := tx.Exec(
			"INSERT INTO products (id, name, unit_price, quantity, created_at) VALUES (?, ?, ?, 0, ?)",
			productIDs[i], name, price, nowStr,
		)
		if err != nil {
			return false, mapWriteError("seeding product "+name, err)
		}
	}

	farmerIDs := make([]string, len(sampleFarmers))
	for i, name := range sampleFarmers {
		farmerIDs[i] = newUUID()
		_, err := tx.Exec(
			"INSERT INTO farmers (id, name, contact, address, created_at) VALUES (?, ?, '', '', ?)",
			farmerIDs[i], name, nowStr,
		)
		if err != nil {
			return false, mapWriteError("seeding farmer "+name, err)
		}
	}

	shipmentID := newUUID()
	_, err = tx.Exec(
		"INSERT INTO shipments (id, farmer_id, product_id, quantity, date, status, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		shipmentID, farmerIDs[0], productIDs[0], sampleShipmentQuantity,
		formatDate(now), types.ShipmentDelivered, "Sample shipment", nowStr,
	)
	if err != nil {
		return false, mapWriteError("seeding shipment", err)
	}

	sale := types.Sale{Quantity: sampleSaleQuantity, UnitPrice: sampleSalePrice}
	_, err = tx.Exec(
		"INSERT INTO sales (id, farmer_id, product_id, shipment_id, quantity, unit_price, total_paid, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		newUUID(), farmerIDs[0], productIDs[0], shipmentID,
		sale.Quantity, sale.UnitPrice, sale.Total(), nowStr,
	)
	if err != nil {
		return false, mapWriteError("seeding sale", err)
	}

	if err := tx.Commit(); err != nil {
		return false, unavailable("committing seed transaction", err)
	}
	return true, nil
}
