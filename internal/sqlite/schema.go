package sqlite

import (
	"database/sql"
	"fmt"
)

// Table DDL. Every statement is IF NOT EXISTS so initialization is
// idempotent and keeps existing rows. Farmer and product references carry no
// FOREIGN KEY clause: deleting a farmer or product leaves them dangling.
const (
	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'operator',
    created_at TEXT NOT NULL
);`

	createFarmers = `CREATE TABLE IF NOT EXISTS farmers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE CHECK (trim(name) <> ''),
    contact TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createProducts = `CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE CHECK (trim(name) <> ''),
    unit_price REAL NOT NULL DEFAULT 0 CHECK (unit_price >= 0),
    quantity REAL NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    created_at TEXT NOT NULL
);`

	createShipments = `CREATE TABLE IF NOT EXISTS shipments (
    id TEXT PRIMARY KEY,
    farmer_id TEXT NOT NULL,
    product_id TEXT NOT NULL,
    quantity REAL NOT NULL CHECK (quantity > 0),
    date TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('pending', 'in_transit', 'delivered', 'cancelled')),
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createSales = `CREATE TABLE IF NOT EXISTS sales (
    id TEXT PRIMARY KEY,
    farmer_id TEXT NOT NULL,
    product_id TEXT NOT NULL,
    shipment_id TEXT,
    quantity REAL NOT NULL CHECK (quantity > 0),
    unit_price REAL NOT NULL CHECK (unit_price >= 0),
    total_paid REAL NOT NULL,
    created_at TEXT NOT NULL
);`

	createTransfers = `CREATE TABLE IF NOT EXISTS transfers (
    id TEXT PRIMARY KEY,
    from_farmer_id TEXT NOT NULL,
    to_farmer_id TEXT NOT NULL CHECK (to_farmer_id <> from_farmer_id),
    product_id TEXT NOT NULL,
    quantity REAL NOT NULL CHECK (quantity > 0),
    note TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createReturns = `CREATE TABLE IF NOT EXISTS returns (
    id TEXT PRIMARY KEY,
    farmer_id TEXT NOT NULL,
    product_id TEXT NOT NULL,
    quantity REAL NOT NULL CHECK (quantity > 0),
    refund_amount REAL NOT NULL DEFAULT 0 CHECK (refund_amount >= 0),
    note TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`
)

// Index DDL for the report and lookup queries.
const (
	idxShipmentsFarmer  = `CREATE INDEX IF NOT EXISTS idx_shipments_farmer ON shipments(farmer_id);`
	idxShipmentsProduct = `CREATE INDEX IF NOT EXISTS idx_shipments_product ON shipments(product_id);`
	idxSalesFarmer      = `CREATE INDEX IF NOT EXISTS idx_sales_farmer ON sales(farmer_id);`
	idxSalesProduct     = `CREATE INDEX IF NOT EXISTS idx_sales_product ON sales(product_id);`
	idxSalesShipment    = `CREATE INDEX IF NOT EXISTS idx_sales_shipment ON sales(shipment_id);`
	idxReturnsFarmer    = `CREATE INDEX IF NOT EXISTS idx_returns_farmer ON returns(farmer_id);`
	idxReturnsProduct   = `CREATE INDEX IF NOT EXISTS idx_returns_product ON returns(product_id);`
)

// schemaDDL lists all CREATE TABLE statements in the order of
// types.StandardTableNames.
var schemaDDL = []string{
	createUsers,
	createFarmers,
	createProducts,
	createShipments,
	createSales,
	createTransfers,
	createReturns,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxShipmentsFarmer,
	idxShipmentsProduct,
	idxSalesFarmer,
	idxSalesProduct,
	idxSalesShipment,
	idxReturnsFarmer,
	idxReturnsProduct,
}

// initSchema applies connection pragmas and creates missing tables and
// indexes.
func initSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("setting busy_timeout: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
