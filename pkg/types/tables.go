package types

// SQLite table names, in creation order.
const (
	UsersTable     = "users"
	FarmersTable   = "farmers"
	ProductsTable  = "products"
	ShipmentsTable = "shipments"
	SalesTable     = "sales"
	TransfersTable = "transfers"
	ReturnsTable   = "returns"
)

// StandardTableNames lists all table names for enumeration (backup, reports).
var StandardTableNames = []string{
	UsersTable,
	FarmersTable,
	ProductsTable,
	ShipmentsTable,
	SalesTable,
	TransfersTable,
	ReturnsTable,
}
