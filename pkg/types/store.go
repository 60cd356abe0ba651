package types

import "errors"

// Store is the explicitly constructed handle on the local database. Callers
// attach it once at startup, use the typed tables, and detach at shutdown.
type Store interface {
	// Attach opens (creating if absent) the database described by config,
	// creates missing tables, and seeds the default account. Existing data
	// is kept. Returns ErrAlreadyAttached if called while attached, and an
	// error wrapping ErrStorageUnavailable if the file cannot be used.
	Attach(config Config) error

	// Detach closes the database. Idempotent. After Detach every table
	// operation returns ErrDetached.
	Detach() error

	Users() UserTable
	Farmers() FarmerTable
	Products() ProductTable
	Shipments() ShipmentTable
	Sales() SaleTable
	Transfers() TransferTable
	Returns() ReturnTable
	Reports() Reports

	// CheckReferences returns an error wrapping ErrNotFound for the first
	// ID in refs that names no record. Empty IDs are skipped.
	CheckReferences(refs References) error
}

// Store lifecycle errors.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDetached           = errors.New("store is detached")
	ErrAlreadyAttached    = errors.New("store is already attached")
)

// Session errors.
var (
	// ErrNotLoggedIn is returned by guarded operations when no session is
	// active.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrPermissionDenied is returned when the session user lacks the role
	// an operation needs.
	ErrPermissionDenied = errors.New("permission denied")
)
