package types

import (
	"errors"
	"fmt"
)

// ListOptions controls the ordering of List results. With an empty OrderBy
// the order is unspecified.
type ListOptions struct {
	OrderBy string
	Desc    bool
}

// FarmerTable provides CRUD operations on farmers.
type FarmerTable interface {
	// Create inserts f, assigning f.ID and f.CreatedAt. Returns the new ID.
	Create(f *Farmer) (string, error)
	// Get returns ErrNotFound if no farmer has the given ID.
	Get(id string) (*Farmer, error)
	List(opts ListOptions) ([]*Farmer, error)
	// Update applies the non-nil fields of patch. Returns ErrNotFound if
	// no farmer has the given ID.
	Update(id string, patch FarmerPatch) error
	// Delete removes the farmer. Shipments referencing it are left as is.
	Delete(id string) error
}

// ProductTable provides CRUD operations on products.
type ProductTable interface {
	Create(p *Product) (string, error)
	Get(id string) (*Product, error)
	List(opts ListOptions) ([]*Product, error)
	Update(id string, patch ProductPatch) error
	Delete(id string) error
}

// ShipmentTable provides CRUD operations on shipments.
type ShipmentTable interface {
	Create(s *Shipment) (string, error)
	Get(id string) (*Shipment, error)
	List(opts ListOptions) ([]*Shipment, error)
	Update(id string, patch ShipmentPatch) error
	Delete(id string) error
}

// UserTable manages login accounts. Passwords are only ever stored hashed.
type UserTable interface {
	Create(u *User, password string) (string, error)
	Get(id string) (*User, error)
	GetByUsername(username string) (*User, error)
	List(opts ListOptions) ([]*User, error)
	// Authenticate returns the user whose credentials match, or
	// ErrInvalidCredentials.
	Authenticate(username, password string) (*User, error)
	SetPassword(username, password string) error
}

// SaleTable records sales of product to farmers.
type SaleTable interface {
	Create(s *Sale) (string, error)
	Get(id string) (*Sale, error)
	List(opts ListOptions) ([]*Sale, error)
	Delete(id string) error
}

// TransferTable records product moved between farmers.
type TransferTable interface {
	Create(tr *Transfer) (string, error)
	Get(id string) (*Transfer, error)
	List(opts ListOptions) ([]*Transfer, error)
	Delete(id string) error
}

// ReturnTable records product returned by farmers.
type ReturnTable interface {
	Create(r *Return) (string, error)
	Get(id string) (*Return, error)
	List(opts ListOptions) ([]*Return, error)
	Delete(id string) error
}

// Reports computes read-only aggregates over the tables.
type Reports interface {
	Stock() ([]StockRow, error)
	FarmerSummaries() ([]FarmerSummary, error)
	Receipt(shipmentID string) (*Receipt, error)
}

// Table operation errors.
var (
	ErrNotFound            = errors.New("record not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidSortKey      = errors.New("invalid sort key")
)

// Shape violations. Each wraps ErrConstraintViolation so callers can test
// for the general class or the specific cause.
var (
	ErrDuplicate        = fmt.Errorf("%w: value already exists", ErrConstraintViolation)
	ErrInvalidName      = fmt.Errorf("%w: name must not be empty", ErrConstraintViolation)
	ErrInvalidUsername  = fmt.Errorf("%w: username must not be empty", ErrConstraintViolation)
	ErrInvalidPassword  = fmt.Errorf("%w: password must not be empty", ErrConstraintViolation)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be positive", ErrConstraintViolation)
	ErrNegativeQuantity = fmt.Errorf("%w: quantity must not be negative", ErrConstraintViolation)
	ErrInvalidPrice     = fmt.Errorf("%w: price must not be negative", ErrConstraintViolation)
	ErrInvalidAmount    = fmt.Errorf("%w: amount must not be negative", ErrConstraintViolation)
	ErrInvalidStatus    = fmt.Errorf("%w: unknown shipment status", ErrConstraintViolation)
	ErrMissingReference = fmt.Errorf("%w: farmer and product are required", ErrConstraintViolation)
	ErrSameFarmer       = fmt.Errorf("%w: cannot transfer to the same farmer", ErrConstraintViolation)
)
