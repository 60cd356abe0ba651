package types

import (
	"math"
	"strings"
	"time"
)

// Product is a stocked item with a unit price and quantity on hand.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  float64   `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields required on insert.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.UnitPrice < 0 || math.IsNaN(p.UnitPrice) {
		return ErrInvalidPrice
	}
	if p.Quantity < 0 || math.IsNaN(p.Quantity) {
		return ErrNegativeQuantity
	}
	return nil
}

// ProductPatch lists the product fields an update may change.
type ProductPatch struct {
	Name      *string
	UnitPrice *float64
	Quantity  *float64
}

// Validate checks the fields being changed.
func (p ProductPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrInvalidName
	}
	if p.UnitPrice != nil && (*p.UnitPrice < 0 || math.IsNaN(*p.UnitPrice)) {
		return ErrInvalidPrice
	}
	if p.Quantity != nil && (*p.Quantity < 0 || math.IsNaN(*p.Quantity)) {
		return ErrNegativeQuantity
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.UnitPrice == nil && p.Quantity == nil
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
