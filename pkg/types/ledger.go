package types

import (
	"math"
	"time"
)

// Sale records product sold to a farmer, either out of a shipment or
// directly from the warehouse (empty ShipmentID).
type Sale struct {
	ID         string    `json:"id"`
	FarmerID   string    `json:"farmer_id"`
	ProductID  string    `json:"product_id"`
	ShipmentID string    `json:"shipment_id,omitempty"`
	Quantity   float64   `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPaid  float64   `json:"total_paid"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the fields required on insert.
func (s *Sale) Validate() error {
	if s.FarmerID == "" || s.ProductID == "" {
		return ErrMissingReference
	}
	if !(s.Quantity > 0) || math.IsInf(s.Quantity, 0) {
		return ErrInvalidQuantity
	}
	if s.UnitPrice < 0 || math.IsNaN(s.UnitPrice) {
		return ErrInvalidPrice
	}
	return nil
}

// Total returns quantity times unit price, rounded to cents.
func (s *Sale) Total() float64 {
	return RoundCents(s.Quantity * s.UnitPrice)
}

// Transfer records product moved from one farmer to another.
type Transfer struct {
	ID           string    `json:"id"`
	FromFarmerID string    `json:"from_farmer_id"`
	ToFarmerID   string    `json:"to_farmer_id"`
	ProductID    string    `json:"product_id"`
	Quantity     float64   `json:"quantity"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the fields required on insert.
func (tr *Transfer) Validate() error {
	if tr.FromFarmerID == "" || tr.ToFarmerID == "" || tr.ProductID == "" {
		return ErrMissingReference
	}
	if tr.FromFarmerID == tr.ToFarmerID {
		return ErrSameFarmer
	}
	if !(tr.Quantity > 0) || math.IsInf(tr.Quantity, 0) {
		return ErrInvalidQuantity
	}
	return nil
}

// Return records product a farmer gave back, with the amount refunded.
type Return struct {
	ID           string    `json:"id"`
	FarmerID     string    `json:"farmer_id"`
	ProductID    string    `json:"product_id"`
	Quantity     float64   `json:"quantity"`
	RefundAmount float64   `json:"refund_amount"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the fields required on insert.
func (r *Return) Validate() error {
	if r.FarmerID == "" || r.ProductID == "" {
		return ErrMissingReference
	}
	if !(r.Quantity > 0) || math.IsInf(r.Quantity, 0) {
		return ErrInvalidQuantity
	}
	if r.RefundAmount < 0 || math.IsNaN(r.RefundAmount) {
		return ErrInvalidAmount
	}
	return nil
}
