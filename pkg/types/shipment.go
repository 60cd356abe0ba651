package types

import (
	"math"
	"time"
)

// Shipment statuses.
const (
	ShipmentPending   = "pending"
	ShipmentInTransit = "in_transit"
	ShipmentDelivered = "delivered"
	ShipmentCancelled = "cancelled"
)

// ShipmentStatuses lists the recognized statuses in display order.
var ShipmentStatuses = []string{
	ShipmentPending,
	ShipmentInTransit,
	ShipmentDelivered,
	ShipmentCancelled,
}

var validShipmentStatuses = map[string]bool{
	ShipmentPending:   true,
	ShipmentInTransit: true,
	ShipmentDelivered: true,
	ShipmentCancelled: true,
}

// ValidShipmentStatus reports whether s is a recognized status.
func ValidShipmentStatus(s string) bool {
	return validShipmentStatuses[s]
}

// DateLayout is the calendar date format used for shipment dates.
const DateLayout = "2006-01-02"

// Shipment moves a quantity of one product for one farmer. FarmerID and
// ProductID are lookups only: deleting the farmer or product leaves them
// dangling.
type Shipment struct {
	ID        string    `json:"id"`
	FarmerID  string    `json:"farmer_id"`
	ProductID string    `json:"product_id"`
	Quantity  float64   `json:"quantity"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields required on insert. An empty Status is
// accepted and defaults to pending on Create.
func (s *Shipment) Validate() error {
	if s.FarmerID == "" || s.ProductID == "" {
		return ErrMissingReference
	}
	if !(s.Quantity > 0) || math.IsInf(s.Quantity, 0) {
		return ErrInvalidQuantity
	}
	if s.Status != "" && !ValidShipmentStatus(s.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ShipmentPatch lists the shipment fields an update may change.
type ShipmentPatch struct {
	FarmerID  *string
	ProductID *string
	Quantity  *float64
	Date      *time.Time
	Status    *string
	Notes     *string
}

// Validate checks the fields being changed.
func (p ShipmentPatch) Validate() error {
	if (p.FarmerID != nil && *p.FarmerID == "") || (p.ProductID != nil && *p.ProductID == "") {
		return ErrMissingReference
	}
	if p.Quantity != nil && (!(*p.Quantity > 0) || math.IsInf(*p.Quantity, 0)) {
		return ErrInvalidQuantity
	}
	if p.Status != nil && !ValidShipmentStatus(*p.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p ShipmentPatch) IsEmpty() bool {
	return p.FarmerID == nil && p.ProductID == nil && p.Quantity == nil &&
		p.Date == nil && p.Status == nil && p.Notes == nil
}
