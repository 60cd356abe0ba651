package types

import (
	"strings"
	"time"
)

// Farmer is a supplier or customer that shipments and sales refer to.
type Farmer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields required on insert.
func (f *Farmer) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// FarmerPatch lists the farmer fields an update may change.
type FarmerPatch struct {
	Name    *string
	Contact *string
	Address *string
}

// Validate checks the fields being changed.
func (p FarmerPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p FarmerPatch) IsEmpty() bool {
	return p.Name == nil && p.Contact == nil && p.Address == nil
}
