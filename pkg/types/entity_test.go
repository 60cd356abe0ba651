package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestShapeErrorsWrapConstraintViolation(t *testing.T) {
	for _, err := range []error{
		ErrDuplicate, ErrInvalidName, ErrInvalidUsername, ErrInvalidPassword,
		ErrInvalidQuantity, ErrNegativeQuantity, ErrInvalidPrice, ErrInvalidAmount,
		ErrInvalidStatus, ErrMissingReference, ErrSameFarmer,
	} {
		assert.ErrorIs(t, err, ErrConstraintViolation, err.Error())
	}
	assert.NotErrorIs(t, ErrNotFound, ErrConstraintViolation)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		v       interface{ Validate() error }
		wantErr error
	}{
		{"farmer ok", &Farmer{Name: "Farmer A"}, nil},
		{"farmer blank name", &Farmer{Name: "   "}, ErrInvalidName},
		{"user blank username", &User{}, ErrInvalidUsername},
		{"product ok", &Product{Name: "Tomato", UnitPrice: 50, Quantity: 0}, nil},
		{"product negative price", &Product{Name: "Tomato", UnitPrice: -1}, ErrInvalidPrice},
		{"product NaN quantity", &Product{Name: "Tomato", Quantity: math.NaN()}, ErrNegativeQuantity},
		{"shipment ok", &Shipment{FarmerID: "f", ProductID: "p", Quantity: 10}, nil},
		{"shipment missing farmer", &Shipment{ProductID: "p", Quantity: 10}, ErrMissingReference},
		{"shipment zero quantity", &Shipment{FarmerID: "f", ProductID: "p"}, ErrInvalidQuantity},
		{"shipment bad status", &Shipment{FarmerID: "f", ProductID: "p", Quantity: 1, Status: "lost"}, ErrInvalidStatus},
		{"sale ok", &Sale{FarmerID: "f", ProductID: "p", Quantity: 2, UnitPrice: 3}, nil},
		{"sale negative price", &Sale{FarmerID: "f", ProductID: "p", Quantity: 2, UnitPrice: -3}, ErrInvalidPrice},
		{"transfer same farmer", &Transfer{FromFarmerID: "f", ToFarmerID: "f", ProductID: "p", Quantity: 1}, ErrSameFarmer},
		{"transfer ok", &Transfer{FromFarmerID: "f", ToFarmerID: "g", ProductID: "p", Quantity: 1}, nil},
		{"return negative refund", &Return{FarmerID: "f", ProductID: "p", Quantity: 1, RefundAmount: -5}, ErrInvalidAmount},
		{"return ok", &Return{FarmerID: "f", ProductID: "p", Quantity: 1}, nil},
		{"farmer patch blank name", FarmerPatch{Name: ptr("")}, ErrInvalidName},
		{"product patch negative price", ProductPatch{UnitPrice: ptr(-0.5)}, ErrInvalidPrice},
		{"shipment patch bad status", ShipmentPatch{Status: ptr("lost")}, ErrInvalidStatus},
		{"shipment patch ok", ShipmentPatch{Status: ptr(ShipmentDelivered), Quantity: ptr(4.0)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, FarmerPatch{}.IsEmpty())
	assert.False(t, FarmerPatch{Contact: ptr("")}.IsEmpty())
	assert.True(t, ProductPatch{}.IsEmpty())
	assert.False(t, ProductPatch{Quantity: ptr(0.0)}.IsEmpty())
	assert.True(t, ShipmentPatch{}.IsEmpty())
	assert.False(t, ShipmentPatch{Notes: ptr("x")}.IsEmpty())
}

func TestSaleTotalAndStockNet(t *testing.T) {
	s := Sale{Quantity: 3, UnitPrice: 0.1}
	assert.Equal(t, 0.3, s.Total())

	row := StockRow{ShippedIn: 100, Sold: 50, Returned: 5}
	assert.Equal(t, 45.0, row.Net())
}
