package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func TestReports_Stock(t *testing.T) {
	b := newTestBackend(t)
	fid, pid := seedRefs(t, b)
	otherPID, err := b.Products().Create(&types.Product{Name: "Onion", Quantity: 7})
	require.NoError(t, err)

	_, err = b.Shipments().Create(&types.Shipment{FarmerID: fid, ProductID: pid, Quantity: 100, Status: types.ShipmentDelivered})
	require.NoError(t, err)
	_, err = b.Shipments().Create(&types.Shipment{FarmerID: fid, ProductID: pid, Quantity: 40, Status: types.ShipmentCancelled})
	require.NoError(t, err)
	_, err = b.Sales().Create(&types.Sale{FarmerID: fid, ProductID: pid, Quantity: 30, UnitPrice: 65})
	require.NoError(t, err)
	_, err = b.Returns().Create(&types.Return{FarmerID: fid, ProductID: pid, Quantity: 5})
	require.NoError(t, err)

	rows, err := b.Reports().Stock()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, otherPID, rows[0].ProductID)
	assert.Equal(t, 7.0, rows[0].OnHand)
	assert.Zero(t, rows[0].ShippedIn)

	tomato := rows[1]
	assert.Equal(t, "Tomato", tomato.Name)
	assert.Equal(t, 100.0, tomato.ShippedIn)
	assert.Equal(t, 30.0, tomato.Sold)
	assert.Equal(t, 5.0, tomato.Returned)
	assert.Equal(t, 65.0, tomato.Net())
}

func TestReports_FarmerSummaries(t *testing.T) {
	b := newTestBackendWith(t, types.Config{DataDir: t.TempDir(), SeedSampleData: true})

	summaries, err := b.Reports().FarmerSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	a := summaries[0]
	assert.Equal(t, "Farmer A", a.Name)
	assert.Equal(t, 1, a.Shipments)
	assert.Equal(t, 100.0, a.QuantityIn)
	assert.Equal(t, 3250.0, a.TotalPaid)
	assert.Zero(t, a.TotalRefunded)

	assert.Zero(t, summaries[1].Shipments)
	assert.Zero(t, summaries[2].TotalPaid)
}

func TestReports_Receipt(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend, shipmentID, productID string)
	}{
		{
			name: "joins names and prices the line",
			check: func(t *testing.T, b *Backend, shipmentID, _ string) {
				rc, err := b.Reports().Receipt(shipmentID)
				require.NoError(t, err)
				assert.Equal(t, "Farmer A", rc.FarmerName)
				assert.Equal(t, "Tomato", rc.ProductName)
				assert.Equal(t, 12.0, rc.Quantity)
				assert.Equal(t, 50.0, rc.UnitPrice)
				assert.Equal(t, 600.0, rc.Total)
			},
		},
		{
			name: "deleted product leaves an empty name and zero total",
			check: func(t *testing.T, b *Backend, shipmentID, productID string) {
				require.NoError(t, b.Products().Delete(productID))
				rc, err := b.Reports().Receipt(shipmentID)
				require.NoError(t, err)
				assert.Empty(t, rc.ProductName)
				assert.Zero(t, rc.Total)
			},
		},
		{
			name: "missing shipment is not found",
			check: func(t *testing.T, b *Backend, _, _ string) {
				_, err := b.Reports().Receipt("missing")
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBackend(t)
			fid, pid := seedRefs(t, b)
			sid, err := b.Shipments().Create(&types.Shipment{FarmerID: fid, ProductID: pid, Quantity: 12})
			require.NoError(t, err)
			tt.check(t, b, sid, pid)
		})
	}
}
