package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func TestSeedSampleData(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "seeds three products and three farmers",
			check: func(t *testing.T, b *Backend) {
				products, err := b.Products().List(types.ListOptions{OrderBy: "name"})
				require.NoError(t, err)
				require.Len(t, products, 3)
				assert.Equal(t, "Onion", products[0].Name)
				assert.Equal(t, "Potato", products[1].Name)
				assert.Equal(t, "Tomato", products[2].Name)

				farmers, err := b.Farmers().List(types.ListOptions{OrderBy: "name"})
				require.NoError(t, err)
				assert.Equal(t, []string{"Farmer A", "Farmer B", "Farmer C"}, farmerNames(farmers))
			},
		},
		{
			name: "seeds one shipment and one sale out of it",
			check: func(t *testing.T, b *Backend) {
				shipments, err := b.Shipments().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, shipments, 1)
				assert.Equal(t, 100.0, shipments[0].Quantity)
				assert.Equal(t, "Sample shipment", shipments[0].Notes)

				sales, err := b.Sales().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, sales, 1)
				assert.Equal(t, shipments[0].ID, sales[0].ShipmentID)
				assert.Equal(t, 50.0, sales[0].Quantity)
				assert.Equal(t, 65.0, sales[0].UnitPrice)
				assert.Equal(t, 3250.0, sales[0].TotalPaid)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBackendWith(t, types.Config{DataDir: t.TempDir(), SeedSampleData: true})
			tt.check(t, b)
		})
	}
}

func TestSeedSampleData_Idempotent(t *testing.T) {
	config := types.Config{DataDir: t.TempDir(), SeedSampleData: true}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	require.NoError(t, b.Detach())

	b2 := newTestBackendWith(t, config)
	products, err := b2.Products().List(types.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
	sales, err := b2.Sales().List(types.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestSeedSampleData_SkipsNonEmptyProducts(t *testing.T) {
	dataDir := t.TempDir()

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{DataDir: dataDir}))
	_, err := b.Products().Create(&types.Product{Name: "Garlic"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := newTestBackendWith(t, types.Config{DataDir: dataDir, SeedSampleData: true})
	products, err := b2.Products().List(types.ListOptions{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Garlic", products[0].Name)
	farmers, err := b2.Farmers().List(types.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, farmers)
}

func TestSeedSampleData_SkipsNonEmptyFarmers(t *testing.T) {
	dataDir := t.TempDir()

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{DataDir: dataDir}))
	_, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// Attaching with sample data enabled must keep working on every run.
	for range 2 {
		b2 := NewBackend()
		require.NoError(t, b2.Attach(types.Config{DataDir: dataDir, SeedSampleData: true}))
		farmers, err := b2.Farmers().List(types.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Farmer A"}, farmerNames(farmers))
		products, err := b2.Products().List(types.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, products)
		require.NoError(t, b2.Detach())
	}
}
