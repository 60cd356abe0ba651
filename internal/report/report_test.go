package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func TestMoneyAndQuantity(t *testing.T) {
	r := New(&bytes.Buffer{}, "")
	assert.Equal(t, "3250.00 DA", r.Money(3250))
	assert.Equal(t, "0.10 EUR", New(&bytes.Buffer{}, "EUR").Money(0.1))
	assert.Equal(t, "12.5", Quantity(12.5))
	assert.Equal(t, "100", Quantity(100))
}

func TestTable(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]string
		check func(t *testing.T, out string)
	}{
		{
			name: "aligns columns",
			rows: [][]string{{"1", "Farmer A"}, {"22", "B"}},
			check: func(t *testing.T, out string) {
				lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
				require.Len(t, lines, 3)
				assert.Equal(t, strings.Index(lines[0], "NAME"), strings.Index(lines[1], "Farmer A"))
			},
		},
		{
			name: "empty table says none",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "(none)")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, New(&buf, "").Table([]string{"ID", "NAME"}, tt.rows))
			tt.check(t, buf.String())
		})
	}
}

func TestShipmentsShowDeletedNames(t *testing.T) {
	farmers := []*types.Farmer{{ID: "f1", Name: "Farmer A"}}
	products := []*types.Product{{ID: "p1", Name: "Tomato"}}
	shipments := []*types.Shipment{
		{ID: "s1", FarmerID: "f1", ProductID: "p1", Quantity: 10, Status: types.ShipmentPending},
		{ID: "s2", FarmerID: "gone", ProductID: "p1", Quantity: 5, Status: types.ShipmentDelivered},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, "").Shipments(shipments, NewNames(farmers, products)))

	out := buf.String()
	assert.Contains(t, out, "Farmer A")
	assert.Contains(t, out, Deleted)
	assert.Equal(t, 2, strings.Count(out, "Tomato"))
}

func TestStock(t *testing.T) {
	var buf bytes.Buffer
	rows := []types.StockRow{{Name: "Tomato", ShippedIn: 100, Sold: 50}}
	require.NoError(t, New(&buf, "").Stock(rows))
	assert.Contains(t, buf.String(), "NET")
	assert.Regexp(t, `Tomato\s+0\s+100\s+50\s+0\s+50`, buf.String())
}

func TestReceipt(t *testing.T) {
	tests := []struct {
		name    string
		receipt types.Receipt
		want    []string
		notWant []string
	}{
		{
			name: "full receipt",
			receipt: types.Receipt{
				ShipmentID: "s1", Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Status: types.ShipmentDelivered,
				FarmerName: "Farmer A", ProductName: "Tomato", Quantity: 100, UnitPrice: 50, Total: 5000, Notes: "fragile",
			},
			want: []string{"2025-03-14", "Farmer A", "Tomato", "50.00 DA", "5000.00 DA", "Notes:    fragile"},
		},
		{
			name:    "deleted farmer and no notes",
			receipt: types.Receipt{ShipmentID: "s2", ProductName: "Onion", Quantity: 1},
			want:    []string{"Farmer:   " + Deleted, "Onion"},
			notWant: []string{"Notes:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, New(&buf, "").Receipt(&tt.receipt))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, buf.String(), w)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, "").JSON(map[string]int{"farmers": 3}))
	assert.JSONEq(t, `{"farmers":3}`, buf.String())
}
