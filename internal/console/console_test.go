package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/shipmgr/internal/auth"
	"github.com/mesh-intelligence/shipmgr/internal/sqlite"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

const loginLines = "admin\npassword123\n"

func newStore(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

// run feeds input lines to a fresh console and returns everything it wrote.
func run(t *testing.T, store types.Store, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(store, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, c.Run())
	return out.String()
}

func TestConsole_Login(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		check func(t *testing.T, out string)
	}{
		{
			name:  "repeats on invalid credentials",
			input: []string{"admin", "wrong", "nobody", "password123", "admin", "password123", "quit"},
			check: func(t *testing.T, out string) {
				assert.Equal(t, 2, strings.Count(out, "Invalid username or password."))
				assert.Contains(t, out, "Welcome, admin.")
			},
		},
		{
			name: "end of input at the login screen ends the console",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "== shipmgr login ==")
				assert.NotContains(t, out, "Welcome")
			},
		},
		{
			name:  "logout returns to the login screen",
			input: []string{"admin", "password123", "logout"},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "Logged out.")
				assert.Equal(t, 2, strings.Count(out, "== shipmgr login =="))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, run(t, newStore(t), tt.input...))
		})
	}
}

func TestConsole_SessionState(t *testing.T) {
	store := newStore(t)
	var out bytes.Buffer
	c := New(store, strings.NewReader(loginLines+"quit\n"), &out)
	assert.Equal(t, auth.LoggedOut, c.Session().State())
	require.NoError(t, c.Run())
	assert.Equal(t, auth.LoggedOut, c.Session().State())
}

func TestConsole_Forms(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, b *sqlite.Backend) []string
		check func(t *testing.T, b *sqlite.Backend, out string)
	}{
		{
			name: "add farmer then show the table",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				return []string{"add farmer", "Farmer A", "0555", "", "farmers"}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, "Added farmer")
				list, err := b.Farmers().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Equal(t, "0555", list[0].Contact)
				assert.Regexp(t, `Farmer A\s+0555`, out)
			},
		},
		{
			name: "duplicate name reopens the form with the previous answers",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				_, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A"})
				require.NoError(t, err)
				return []string{"add farmer", "Farmer A", "0555", "", "Farmer B", "", ""}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, "Error:")
				assert.Contains(t, out, "Name [Farmer A]: ")
				assert.Contains(t, out, "Contact [0555]: ")
				list, err := b.Farmers().List(types.ListOptions{OrderBy: "name"})
				require.NoError(t, err)
				require.Len(t, list, 2)
				assert.Equal(t, "Farmer B", list[1].Name)
				assert.Equal(t, "0555", list[1].Contact)
			},
		},
		{
			name: "invalid number asks again",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				return []string{"add product", "Tomato", "abc", "-1", "50", "10"}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, "Unit price: must be a number")
				assert.Contains(t, out, "Unit price: must not be negative")
				list, err := b.Products().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Equal(t, 50.0, list[0].UnitPrice)
			},
		},
		{
			name: "unknown farmer reopens the shipment form",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				_, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A"})
				require.NoError(t, err)
				_, err = b.Products().Create(&types.Product{Name: "Tomato", UnitPrice: 50})
				require.NoError(t, err)
				return []string{
					"add shipment", "Nobody", "tomato", "100", "2025-03-14", "", "",
					"farmer a", "", "", "", "delivered", "first load",
				}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, `farmer "Nobody"`)
				list, err := b.Shipments().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Equal(t, 100.0, list[0].Quantity)
				assert.Equal(t, types.ShipmentDelivered, list[0].Status)
				assert.Equal(t, "2025-03-14", list[0].Date.Format(types.DateLayout))
				assert.Equal(t, "first load", list[0].Notes)
			},
		},
		{
			name: "edit product keeps untouched fields",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				id, err := b.Products().Create(&types.Product{Name: "Tomato", UnitPrice: 50, Quantity: 10})
				require.NoError(t, err)
				return []string{"edit product " + id, "", "65", ""}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, "Updated product")
				list, err := b.Products().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Equal(t, "Tomato", list[0].Name)
				assert.Equal(t, 65.0, list[0].UnitPrice)
				assert.Equal(t, 10.0, list[0].Quantity)
			},
		},
		{
			name: "edit farmer clears an optional field",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				id, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A", Contact: "0555", Address: "Blida"})
				require.NoError(t, err)
				return []string{"edit farmer " + id, "", "-", ""}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, "Updated farmer")
				list, err := b.Farmers().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Empty(t, list[0].Contact)
				assert.Equal(t, "Blida", list[0].Address)
			},
		},
		{
			name: "edit shipment clears the notes",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				fid, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A"})
				require.NoError(t, err)
				pid, err := b.Products().Create(&types.Product{Name: "Tomato"})
				require.NoError(t, err)
				sid, err := b.Shipments().Create(&types.Shipment{FarmerID: fid, ProductID: pid, Quantity: 3, Notes: "fragile"})
				require.NoError(t, err)
				return []string{"edit shipment " + sid, "", "", "", "", "", "-"}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				list, err := b.Shipments().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Empty(t, list[0].Notes)
				assert.Equal(t, 3.0, list[0].Quantity)
			},
		},
		{
			name: "clear key on a required field is taken as input",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				return []string{"add farmer", "-", "", ""}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				list, err := b.Farmers().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, list, 1)
				assert.Equal(t, "-", list[0].Name)
			},
		},
		{
			name: "sale defaults to the product price",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				_, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A"})
				require.NoError(t, err)
				_, err = b.Products().Create(&types.Product{Name: "Tomato", UnitPrice: 65})
				require.NoError(t, err)
				return []string{"add sale", "Farmer A", "Tomato", "", "50", ""}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, "Total paid: 3250.00 DA")
				sales, err := b.Sales().List(types.ListOptions{})
				require.NoError(t, err)
				require.Len(t, sales, 1)
				assert.Equal(t, 3250.0, sales[0].TotalPaid)
			},
		},
		{
			name: "cancel leaves nothing behind",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				return []string{"add farmer", "Farmer A", "."}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, "Cancelled.")
				list, err := b.Farmers().List(types.ListOptions{})
				require.NoError(t, err)
				assert.Empty(t, list)
			},
		},
		{
			name: "deleted farmer shows as deleted in the shipment table",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				fid, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A"})
				require.NoError(t, err)
				pid, err := b.Products().Create(&types.Product{Name: "Tomato"})
				require.NoError(t, err)
				_, err = b.Shipments().Create(&types.Shipment{FarmerID: fid, ProductID: pid, Quantity: 3})
				require.NoError(t, err)
				return []string{"delete farmer " + fid, "y", "shipments"}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, "Deleted farmer")
				assert.Contains(t, out, "(deleted)")
				list, err := b.Shipments().List(types.ListOptions{})
				require.NoError(t, err)
				assert.Len(t, list, 1)
			},
		},
		{
			name: "delete missing record reports not found",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				return []string{"delete product missing", "y"}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, "Error:")
				assert.Contains(t, out, types.ErrNotFound.Error())
			},
		},
		{
			name: "unknown command and receipt",
			setup: func(t *testing.T, b *sqlite.Backend) []string {
				fid, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A"})
				require.NoError(t, err)
				pid, err := b.Products().Create(&types.Product{Name: "Tomato", UnitPrice: 50})
				require.NoError(t, err)
				sid, err := b.Shipments().Create(&types.Shipment{FarmerID: fid, ProductID: pid, Quantity: 100})
				require.NoError(t, err)
				return []string{"frobnicate", "receipt " + sid, "stock", "summary"}
			},
			check: func(t *testing.T, b *sqlite.Backend, out string) {
				assert.Contains(t, out, `unknown command "frobnicate"`)
				assert.Contains(t, out, "Total:    5000.00 DA")
				assert.Contains(t, out, "SHIPPED IN")
				assert.Contains(t, out, "REFUNDED")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newStore(t)
			lines := append([]string{"admin", "password123"}, tt.setup(t, b)...)
			out := run(t, b, append(lines, "quit")...)
			tt.check(t, b, out)
		})
	}
}
