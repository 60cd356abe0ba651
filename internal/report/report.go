// Package report renders shipmgr records as aligned text tables, receipts
// and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// DefaultCurrency is appended to money amounts when none is configured.
const DefaultCurrency = "DA"

// Deleted is shown in place of the name of a farmer or product that no
// longer exists.
const Deleted = "(deleted)"

// Renderer writes reports to w.
type Renderer struct {
	w        io.Writer
	currency string
}

// New returns a Renderer writing to w. An empty currency uses
// DefaultCurrency.
func New(w io.Writer, currency string) *Renderer {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Renderer{w: w, currency: currency}
}

// Money formats an amount with two decimals and the currency suffix.
func (r *Renderer) Money(v float64) string {
	return strconv.FormatFloat(types.RoundCents(v), 'f', 2, 64) + " " + r.currency
}

// Quantity formats a quantity without trailing zeros.
func Quantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Line writes a formatted line.
func (r *Renderer) Line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Table writes headers and rows as tab-aligned columns. An empty row set
// prints a single "(none)" line under the headers.
func (r *Renderer) Table(headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	if len(rows) == 0 {
		fmt.Fprintln(tw, "(none)")
	}
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Names resolves farmer and product IDs to display names.
type Names struct {
	farmers  map[string]string
	products map[string]string
}

// NewNames indexes the given farmers and products.
func NewNames(farmers []*types.Farmer, products []*types.Product) Names {
	n := Names{
		farmers:  make(map[string]string, len(farmers)),
		products: make(map[string]string, len(products)),
	}
	for _, f := range farmers {
		n.farmers[f.ID] = f.Name
	}
	for _, p := range products {
		n.products[p.ID] = p.Name
	}
	return n
}

// Farmer returns the name of the farmer or Deleted.
func (n Names) Farmer(id string) string {
	return lookup(n.farmers, id)
}

// Product returns the name of the product or Deleted.
func (n Names) Product(id string) string {
	return lookup(n.products, id)
}

func lookup(m map[string]string, id string) string {
	if name, ok := m[id]; ok {
		return name
	}
	return Deleted
}

// Farmers renders the farmer table.
func (r *Renderer) Farmers(list []*types.Farmer) error {
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		rows = append(rows, []string{f.ID, f.Name, f.Contact, f.Address})
	}
	return r.Table([]string{"ID", "NAME", "CONTACT", "ADDRESS"}, rows)
}

// Products renders the product table.
func (r *Renderer) Products(list []*types.Product) error {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{p.ID, p.Name, r.Money(p.UnitPrice), Quantity(p.Quantity)})
	}
	return r.Table([]string{"ID", "NAME", "UNIT PRICE", "QUANTITY"}, rows)
}

// Shipments renders the shipment table with names resolved through n.
func (r *Renderer) Shipments(list []*types.Shipment, n Names) error {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.ID, s.Date.Format(types.DateLayout), n.Farmer(s.FarmerID), n.Product(s.ProductID),
			Quantity(s.Quantity), s.Status, s.Notes,
		})
	}
	return r.Table([]string{"ID", "DATE", "FARMER", "PRODUCT", "QUANTITY", "STATUS", "NOTES"}, rows)
}

// Users renders the user table.
func (r *Renderer) Users(list []*types.User) error {
	rows := make([][]string, 0, len(list))
	for _, u := range list {
		rows = append(rows, []string{u.ID, u.Username, u.Role, u.CreatedAt.Format(types.DateLayout)})
	}
	return r.Table([]string{"ID", "USERNAME", "ROLE", "CREATED"}, rows)
}

// Sales renders the sales ledger.
func (r *Renderer) Sales(list []*types.Sale, n Names) error {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.ID, s.CreatedAt.Format(types.DateLayout), n.Farmer(s.FarmerID), n.Product(s.ProductID),
			Quantity(s.Quantity), r.Money(s.UnitPrice), r.Money(s.TotalPaid),
		})
	}
	return r.Table([]string{"ID", "DATE", "FARMER", "PRODUCT", "QUANTITY", "UNIT PRICE", "TOTAL PAID"}, rows)
}

// Transfers renders the transfer ledger.
func (r *Renderer) Transfers(list []*types.Transfer, n Names) error {
	rows := make([][]string, 0, len(list))
	for _, tr := range list {
		rows = append(rows, []string{
			tr.ID, tr.CreatedAt.Format(types.DateLayout), n.Farmer(tr.FromFarmerID), n.Farmer(tr.ToFarmerID),
			n.Product(tr.ProductID), Quantity(tr.Quantity), tr.Note,
		})
	}
	return r.Table([]string{"ID", "DATE", "FROM", "TO", "PRODUCT", "QUANTITY", "NOTE"}, rows)
}

// Returns renders the returns ledger.
func (r *Renderer) Returns(list []*types.Return, n Names) error {
	rows := make([][]string, 0, len(list))
	for _, rt := range list {
		rows = append(rows, []string{
			rt.ID, rt.CreatedAt.Format(types.DateLayout), n.Farmer(rt.FarmerID), n.Product(rt.ProductID),
			Quantity(rt.Quantity), r.Money(rt.RefundAmount), rt.Note,
		})
	}
	return r.Table([]string{"ID", "DATE", "FARMER", "PRODUCT", "QUANTITY", "REFUND", "NOTE"}, rows)
}

// Stock renders the stock report.
func (r *Renderer) Stock(list []types.StockRow) error {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.Name, Quantity(s.OnHand), Quantity(s.ShippedIn), Quantity(s.Sold), Quantity(s.Returned), Quantity(s.Net()),
		})
	}
	return r.Table([]string{"PRODUCT", "ON HAND", "SHIPPED IN", "SOLD", "RETURNED", "NET"}, rows)
}

// Summaries renders per-farmer totals.
func (r *Renderer) Summaries(list []types.FarmerSummary) error {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.Name, strconv.Itoa(s.Shipments), Quantity(s.QuantityIn), r.Money(s.TotalPaid), r.Money(s.TotalRefunded),
		})
	}
	return r.Table([]string{"FARMER", "SHIPMENTS", "QUANTITY", "PAID", "REFUNDED"}, rows)
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"name": func(s string) string {
		if s == "" {
			return Deleted
		}
		return s
	},
	"qty": Quantity,
}).Parse(`Shipment receipt
  Shipment: {{.R.ShipmentID}}
  Date:     {{.R.Date.Format "2006-01-02"}}
  Status:   {{.R.Status}}
  Farmer:   {{name .R.FarmerName}}
  Product:  {{name .R.ProductName}}
  Quantity: {{qty .R.Quantity}}
  Price:    {{.Price}}
  Total:    {{.Total}}
{{- if .R.Notes}}
  Notes:    {{.R.Notes}}
{{- end}}
`))

// Receipt renders a printable shipment receipt.
func (r *Renderer) Receipt(rc *types.Receipt) error {
	return receiptTmpl.Execute(r.w, struct {
		R     *types.Receipt
		Price string
		Total string
	}{rc, r.Money(rc.UnitPrice), r.Money(rc.Total)})
}
