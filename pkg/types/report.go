package types

import "time"

// StockRow summarizes the movement of one product.
type StockRow struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	OnHand    float64 `json:"on_hand"`
	ShippedIn float64 `json:"shipped_in"`
	Sold      float64 `json:"sold"`
	Returned  float64 `json:"returned"`
}

// Net returns shipped-in minus sold minus returned.
func (r StockRow) Net() float64 {
	return r.ShippedIn - r.Sold - r.Returned
}

// FarmerSummary aggregates the activity of one farmer.
type FarmerSummary struct {
	FarmerID      string  `json:"farmer_id"`
	Name          string  `json:"name"`
	Shipments     int     `json:"shipments"`
	QuantityIn    float64 `json:"quantity_shipped"`
	TotalPaid     float64 `json:"total_paid"`
	TotalRefunded float64 `json:"total_refunded"`
}

// Receipt is a shipment joined with the names it refers to. Names of
// deleted farmers or products are empty.
type Receipt struct {
	ShipmentID  string    `json:"shipment_id"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	FarmerName  string    `json:"farmer_name"`
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Total       float64   `json:"total"`
}
