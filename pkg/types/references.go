package types

// References lists record IDs a write is about to point at. The schema does
// not enforce them, so callers check them with Store.CheckReferences before
// recording shipments and ledger rows.
type References struct {
	Farmers   []string
	Products  []string
	Shipments []string
}

// References returns the references held by s.
func (s *Shipment) References() References {
	return References{Farmers: []string{s.FarmerID}, Products: []string{s.ProductID}}
}

// References returns the references held by s. An empty ShipmentID is
// skipped.
func (s *Sale) References() References {
	refs := References{Farmers: []string{s.FarmerID}, Products: []string{s.ProductID}}
	if s.ShipmentID != "" {
		refs.Shipments = []string{s.ShipmentID}
	}
	return refs
}

// References returns the references held by tr.
func (tr *Transfer) References() References {
	return References{Farmers: []string{tr.FromFarmerID, tr.ToFarmerID}, Products: []string{tr.ProductID}}
}

// References returns the references held by r.
func (r *Return) References() References {
	return References{Farmers: []string{r.FarmerID}, Products: []string{r.ProductID}}
}
