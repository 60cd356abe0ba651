package sqlite

import (
	"database/sql"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// CheckReferences verifies that every farmer, product and shipment ID in refs
// names an existing row.
func (b *Backend) CheckReferences(refs types.References) error {
	return b.read(func(db *sql.DB) error {
		groups := []struct {
			table string
			ids   []string
		}{
			{types.FarmersTable, refs.Farmers},
			{types.ProductsTable, refs.Products},
			{types.ShipmentsTable, refs.Shipments},
		}
		for _, g := range groups {
			for _, id := range g.ids {
				if id == "" {
					continue
				}
				if err := rowExists(db, g.table, id); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
