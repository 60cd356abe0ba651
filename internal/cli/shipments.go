package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shipmgr/internal/console"
	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func (a *app) newShipmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shipment",
		Aliases: []string{"shipments"},
		Short:   "Manage shipments",
	}
	cmd.AddCommand(
		a.newShipmentAddCmd(),
		a.newShipmentListCmd(),
		a.newShipmentShowCmd(),
		a.newShipmentUpdateCmd(),
		newDeleteCmd("shipment", func(id string) error { return a.store.Shipments().Delete(id) }),
		a.newReceiptCmd(),
	)
	return cmd
}

// shipmentFlags are the flag values shared by add and update.
type shipmentFlags struct {
	farmer   string
	product  string
	quantity float64
	date     string
	status   string
	notes    string
}

func (sf *shipmentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sf.farmer, "farmer", "", "farmer ID or name")
	cmd.Flags().StringVar(&sf.product, "product", "", "product ID or name")
	cmd.Flags().Float64Var(&sf.quantity, "quantity", 0, "quantity shipped")
	cmd.Flags().StringVar(&sf.date, "date", "", "shipment date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&sf.status, "status", "", "pending, in_transit, delivered or cancelled")
	cmd.Flags().StringVar(&sf.notes, "notes", "", "free-form notes")
}

func (a *app) newShipmentAddCmd() *cobra.Command {
	var sf shipmentFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a shipment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "farmer", "product", "quantity"); err != nil {
				return err
			}
			s := &types.Shipment{Quantity: sf.quantity, Status: sf.status, Notes: sf.notes}
			if sf.date != "" {
				d, err := parseDate(sf.date)
				if err != nil {
					return err
				}
				s.Date = d
			}
			if sf.status != "" {
				if err := checkStatus(sf.status); err != nil {
					return err
				}
			}
			fid, err := console.ResolveFarmer(a.store, sf.farmer)
			if err != nil {
				return err
			}
			p, err := console.ResolveProduct(a.store, sf.product)
			if err != nil {
				return err
			}
			s.FarmerID, s.ProductID = fid, p.ID
			if err := a.store.CheckReferences(s.References()); err != nil {
				return err
			}
			id, err := a.store.Shipments().Create(s)
			if err != nil {
				return err
			}
			return a.output(cmd, s, func(r *report.Renderer) error {
				printCreated(cmd, "shipment", id)
				return nil
			})
		},
	}
	sf.register(cmd)
	return cmd
}

func (a *app) newShipmentListCmd() *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shipments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.store.Shipments().List(lf.options())
			if err != nil {
				return err
			}
			names, err := a.names()
			if err != nil {
				return err
			}
			return a.output(cmd, list, func(r *report.Renderer) error {
				return r.Shipments(list, names)
			})
		},
	}
	lf.register(cmd, "date", "status", "quantity", "created_at")
	return cmd
}

func (a *app) newShipmentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store.Shipments().Get(args[0])
			if err != nil {
				return err
			}
			names, err := a.names()
			if err != nil {
				return err
			}
			return a.output(cmd, s, func(r *report.Renderer) error {
				r.Line("ID:       %s", s.ID)
				r.Line("Date:     %s", s.Date.Format(types.DateLayout))
				r.Line("Farmer:   %s", names.Farmer(s.FarmerID))
				r.Line("Product:  %s", names.Product(s.ProductID))
				r.Line("Quantity: %s", report.Quantity(s.Quantity))
				r.Line("Status:   %s", s.Status)
				r.Line("Notes:    %s", s.Notes)
				return nil
			})
		},
	}
}

func (a *app) newShipmentUpdateCmd() *cobra.Command {
	var sf shipmentFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.ShipmentPatch
			var refs types.References
			if cmd.Flags().Changed("farmer") {
				fid, err := console.ResolveFarmer(a.store, sf.farmer)
				if err != nil {
					return err
				}
				patch.FarmerID = &fid
				refs.Farmers = []string{fid}
			}
			if cmd.Flags().Changed("product") {
				p, err := console.ResolveProduct(a.store, sf.product)
				if err != nil {
					return err
				}
				patch.ProductID = &p.ID
				refs.Products = []string{p.ID}
			}
			if cmd.Flags().Changed("date") {
				d, err := parseDate(sf.date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if cmd.Flags().Changed("status") {
				if err := checkStatus(sf.status); err != nil {
					return err
				}
				patch.Status = &sf.status
			}
			patch.Quantity = changedFloat(cmd, "quantity", sf.quantity)
			patch.Notes = changedString(cmd, "notes", sf.notes)

			if err := a.store.CheckReferences(refs); err != nil {
				return err
			}
			if err := a.store.Shipments().Update(args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated shipment %s\n", args[0])
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func (a *app) newReceiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <id>",
		Short: "Print a shipment receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.store.Reports().Receipt(args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, rc, func(r *report.Renderer) error {
				return r.Receipt(rc)
			})
		},
	}
}
