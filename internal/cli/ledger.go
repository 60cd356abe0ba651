package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shipmgr/internal/console"
	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// ledgerCmd assembles the record|list|delete group shared by the ledgers.
func ledgerCmd(use, short string, record, list, del *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Aliases: []string{use + "s"},
		Short:   short,
	}
	cmd.AddCommand(record, list, del)
	return cmd
}

func (a *app) newSaleCmd() *cobra.Command {
	return ledgerCmd("sale", "Record product sold to farmers",
		a.newSaleRecordCmd(),
		a.newSaleListCmd(),
		newDeleteCmd("sale", func(id string) error { return a.store.Sales().Delete(id) }),
	)
}

func (a *app) newSaleRecordCmd() *cobra.Command {
	var farmer, product, shipment string
	var quantity, price float64
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a sale",
		Long: "Record a sale of product to a farmer. Without --price the product's\n" +
			"current unit price is used.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "farmer", "product", "quantity"); err != nil {
				return err
			}
			fid, err := console.ResolveFarmer(a.store, farmer)
			if err != nil {
				return err
			}
			p, err := console.ResolveProduct(a.store, product)
			if err != nil {
				return err
			}
			s := &types.Sale{
				FarmerID:   fid,
				ProductID:  p.ID,
				ShipmentID: shipment,
				Quantity:   quantity,
				UnitPrice:  p.UnitPrice,
			}
			if cmd.Flags().Changed("price") {
				s.UnitPrice = price
			}
			if err := a.store.CheckReferences(s.References()); err != nil {
				return err
			}
			id, err := a.store.Sales().Create(s)
			if err != nil {
				return err
			}
			return a.output(cmd, s, func(r *report.Renderer) error {
				printCreated(cmd, "sale", id)
				r.Line("Total paid: %s", r.Money(s.TotalPaid))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&farmer, "farmer", "", "farmer ID or name")
	cmd.Flags().StringVar(&product, "product", "", "product ID or name")
	cmd.Flags().StringVar(&shipment, "shipment", "", "shipment ID the product came from")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "quantity sold")
	cmd.Flags().Float64Var(&price, "price", 0, "unit price (default: product price)")
	return cmd
}

func (a *app) newSaleListCmd() *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.store.Sales().List(lf.options())
			if err != nil {
				return err
			}
			names, err := a.names()
			if err != nil {
				return err
			}
			return a.output(cmd, list, func(r *report.Renderer) error {
				return r.Sales(list, names)
			})
		},
	}
	lf.register(cmd, "quantity", "created_at")
	return cmd
}

func (a *app) newTransferCmd() *cobra.Command {
	return ledgerCmd("transfer", "Record product moved between farmers",
		a.newTransferRecordCmd(),
		a.newTransferListCmd(),
		newDeleteCmd("transfer", func(id string) error { return a.store.Transfers().Delete(id) }),
	)
}

func (a *app) newTransferRecordCmd() *cobra.Command {
	var from, to, product, note string
	var quantity float64
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a transfer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "from", "to", "product", "quantity"); err != nil {
				return err
			}
			fromID, err := console.ResolveFarmer(a.store, from)
			if err != nil {
				return err
			}
			toID, err := console.ResolveFarmer(a.store, to)
			if err != nil {
				return err
			}
			p, err := console.ResolveProduct(a.store, product)
			if err != nil {
				return err
			}
			tr := &types.Transfer{
				FromFarmerID: fromID,
				ToFarmerID:   toID,
				ProductID:    p.ID,
				Quantity:     quantity,
				Note:         note,
			}
			if err := a.store.CheckReferences(tr.References()); err != nil {
				return err
			}
			id, err := a.store.Transfers().Create(tr)
			if err != nil {
				return err
			}
			return a.output(cmd, tr, func(r *report.Renderer) error {
				printCreated(cmd, "transfer", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "sending farmer ID or name")
	cmd.Flags().StringVar(&to, "to", "", "receiving farmer ID or name")
	cmd.Flags().StringVar(&product, "product", "", "product ID or name")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "quantity moved")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	return cmd
}

func (a *app) newTransferListCmd() *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.store.Transfers().List(lf.options())
			if err != nil {
				return err
			}
			names, err := a.names()
			if err != nil {
				return err
			}
			return a.output(cmd, list, func(r *report.Renderer) error {
				return r.Transfers(list, names)
			})
		},
	}
	lf.register(cmd, "quantity", "created_at")
	return cmd
}

func (a *app) newReturnCmd() *cobra.Command {
	return ledgerCmd("return", "Record product returned by farmers",
		a.newReturnRecordCmd(),
		a.newReturnListCmd(),
		newDeleteCmd("return", func(id string) error { return a.store.Returns().Delete(id) }),
	)
}

func (a *app) newReturnRecordCmd() *cobra.Command {
	var farmer, product, note string
	var quantity, refund float64
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a return",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "farmer", "product", "quantity"); err != nil {
				return err
			}
			fid, err := console.ResolveFarmer(a.store, farmer)
			if err != nil {
				return err
			}
			p, err := console.ResolveProduct(a.store, product)
			if err != nil {
				return err
			}
			ret := &types.Return{
				FarmerID:     fid,
				ProductID:    p.ID,
				Quantity:     quantity,
				RefundAmount: refund,
				Note:         note,
			}
			if err := a.store.CheckReferences(ret.References()); err != nil {
				return err
			}
			id, err := a.store.Returns().Create(ret)
			if err != nil {
				return err
			}
			return a.output(cmd, ret, func(r *report.Renderer) error {
				printCreated(cmd, "return", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&farmer, "farmer", "", "farmer ID or name")
	cmd.Flags().StringVar(&product, "product", "", "product ID or name")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "quantity returned")
	cmd.Flags().Float64Var(&refund, "refund", 0, "amount refunded")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	return cmd
}

func (a *app) newReturnListCmd() *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List returns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.store.Returns().List(lf.options())
			if err != nil {
				return err
			}
			names, err := a.names()
			if err != nil {
				return err
			}
			return a.output(cmd, list, func(r *report.Renderer) error {
				return r.Returns(list, names)
			})
		},
	}
	lf.register(cmd, "quantity", "created_at")
	return cmd
}
