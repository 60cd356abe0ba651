package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func (a *app) newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Manage products",
	}
	cmd.AddCommand(
		a.newProductAddCmd(),
		a.newProductListCmd(),
		a.newProductShowCmd(),
		a.newProductUpdateCmd(),
		newDeleteCmd("product", func(id string) error { return a.store.Products().Delete(id) }),
	)
	return cmd
}

func (a *app) newProductAddCmd() *cobra.Command {
	var p types.Product
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "name"); err != nil {
				return err
			}
			id, err := a.store.Products().Create(&p)
			if err != nil {
				return err
			}
			return a.output(cmd, &p, func(r *report.Renderer) error {
				printCreated(cmd, "product", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "product name (unique)")
	cmd.Flags().Float64Var(&p.UnitPrice, "price", 0, "unit price")
	cmd.Flags().Float64Var(&p.Quantity, "quantity", 0, "quantity on hand")
	return cmd
}

func (a *app) newProductListCmd() *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.store.Products().List(lf.options())
			if err != nil {
				return err
			}
			return a.output(cmd, list, func(r *report.Renderer) error {
				return r.Products(list)
			})
		},
	}
	lf.register(cmd, "name", "unit_price", "quantity", "created_at")
	return cmd
}

func (a *app) newProductShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.store.Products().Get(args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, p, func(r *report.Renderer) error {
				r.Line("ID:         %s", p.ID)
				r.Line("Name:       %s", p.Name)
				r.Line("Unit price: %s", r.Money(p.UnitPrice))
				r.Line("Quantity:   %s", report.Quantity(p.Quantity))
				return nil
			})
		},
	}
}

func (a *app) newProductUpdateCmd() *cobra.Command {
	var name string
	var price, quantity float64
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := types.ProductPatch{
				Name:      changedString(cmd, "name", name),
				UnitPrice: changedFloat(cmd, "price", price),
				Quantity:  changedFloat(cmd, "quantity", quantity),
			}
			if err := a.store.Products().Update(args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated product %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().Float64Var(&price, "price", 0, "new unit price")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "new quantity on hand")
	return cmd
}
