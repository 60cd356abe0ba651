package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func (a *app) newFarmerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "farmer",
		Aliases: []string{"farmers"},
		Short:   "Manage farmers",
	}
	cmd.AddCommand(
		a.newFarmerAddCmd(),
		a.newFarmerListCmd(),
		a.newFarmerShowCmd(),
		a.newFarmerUpdateCmd(),
		newDeleteCmd("farmer", func(id string) error { return a.store.Farmers().Delete(id) }),
	)
	return cmd
}

func (a *app) newFarmerAddCmd() *cobra.Command {
	var f types.Farmer
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a farmer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "name"); err != nil {
				return err
			}
			id, err := a.store.Farmers().Create(&f)
			if err != nil {
				return err
			}
			return a.output(cmd, &f, func(r *report.Renderer) error {
				printCreated(cmd, "farmer", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.Name, "name", "", "farmer name (unique)")
	cmd.Flags().StringVar(&f.Contact, "contact", "", "phone or e-mail")
	cmd.Flags().StringVar(&f.Address, "address", "", "postal address")
	return cmd
}

func (a *app) newFarmerListCmd() *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List farmers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.store.Farmers().List(lf.options())
			if err != nil {
				return err
			}
			return a.output(cmd, list, func(r *report.Renderer) error {
				return r.Farmers(list)
			})
		},
	}
	lf.register(cmd, "name", "created_at")
	return cmd
}

func (a *app) newFarmerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one farmer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.store.Farmers().Get(args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, f, func(r *report.Renderer) error {
				r.Line("ID:      %s", f.ID)
				r.Line("Name:    %s", f.Name)
				r.Line("Contact: %s", f.Contact)
				r.Line("Address: %s", f.Address)
				r.Line("Created: %s", f.CreatedAt.Format(types.DateLayout))
				return nil
			})
		},
	}
}

func (a *app) newFarmerUpdateCmd() *cobra.Command {
	var name, contact, address string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a farmer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := types.FarmerPatch{
				Name:    changedString(cmd, "name", name),
				Contact: changedString(cmd, "contact", contact),
				Address: changedString(cmd, "address", address),
			}
			if err := a.store.Farmers().Update(args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated farmer %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&contact, "contact", "", "new contact")
	cmd.Flags().StringVar(&address, "address", "", "new address")
	return cmd
}
