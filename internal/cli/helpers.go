package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// listFlags are the ordering flags shared by list commands.
type listFlags struct {
	sort string
	desc bool
}

func (l *listFlags) register(cmd *cobra.Command, keys ...string) {
	cmd.Flags().StringVar(&l.sort, "sort", "", "order by: "+strings.Join(keys, ", "))
	cmd.Flags().BoolVar(&l.desc, "desc", false, "reverse the order")
}

func (l listFlags) options() types.ListOptions {
	return types.ListOptions{OrderBy: l.sort, Desc: l.desc}
}

// names indexes the current farmers and products for display.
func (a *app) names() (report.Names, error) {
	farmers, err := a.store.Farmers().List(types.ListOptions{})
	if err != nil {
		return report.Names{}, err
	}
	products, err := a.store.Products().List(types.ListOptions{})
	if err != nil {
		return report.Names{}, err
	}
	return report.NewNames(farmers, products), nil
}

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// checkStatus validates a --status flag value.
func checkStatus(s string) error {
	if !types.ValidShipmentStatus(s) {
		return fmt.Errorf("invalid status %q (valid: %s)", s, strings.Join(types.ShipmentStatuses, ", "))
	}
	return nil
}

// requireFlags fails if any named flag was not set.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, n := range names {
		if !cmd.Flags().Changed(n) {
			missing = append(missing, "--"+n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %s required", cmd.Name(), strings.Join(missing, ", "))
	}
	return nil
}

// changedString returns a pointer to v if the flag was set.
func changedString(cmd *cobra.Command, name, v string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// changedFloat returns a pointer to v if the flag was set.
func changedFloat(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func printCreated(cmd *cobra.Command, entity, id string) {
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", entity, id)
}

func newDeleteCmd(entity string, del func(id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + entity,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := del(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", entity, args[0])
			return nil
		},
	}
}
