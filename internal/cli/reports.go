package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shipmgr/internal/report"
)

func (a *app) newStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Show stock movement per product",
		Long: "Show, per product, the quantity on hand and the quantities shipped in,\n" +
			"sold and returned. Cancelled shipments are not counted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.store.Reports().Stock()
			if err != nil {
				return err
			}
			return a.output(cmd, rows, func(r *report.Renderer) error {
				return r.Stock(rows)
			})
		},
	}
}

func (a *app) newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show activity totals per farmer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.store.Reports().FarmerSummaries()
			if err != nil {
				return err
			}
			return a.output(cmd, rows, func(r *report.Renderer) error {
				return r.Summaries(rows)
			})
		},
	}
}
