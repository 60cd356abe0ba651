package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	var sampleData bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration, data directory and database",
		Long: "Create the configuration and data directories, write a default config.yaml,\n" +
			"create the database tables and seed the admin account. Safe to run again.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.attach(sampleData); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "shipmgr initialized at %s\n", a.store.Path())
			fmt.Fprintf(out, "config: %s\n", a.dirs.ConfigFile())
			return nil
		},
	}
	cmd.Flags().BoolVar(&sampleData, "sample-data", false, "load demo products, farmers, a shipment and a sale into an empty database")
	return annotate(cmd, setupLocal)
}
