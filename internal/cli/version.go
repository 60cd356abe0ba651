package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/mesh-intelligence/shipmgr"

// Version is the release version, set at build time with
// -ldflags "-X github.com/mesh-intelligence/shipmgr/internal/cli.Version=...".
var Version = "0.1.0-dev"

func (a *app) newVersionCmd() *cobra.Command {
	return annotate(&cobra.Command{
		Use:   "version",
		Short: "Print the shipmgr version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "shipmgr v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}, setupNone)
}
