package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func (a *app) newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the database as JSONL files (admin only)",
	}
	cmd.AddCommand(
		a.newBackupRunCmd("export <dir>", "Write one <table>.jsonl file per table", "Exported", a.exportBackup),
		a.newBackupRunCmd("import <dir>", "Load <table>.jsonl files, skipping records already present", "Imported", a.importBackup),
	)
	return cmd
}

func (a *app) exportBackup(dir string) (map[string]int, error) { return a.store.Export(dir) }
func (a *app) importBackup(dir string) (map[string]int, error) { return a.store.Import(dir) }

func (a *app) newBackupRunCmd(use, short, verb string, fn func(dir string) (map[string]int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}
			counts, err := fn(args[0])
			if err != nil {
				return err
			}
			a.logger.Info("backup "+cmd.Name(), "dir", args[0], "by", a.user.Username)
			return a.output(cmd, counts, func(r *report.Renderer) error {
				rows := make([][]string, 0, len(types.StandardTableNames))
				for _, t := range types.StandardTableNames {
					rows = append(rows, []string{t, fmt.Sprint(counts[t])})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, args[0])
				return r.Table([]string{"TABLE", "RECORDS"}, rows)
			})
		},
	}
}
