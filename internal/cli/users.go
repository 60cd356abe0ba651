package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func (a *app) newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage login accounts",
	}
	cmd.AddCommand(
		a.newUserAddCmd(),
		a.newUserListCmd(),
		a.newUserPasswdCmd(),
	)
	return cmd
}

func (a *app) newUserAddCmd() *cobra.Command {
	var password, role string
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an account (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(); err != nil {
				return err
			}
			if password == "" {
				var err error
				if password, err = prompt(cmd, bufio.NewReader(cmd.InOrStdin()), "Password: "); err != nil {
					return err
				}
			}
			u := &types.User{Username: args[0], Role: role}
			id, err := a.store.Users().Create(u, password)
			if err != nil {
				return err
			}
			a.logger.Info("user created", "username", u.Username, "by", a.user.Username)
			return a.output(cmd, u, func(r *report.Renderer) error {
				printCreated(cmd, "user", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "initial password (read from stdin if omitted)")
	cmd.Flags().StringVar(&role, "role", types.RoleOperator, "role: admin or operator")
	return cmd
}

func (a *app) newUserListCmd() *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.store.Users().List(lf.options())
			if err != nil {
				return err
			}
			return a.output(cmd, list, func(r *report.Renderer) error {
				return r.Users(list)
			})
		},
	}
	lf.register(cmd, "username", "created_at")
	return cmd
}

func (a *app) newUserPasswdCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "passwd [username]",
		Short: "Change a password",
		Long: "Change the password of the logged-in user, or of another account when\n" +
			"run by an admin.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := a.user.Username
			if len(args) == 1 && args[0] != username {
				if err := a.requireAdmin(); err != nil {
					return err
				}
				username = args[0]
			}
			if password == "" {
				var err error
				if password, err = prompt(cmd, bufio.NewReader(cmd.InOrStdin()), "New password: "); err != nil {
					return err
				}
			}
			if err := a.store.Users().SetPassword(username, password); err != nil {
				return err
			}
			a.logger.Info("password changed", "username", username, "by", a.user.Username)
			fmt.Fprintf(cmd.OutOrStdout(), "Password changed for %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password (read from stdin if omitted)")
	return cmd
}
