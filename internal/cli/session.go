package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shipmgr/internal/auth"
	"github.com/mesh-intelligence/shipmgr/internal/console"
	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func (a *app) newLoginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		Long: "Verify a username and password and store a signed session token in the\n" +
			"config directory. Missing values are read from standard input.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			var err error
			if username == "" {
				if username, err = prompt(cmd, in, "Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt(cmd, in, "Password: "); err != nil {
					return err
				}
			}

			session := auth.NewSession(a.store.Users(), a.logger)
			if err := session.Login(username, password); err != nil {
				return err
			}
			if err := a.tokens.Save(session.User()); err != nil {
				return sysError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", session.User().Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return annotate(cmd, setupOpen)
}

func (a *app) newLogoutCmd() *cobra.Command {
	return annotate(&cobra.Command{
		Use:   "logout",
		Short: "End the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tokens.Clear(); err != nil {
				return sysError(err)
			}
			a.logger.Info("user logged out")
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}, setupLocal)
}

func (a *app) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.output(cmd, a.user, func(r *report.Renderer) error {
				r.Line("%s (%s)", a.user.Username, a.user.Role)
				return nil
			})
		},
	}
}

func (a *app) newShellCmd() *cobra.Command {
	return annotate(&cobra.Command{
		Use:   "shell",
		Short: "Start the interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := console.New(a.store, cmd.InOrStdin(), cmd.OutOrStdout(),
				console.WithLogger(a.logger),
				console.WithCurrency(a.config.GetString(cfgKeyCurrency)),
			)
			return c.Run()
		},
	}, setupOpen)
}

// prompt writes label and reads one line from in.
func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("%w: no input", types.ErrInvalidCredentials)
	}
	return strings.TrimSpace(line), nil
}
