// Package cli implements the shipmgr command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shipmgr/internal/auth"
	"github.com/mesh-intelligence/shipmgr/internal/paths"
	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/internal/sqlite"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Command annotations read by the setup hook.
const (
	annotSetup = "shipmgr/setup"

	setupNone  = "none"  // no config, no store
	setupOpen  = "open"  // store attached, no session required
	setupLocal = "local" // config only; the command attaches itself
)

// exitError carries an explicit exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as a system failure (exit code 2).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, types.ErrStorageUnavailable),
		errors.Is(err, types.ErrDetached),
		errors.Is(err, types.ErrAlreadyAttached):
		return exitSysError
	default:
		return exitUserError
	}
}

// rootFlags holds the global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags  rootFlags
	dirs   paths.Dirs
	config *viper.Viper
	logger *slog.Logger
	logOut io.Closer

	store  *sqlite.Backend
	tokens *auth.TokenStore
	user   *types.User
}

// NewRootCmd creates the top-level "shipmgr" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{logger: slog.New(slog.DiscardHandler)}
	root := &cobra.Command{
		Use:   "shipmgr",
		Short: "Track shipments, products and farmers in a local database",
		Long: "shipmgr records shipments, products, farmers, sales, transfers and returns\n" +
			"in a single SQLite file. Log in once with \"shipmgr login\" or work\n" +
			"interactively with \"shipmgr shell\".",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		a.newVersionCmd(),
		a.newInitCmd(),
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newWhoamiCmd(),
		a.newUserCmd(),
		a.newFarmerCmd(),
		a.newProductCmd(),
		a.newShipmentCmd(),
		a.newSaleCmd(),
		a.newTransferCmd(),
		a.newReturnCmd(),
		a.newStockCmd(),
		a.newSummaryCmd(),
		a.newBackupCmd(),
		a.newShellCmd(),
	)
	return root, a
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	root, a := newRoot()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if cerr := a.close(); err == nil && cerr != nil {
		err = sysError(cerr)
	}
	if err != nil {
		fmt.Fprintln(errOut, "Error:", err)
	}
	return exitCode(err)
}

// setup loads configuration and attaches the store according to the
// command's annotation. Commands without one also need a session.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	mode := cmd.Annotations[annotSetup]
	if mode == setupNone || isBuiltin(cmd) {
		return nil
	}
	if err := a.loadConfig(); err != nil {
		return err
	}
	if err := a.initLogger(cmd.ErrOrStderr()); err != nil {
		return err
	}
	a.tokens = auth.NewTokenStore(a.dirs.Data, a.dirs.Config)
	if mode == setupLocal {
		return nil
	}
	if err := a.attach(false); err != nil {
		return err
	}
	if mode == setupOpen {
		return nil
	}
	return a.requireSession()
}

// isBuiltin reports cobra's generated help and completion commands.
func isBuiltin(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// attach opens the store described by the loaded configuration.
func (a *app) attach(sampleData bool) error {
	b := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := b.Attach(a.storeConfig(sampleData)); err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	a.store = b
	return nil
}

// requireSession loads the session token and checks that its user still
// exists.
func (a *app) requireSession() error {
	claims, err := a.tokens.Load()
	if err != nil {
		return fmt.Errorf("%w: run \"shipmgr login\" first", types.ErrNotLoggedIn)
	}
	u, err := a.store.Users().Get(claims.Subject)
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("%w: account %q no longer exists", types.ErrNotLoggedIn, claims.Username)
	}
	if err != nil {
		return err
	}
	a.user = u
	return nil
}

// requireAdmin fails unless the session user is an admin.
func (a *app) requireAdmin() error {
	if a.user == nil || !a.user.IsAdmin() {
		return fmt.Errorf("%w: admin role required", types.ErrPermissionDenied)
	}
	return nil
}

// close detaches the store and closes the log file.
func (a *app) close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Detach())
		a.store = nil
	}
	if a.logOut != nil {
		errs = append(errs, a.logOut.Close())
		a.logOut = nil
	}
	return errors.Join(errs...)
}

func (a *app) renderer(cmd *cobra.Command) *report.Renderer {
	currency := ""
	if a.config != nil {
		currency = a.config.GetString(cfgKeyCurrency)
	}
	return report.New(cmd.OutOrStdout(), currency)
}

// output writes v as JSON in --json mode, otherwise calls text.
func (a *app) output(cmd *cobra.Command, v any, text func(r *report.Renderer) error) error {
	r := a.renderer(cmd)
	if a.flags.jsonMode {
		return r.JSON(v)
	}
	return text(r)
}

func annotate(cmd *cobra.Command, mode string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotSetup] = mode
	return cmd
}
