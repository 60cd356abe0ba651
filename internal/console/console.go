// Package console implements the interactive shipmgr shell: a login screen
// followed by a main view of entity tables, reports and fill-in forms.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/shipmgr/internal/auth"
	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

const (
	prompt    = "shipmgr> "
	cancelKey = "."
	clearKey  = "-"
)

// errCancelled ends a form without writing anything.
var errCancelled = errors.New("cancelled")

// Console reads commands from in and writes views to out.
type Console struct {
	store   types.Store
	session *auth.Session
	in      *bufio.Scanner
	out     io.Writer
	render  *report.Renderer
	logger  *slog.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger for session events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Console) { c.logger = l }
}

// WithCurrency sets the currency suffix for money amounts.
func WithCurrency(currency string) Option {
	return func(c *Console) { c.render = report.New(c.out, currency) }
}

// New returns a Console over an attached store.
func New(store types.Store, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
		render: report.New(out, ""),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session = auth.NewSession(store.Users(), c.logger)
	return c
}

// Session returns the console session.
func (c *Console) Session() *auth.Session {
	return c.session
}

// Run shows the login screen and then the main view until quit or end of
// input. Logging out returns to the login screen.
func (c *Console) Run() error {
	for {
		if err := c.login(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		quit, err := c.mainView()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// login repeats until the credentials are accepted.
func (c *Console) login() error {
	fmt.Fprintln(c.out, "== shipmgr login ==")
	for {
		username, err := c.ask("Username: ")
		if err != nil {
			return err
		}
		password, err := c.ask("Password: ")
		if err != nil {
			return err
		}
		err = c.session.Login(username, password)
		if err == nil {
			fmt.Fprintf(c.out, "Welcome, %s.\n", c.session.User().Username)
			return nil
		}
		if !errors.Is(err, types.ErrInvalidCredentials) {
			return err
		}
		fmt.Fprintln(c.out, "Invalid username or password.")
	}
}

// mainView runs commands until logout (false) or quit (true).
func (c *Console) mainView() (bool, error) {
	c.help()
	for {
		line, err := c.ask(prompt)
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			c.session.Logout()
			return true, nil
		case "logout":
			c.session.Logout()
			fmt.Fprintln(c.out, "Logged out.")
			return false, nil
		}
		if err := c.dispatch(fields[0], fields[1:]); err != nil {
			if isStorageError(err) {
				return false, err
			}
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

func (c *Console) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help":
		c.help()
		return nil
	case "farmers":
		return c.showFarmers()
	case "products":
		return c.showProducts()
	case "shipments":
		return c.showShipments()
	case "sales":
		return c.showSales()
	case "stock":
		rows, err := c.store.Reports().Stock()
		if err != nil {
			return err
		}
		return c.render.Stock(rows)
	case "summary":
		rows, err := c.store.Reports().FarmerSummaries()
		if err != nil {
			return err
		}
		return c.render.Summaries(rows)
	case "receipt":
		if len(args) != 1 {
			return errors.New("usage: receipt <shipment-id>")
		}
		rc, err := c.store.Reports().Receipt(args[0])
		if err != nil {
			return err
		}
		return c.render.Receipt(rc)
	case "add", "edit", "delete":
		return c.entityCommand(cmd, args)
	}
	return fmt.Errorf("unknown command %q (type help)", cmd)
}

func (c *Console) help() {
	fmt.Fprintln(c.out, `Commands:
  farmers | products | shipments | sales   show a table
  stock | summary                          show a report
  add <entity>                             fill in a new record
  edit <entity> <id>                       change a record
  delete <entity> <id>                     remove a record
  receipt <shipment-id>                    print a shipment receipt
  logout | quit | help
Entities: farmer, product, shipment, sale, transfer, return.
In a form, press enter to keep the value in brackets, type - to clear an
optional field or . to cancel.`)
}

func (c *Console) showFarmers() error {
	list, err := c.store.Farmers().List(types.ListOptions{OrderBy: "name"})
	if err != nil {
		return err
	}
	return c.render.Farmers(list)
}

func (c *Console) showProducts() error {
	list, err := c.store.Products().List(types.ListOptions{OrderBy: "name"})
	if err != nil {
		return err
	}
	return c.render.Products(list)
}

func (c *Console) showShipments() error {
	list, err := c.store.Shipments().List(types.ListOptions{OrderBy: "date"})
	if err != nil {
		return err
	}
	names, err := c.names()
	if err != nil {
		return err
	}
	return c.render.Shipments(list, names)
}

func (c *Console) showSales() error {
	list, err := c.store.Sales().List(types.ListOptions{OrderBy: "created_at"})
	if err != nil {
		return err
	}
	names, err := c.names()
	if err != nil {
		return err
	}
	return c.render.Sales(list, names)
}

func (c *Console) names() (report.Names, error) {
	farmers, err := c.store.Farmers().List(types.ListOptions{})
	if err != nil {
		return report.Names{}, err
	}
	products, err := c.store.Products().List(types.ListOptions{})
	if err != nil {
		return report.Names{}, err
	}
	return report.NewNames(farmers, products), nil
}

// ask prints label and reads one trimmed line.
func (c *Console) ask(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// isStorageError reports errors that end the console rather than the
// current command.
func isStorageError(err error) bool {
	return errors.Is(err, types.ErrStorageUnavailable) || errors.Is(err, types.ErrDetached)
}

// isUserError reports errors that reopen a form.
func isUserError(err error) bool {
	return errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrConstraintViolation)
}
