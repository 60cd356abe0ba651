// Package sqlite implements the shipmgr store on a single local SQLite file.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

var _ types.Store = (*Backend)(nil)

// Backend implements types.Store. The zero value is not usable; call
// NewBackend and then Attach.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for lifecycle and seeding messages.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBackend creates a new, unattached SQLite backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens the database file, creating it and the data directory if
// needed, creates missing tables, and seeds the admin account.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return unavailable("creating data dir", err)
	}

	dbPath := config.DBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return unavailable("opening database", err)
	}
	// One connection for the process lifetime.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return unavailable("initializing schema", err)
	}

	if err := seedAdmin(db, config.AdminPasswordOrDefault()); err != nil {
		db.Close()
		return fmt.Errorf("seeding admin account: %w", err)
	}
	if config.SeedSampleData {
		seeded, err := seedSampleData(db)
		if err != nil {
			db.Close()
			return fmt.Errorf("seeding sample data: %w", err)
		}
		if seeded {
			b.logger.Debug("seeded sample data", "path", dbPath)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	b.logger.Debug("store attached", "path", dbPath)
	return nil
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	db := b.db
	b.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.logger.Debug("store detached", "path", b.config.DBPath())
	return nil
}

// Path returns the database file path of the current configuration.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DBPath()
}

func (b *Backend) Users() types.UserTable         { return &usersTable{b: b} }
func (b *Backend) Farmers() types.FarmerTable     { return &farmersTable{b: b} }
func (b *Backend) Products() types.ProductTable   { return &productsTable{b: b} }
func (b *Backend) Shipments() types.ShipmentTable { return &shipmentsTable{b: b} }
func (b *Backend) Sales() types.SaleTable         { return &salesTable{b: b} }
func (b *Backend) Transfers() types.TransferTable { return &transfersTable{b: b} }
func (b *Backend) Returns() types.ReturnTable     { return &returnsTable{b: b} }
func (b *Backend) Reports() types.Reports         { return &reports{b: b} }

// read runs fn with the read lock held and the store attached.
func (b *Backend) read(fn func(db *sql.DB) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrDetached
	}
	return fn(b.db)
}

// write runs fn with the write lock held and the store attached.
func (b *Backend) write(fn func(db *sql.DB) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrDetached
	}
	return fn(b.db)
}

// newUUID generates a UUID v7 string for record IDs.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
