package types

import (
	"errors"
	"path/filepath"
	"strings"
)

// Config holds the parameters for Store.Attach.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
	DBFile  string `json:"db_file" yaml:"db_file"`

	// AdminPassword is the initial password of the seeded admin account.
	// It is only read when the account does not exist yet.
	AdminPassword string `json:"-" yaml:"admin_password,omitempty"`

	// SeedSampleData loads a small demo data set into empty tables.
	SeedSampleData bool `json:"seed_sample_data" yaml:"seed_sample_data"`
}

// Defaults applied by Store.Attach when the corresponding field is empty.
const (
	DefaultDBFile        = "shipments.db"
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "password123"
)

// Config validation errors.
var (
	ErrDBFileInvalid = errors.New("db_file must be a plain file name")
)

// DBFileOrDefault returns the configured database file name or DefaultDBFile.
func (c Config) DBFileOrDefault() string {
	if c.DBFile == "" {
		return DefaultDBFile
	}
	return c.DBFile
}

// AdminPasswordOrDefault returns the configured seed password or
// DefaultAdminPassword.
func (c Config) AdminPasswordOrDefault() string {
	if c.AdminPassword == "" {
		return DefaultAdminPassword
	}
	return c.AdminPassword
}

// DBPath returns the full path of the database file.
func (c Config) DBPath() string {
	dir := c.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, c.DBFileOrDefault())
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	name := c.DBFileOrDefault()
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return ErrDBFileInvalid
	}
	return nil
}
