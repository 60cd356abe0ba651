package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"empty config uses defaults", Config{}, nil},
		{"plain file name", Config{DBFile: "farm.db"}, nil},
		{"path separator rejected", Config{DBFile: "sub/farm.db"}, ErrDBFileInvalid},
		{"backslash rejected", Config{DBFile: `sub\farm.db`}, ErrDBFileInvalid},
		{"parent dir rejected", Config{DBFile: ".."}, ErrDBFileInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{DataDir: "/tmp/data"}
	assert.Equal(t, DefaultDBFile, cfg.DBFileOrDefault())
	assert.Equal(t, DefaultAdminPassword, cfg.AdminPasswordOrDefault())
	assert.Equal(t, filepath.Join("/tmp/data", DefaultDBFile), cfg.DBPath())

	cfg.DBFile = "other.db"
	cfg.AdminPassword = "s3cret"
	assert.Equal(t, "other.db", cfg.DBFileOrDefault())
	assert.Equal(t, "s3cret", cfg.AdminPasswordOrDefault())
	assert.Equal(t, filepath.Join(".", "other.db"), Config{DBFile: "other.db"}.DBPath())
}
