package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/shipmgr/internal/auth"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

// newTestBackend attaches a backend on a fresh temp dir and detaches it when
// the test ends.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	return newTestBackendWith(t, types.Config{DataDir: t.TempDir()})
}

func newTestBackendWith(t *testing.T, config types.Config) *Backend {
	t.Helper()
	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{DataDir: tmpDir}

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	dbPath := filepath.Join(tmpDir, types.DefaultDBFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", types.DefaultDBFile)
	}
	if b.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", b.Path(), dbPath)
	}

	if err := b.Attach(config); err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	b := newTestBackendWith(t, types.Config{DataDir: dataDir, DBFile: "custom.db"})

	if _, err := os.Stat(filepath.Join(dataDir, "custom.db")); err != nil {
		t.Errorf("custom.db not created: %v", err)
	}
	if _, err := b.Users().GetByUsername(types.DefaultAdminUsername); err != nil {
		t.Errorf("admin not seeded: %v", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	if err := b.Attach(types.Config{DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should be a no-op, got %v", err)
	}

	if _, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A"}); err != types.ErrDetached {
		t.Errorf("Create after Detach: expected ErrDetached, got %v", err)
	}
	if _, err := b.Products().List(types.ListOptions{}); err != types.ErrDetached {
		t.Errorf("List after Detach: expected ErrDetached, got %v", err)
	}
	if _, err := b.Reports().Stock(); err != types.ErrDetached {
		t.Errorf("Stock after Detach: expected ErrDetached, got %v", err)
	}
}

func TestBackend_ReattachKeepsData(t *testing.T) {
	config := types.Config{DataDir: t.TempDir()}

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	id, err := b.Farmers().Create(&types.Farmer{Name: "Farmer A"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b.Detach()

	b2 := newTestBackendWith(t, config)
	f, err := b2.Farmers().Get(id)
	if err != nil {
		t.Fatalf("Get after reattach failed: %v", err)
	}
	if f.Name != "Farmer A" {
		t.Errorf("Name = %q, want %q", f.Name, "Farmer A")
	}

	users, err := b2.Users().List(types.ListOptions{})
	if err != nil {
		t.Fatalf("List users failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected one seeded user after reattach, got %d", len(users))
	}
}

func TestBackend_StorageUnavailable(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "dir.db"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		config types.Config
	}{
		{"data dir under a regular file", types.Config{DataDir: filepath.Join(blocker, "data")}},
		{"db file is a directory", types.Config{DataDir: tmpDir, DBFile: "dir.db"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend()
			err := b.Attach(tt.config)
			if !errors.Is(err, types.ErrStorageUnavailable) {
				t.Fatalf("expected ErrStorageUnavailable, got %v", err)
			}
			if _, err := b.Farmers().List(types.ListOptions{}); err != types.ErrDetached {
				t.Errorf("expected ErrDetached after failed Attach, got %v", err)
			}
		})
	}
}

func TestBackend_InvalidDBFile(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{DataDir: t.TempDir(), DBFile: "../escape.db"})
	if err != types.ErrDBFileInvalid {
		t.Errorf("expected ErrDBFileInvalid, got %v", err)
	}
}

func TestNewUUID(t *testing.T) {
	a, b := newUUID(), newUUID()
	if a == b {
		t.Errorf("expected distinct IDs, got %q twice", a)
	}
	if len(a) != 36 {
		t.Errorf("expected a 36-character UUID, got %q", a)
	}
}
