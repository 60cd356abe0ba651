package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/shipmgr/internal/auth"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

// testEnv is an isolated config and data directory pair.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

// cmdResult holds the outcome of one invocation.
type cmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range []string{
		"SHIPMGR_CONFIG_DIR", "SHIPMGR_DATA_DIR", "SHIPMGR_DB_FILE", "SHIPMGR_LOG_LEVEL",
		"SHIPMGR_LOG_FILE", "SHIPMGR_ADMIN_PASSWORD", "SHIPMGR_SEED_SAMPLE_DATA", "SHIPMGR_CURRENCY",
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	return &testEnv{
		t:         t,
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
	}
}

// withStdin runs shipmgr with args against the environment, feeding stdin.
func (e *testEnv) withStdin(stdin string, args ...string) cmdResult {
	e.t.Helper()
	all := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	var stdout, stderr bytes.Buffer
	code := run(all, strings.NewReader(stdin), &stdout, &stderr)
	return cmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}
}

func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	return e.withStdin("", args...)
}

// mustRun fails the test unless the invocation exits 0.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	if res.ExitCode != 0 {
		e.t.Fatalf("shipmgr %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, res.ExitCode, res.Stdout, res.Stderr)
	}
	return res
}

// login logs in as the seeded admin.
func (e *testEnv) login() {
	e.t.Helper()
	e.mustRun("login", "-u", "admin", "-p", "password123")
}

// parseJSON decodes command output into T.
func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", s, err)
	}
	return v
}
