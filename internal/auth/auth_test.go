package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "wrong"))

	again, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")

	_, err = HashPassword("")
	assert.ErrorIs(t, err, types.ErrInvalidPassword)
}

// fakeAuth accepts exactly one username/password pair.
type fakeAuth struct {
	user     *types.User
	password string
}

func (f fakeAuth) Authenticate(username, password string) (*types.User, error) {
	if username == f.user.Username && password == f.password {
		return f.user, nil
	}
	return nil, types.ErrInvalidCredentials
}

func TestSessionStateMachine(t *testing.T) {
	admin := &types.User{ID: "u1", Username: "admin", Role: types.RoleAdmin}
	s := NewSession(fakeAuth{user: admin, password: "pw"}, nil)

	assert.Equal(t, LoggedOut, s.State())
	_, err := s.Require()
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)

	err = s.Login("admin", "wrong")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	assert.Equal(t, LoggedOut, s.State())
	assert.Nil(t, s.User())

	require.NoError(t, s.Login("admin", "pw"))
	assert.Equal(t, LoggedIn, s.State())
	assert.Equal(t, "logged_in", s.State().String())
	u, err := s.Require()
	require.NoError(t, err)
	assert.Equal(t, admin, u)

	s.Logout()
	assert.Equal(t, LoggedOut, s.State())
	s.Logout()
	assert.Equal(t, "logged_out", s.State().String())
}

func TestTokenStore(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, ts *TokenStore, dataDir, configDir string)
	}{
		{
			name: "load without token is not logged in",
			check: func(t *testing.T, ts *TokenStore, _, _ string) {
				_, err := ts.Load()
				assert.ErrorIs(t, err, types.ErrNotLoggedIn)
			},
		},
		{
			name: "save then load returns claims",
			check: func(t *testing.T, ts *TokenStore, dataDir, configDir string) {
				require.NoError(t, ts.Save(&types.User{ID: "u1", Username: "admin"}))
				claims, err := ts.Load()
				require.NoError(t, err)
				assert.Equal(t, "u1", claims.Subject)
				assert.Equal(t, "admin", claims.Username)

				info, err := os.Stat(filepath.Join(dataDir, KeyFileName))
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
			},
		},
		{
			name: "token signed with another key is rejected",
			check: func(t *testing.T, ts *TokenStore, _, configDir string) {
				require.NoError(t, ts.Save(&types.User{ID: "u1", Username: "admin"}))

				other := NewTokenStore(t.TempDir(), configDir)
				require.NoError(t, other.Save(&types.User{ID: "u2", Username: "mallory"}))
				_, err := ts.Load()
				assert.ErrorIs(t, err, types.ErrNotLoggedIn)
			},
		},
		{
			name: "tampered token is rejected",
			check: func(t *testing.T, ts *TokenStore, _, configDir string) {
				require.NoError(t, ts.Save(&types.User{ID: "u1", Username: "admin"}))
				path := filepath.Join(configDir, TokenFileName)
				require.NoError(t, os.WriteFile(path, []byte("not.a.token"), 0o600))
				_, err := ts.Load()
				assert.ErrorIs(t, err, types.ErrNotLoggedIn)
			},
		},
		{
			name: "clear is idempotent",
			check: func(t *testing.T, ts *TokenStore, _, _ string) {
				require.NoError(t, ts.Save(&types.User{ID: "u1", Username: "admin"}))
				require.NoError(t, ts.Clear())
				require.NoError(t, ts.Clear())
				_, err := ts.Load()
				assert.ErrorIs(t, err, types.ErrNotLoggedIn)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataDir := t.TempDir()
			configDir := t.TempDir()
			tt.check(t, NewTokenStore(dataDir, configDir), dataDir, configDir)
		})
	}
}
