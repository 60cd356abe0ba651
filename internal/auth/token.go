package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// File names used by TokenStore.
const (
	KeyFileName   = "session.key"
	TokenFileName = "session.jwt"
)

const keySize = 32

// Claims is the payload of a session token. Subject holds the user ID.
type Claims struct {
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// TokenStore persists the LoggedIn state of the CLI between invocations as
// an HS256 token signed with a per-installation key. Tokens carry no expiry.
type TokenStore struct {
	keyPath   string
	tokenPath string
}

// NewTokenStore returns a store that keeps its signing key in dataDir and
// the token in configDir.
func NewTokenStore(dataDir, configDir string) *TokenStore {
	return &TokenStore{
		keyPath:   filepath.Join(dataDir, KeyFileName),
		tokenPath: filepath.Join(configDir, TokenFileName),
	}
}

// Save signs a token for u and writes it, creating the key on first use.
func (ts *TokenStore) Save(u *types.User) error {
	key, err := ts.loadKey(true)
	if err != nil {
		return err
	}
	claims := Claims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  u.ID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(ts.tokenPath), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(ts.tokenPath, []byte(signed+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session token: %w", err)
	}
	return nil
}

// Load parses and verifies the saved token. A missing, tampered, or
// foreign token yields types.ErrNotLoggedIn.
func (ts *TokenStore) Load() (*Claims, error) {
	data, err := os.ReadFile(ts.tokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("reading session token: %w", err)
	}
	key, err := ts.loadKey(false)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(strings.TrimSpace(string(data)), claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: invalid session token", types.ErrNotLoggedIn)
	}
	if claims.Subject == "" || claims.Username == "" {
		return nil, fmt.Errorf("%w: incomplete session token", types.ErrNotLoggedIn)
	}
	return claims, nil
}

// Clear removes the saved token. Idempotent.
func (ts *TokenStore) Clear() error {
	if err := os.Remove(ts.tokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session token: %w", err)
	}
	return nil
}

func (ts *TokenStore) loadKey(create bool) ([]byte, error) {
	key, err := os.ReadFile(ts.keyPath)
	if err == nil {
		if len(key) < keySize {
			return nil, fmt.Errorf("session key %s is truncated", ts.keyPath)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading session key: %w", err)
	}
	if !create {
		return nil, types.ErrNotLoggedIn
	}

	key = make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating session key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(ts.keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating key dir: %w", err)
	}
	if err := os.WriteFile(ts.keyPath, key, 0o600); err != nil {
		return nil, fmt.Errorf("writing session key: %w", err)
	}
	return key, nil
}
