// Package auth implements password hashing, the login session state machine,
// and the signed session token the CLI keeps between invocations.
package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// Cost is the bcrypt work factor used by HashPassword.
// Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// dummyHash is compared against when the username is unknown so that a
// failed lookup costs about the same as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("shipmgr-unknown-user"), Cost)
	return h
})

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", types.ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BurnCompare performs a comparison against a fixed hash and discards the
// result. Call it when the account does not exist.
func BurnCompare(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
}
