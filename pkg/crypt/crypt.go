// Package crypt holds the password hashing and random id helpers.
//
//	hashed := crypt.Hash(config.HashingSecret(), password)
//	ok := crypt.Verify(config.HashingSecret(), attempt, hashed)
//	id, err := crypt.RandomString(60)
package crypt

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
)

// ErrLength is returned for non-positive lengths.
var ErrLength = errors.New("crypt: length must be positive")

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Hash returns hex(HMAC-SHA256(secret, s)). An empty s hashes to "".
func Hash(secret, s string) string {
	if s == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(s))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares plain against a stored hash in constant time.
func Verify(secret, plain, hashed string) bool {
	if plain == "" || hashed == "" {
		return false
	}
	return hmac.Equal([]byte(Hash(secret, plain)), []byte(hashed))
}

// RandomString returns n characters drawn uniformly from [a-zA-Z0-9].
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", ErrLength
	}
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("crypt: random: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
