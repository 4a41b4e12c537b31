package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces one-way salted password digests.
type Hasher interface {
	Hash(plain string) (string, error)
}

// BcryptHasher hashes with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher; out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash hashes a plaintext password with the configured cost.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// PasswordGenerator produces random plaintext passwords.
type PasswordGenerator interface {
	Generate() (string, error)
}

// RandomPasswordGenerator draws alphanumeric passwords from crypto/rand.
type RandomPasswordGenerator struct {
	length int
}

// NewRandomPasswordGenerator returns a generator for passwords of the given length (8 when <= 0).
func NewRandomPasswordGenerator(length int) *RandomPasswordGenerator {
	if length <= 0 {
		length = 8
	}
	return &RandomPasswordGenerator{length: length}
}

// Generate returns a new password.
func (g *RandomPasswordGenerator) Generate() (string, error) {
	limit := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, g.length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
