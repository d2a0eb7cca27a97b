package chain

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ed25519Scheme is the authentication key scheme byte for single-key ed25519
// accounts.
const ed25519Scheme = 0x00

// Account is a local ed25519 signing identity used by the operator CLI to
// submit transactions directly, in place of a browser wallet.
type Account struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewAccount generates a fresh local account.
func NewAccount() (*Account, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Account{priv: priv, pub: pub}, nil
}

// AccountFromSeedHex builds an account from a hex-encoded 32-byte seed.
func AccountFromSeedHex(seedHex string) (*Account, error) {
	seed, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(seedHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Account{priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
}

// AccountFromKeyFile reads a hex-encoded seed from a key file.
func AccountFromKeyFile(path string) (*Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return AccountFromSeedHex(string(data))
}

// Address derives the canonical long-form account address:
// sha3-256(public key || scheme byte).
func (a *Account) Address() string {
	h := sha3.New256()
	h.Write(a.pub)
	h.Write([]byte{ed25519Scheme})
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// SeedHex returns the 0x-prefixed hex private key seed, suitable for a key
// file.
func (a *Account) SeedHex() string {
	return "0x" + hex.EncodeToString(a.priv.Seed())
}

// PublicKeyHex returns the 0x-prefixed hex public key.
func (a *Account) PublicKeyHex() string {
	return "0x" + hex.EncodeToString(a.pub)
}

// Sign signs a raw message and returns the 0x-prefixed hex signature.
func (a *Account) Sign(message []byte) string {
	return "0x" + hex.EncodeToString(ed25519.Sign(a.priv, message))
}
