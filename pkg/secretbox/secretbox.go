// Package secretbox seals short secrets (visitor API keys) before they are stored.
package secretbox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrDecrypt = errors.New("secretbox: cannot open sealed value")

type Box struct {
	key [32]byte
}

// New derives the box key from an operator-provided passphrase.
func New(secret string) (*Box, error) {
	if secret == "" {
		return nil, errors.New("secretbox: empty secret")
	}

	b := &Box{}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("workflow-hub api key"))
	if _, err := io.ReadFull(kdf, b.key[:]); err != nil {
		return nil, fmt.Errorf("secretbox: derive key: %w", err)
	}
	return b, nil
}

// Seal returns base64(nonce || box).
func (b *Box) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("secretbox: nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (b *Box) Open(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrDecrypt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
