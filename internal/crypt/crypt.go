// Package crypt turns a password into a ChaCha20 key and encrypts payloads
// with it.
//
// The cipher is unauthenticated. A wrong password or a tampered ciphertext
// decrypts to garbage without error; callers only notice when the garbage
// fails to decompress or decode.
package crypt

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 16
	NonceSize  = 16
	KeySize    = 32
	Iterations = 100000
)

var (
	ErrInvalidSaltSize  = errors.New("invalid salt size")
	ErrInvalidNonceSize = errors.New("invalid nonce size")
)

// Sealed is the output of Encrypt. Ciphertext has the plaintext's length.
type Sealed struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

func DeriveKey(password string, salt []byte) []byte {
	return deriveKey([]byte(password), salt, Iterations)
}

func deriveKey(password, salt []byte, iter int) []byte {
	return pbkdf2.Key(password, salt, iter, KeySize, sha256.New)
}

// Encrypt draws a fresh salt and nonce from random (crypto/rand when nil) and
// encrypts plaintext under the key derived from password.
func Encrypt(random io.Reader, plaintext []byte, password string) (*Sealed, error) {
	if random == nil {
		random = rand.Reader
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(random, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext, err := apply(password, salt, nonce, plaintext)
	if err != nil {
		return nil, err
	}
	return &Sealed{Salt: salt, Nonce: nonce, Ciphertext: ciphertext}, nil
}

// Decrypt re-derives the key from s.Salt and reverses Encrypt. It only fails
// on malformed salt or nonce sizes.
func Decrypt(s *Sealed, password string) ([]byte, error) {
	return apply(password, s.Salt, s.Nonce, s.Ciphertext)
}

func apply(password string, salt, nonce, src []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSaltSize, len(salt), SaltSize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	key := memguard.NewBufferFromBytes(DeriveKey(password, salt))
	defer key.Destroy()

	dst := make([]byte, len(src))
	if err := xorKeyStream(key.Bytes(), nonce, dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// xorKeyStream treats the 16-byte nonce as a little-endian 32-bit block
// counter followed by a 96-bit IETF nonce. When the counter wraps, the first
// nonce word is incremented and the counter restarts at zero.
func xorKeyStream(key, nonce, dst, src []byte) error {
	counter := binary.LittleEndian.Uint32(nonce[:4])
	iv := make([]byte, chacha20.NonceSize)
	copy(iv, nonce[4:])

	for len(src) > 0 {
		c, err := chacha20.NewUnauthenticatedCipher(key, iv)
		if err != nil {
			return fmt.Errorf("failed to create cipher: %w", err)
		}
		c.SetCounter(counter)

		n := len(src)
		if room := (uint64(1<<32) - uint64(counter)) * 64; uint64(n) > room {
			n = int(room)
		}
		c.XORKeyStream(dst[:n], src[:n])
		dst, src = dst[n:], src[n:]

		counter = 0
		binary.LittleEndian.PutUint32(iv[:4], binary.LittleEndian.Uint32(iv[:4])+1)
	}
	return nil
}
