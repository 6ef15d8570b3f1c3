// Package keyx derives a shared stego password from a P-256 key agreement,
// so two peers never have to exchange one.
//
// The password is base64(SHA-256(ECDH secret)). Public keys travel as
// base64 X.509 SubjectPublicKeyInfo.
package keyx

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/awnumar/memguard"
)

var (
	ErrNotECKey = errors.New("key is not a P-256 key")
	ErrNoPEM    = errors.New("failed to parse PEM block")
)

func GenerateKey() (*ecdh.PrivateKey, error) {
	return ecdh.P256().GenerateKey(rand.Reader)
}

func MarshalPrivateKeyPEM(priv *ecdh.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(der)
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// LoadPrivateKey reads a PKCS#8 "PRIVATE KEY" or SEC 1 "EC PRIVATE KEY" file.
func LoadPrivateKey(path string) (*ecdh.PrivateKey, error) {
	keyBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read key file: %w", err)
	}
	defer memguard.WipeBytes(keyBytes)
	return ParsePrivateKeyPEM(keyBytes)
}

func ParsePrivateKeyPEM(data []byte) (*ecdh.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrNoPEM
	}

	var key any
	var err error
	switch block.Type {
	case "PRIVATE KEY":
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		key, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		return nil, fmt.Errorf("unknown key type: %s", block.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	switch k := key.(type) {
	case *ecdsa.PrivateKey:
		return toP256(k.ECDH())
	case *ecdh.PrivateKey:
		return toP256(k, nil)
	default:
		return nil, ErrNotECKey
	}
}

func toP256(k *ecdh.PrivateKey, err error) (*ecdh.PrivateKey, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to convert to ECDH: %w", err)
	}
	if k.Curve() != ecdh.P256() {
		return nil, ErrNotECKey
	}
	return k, nil
}

func EncodePublicKey(pub *ecdh.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

func ParsePublicKey(b64 string) (*ecdh.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}
	pubInterface, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	pubECDSA, ok := pubInterface.(*ecdsa.PublicKey)
	if !ok {
		return nil, ErrNotECKey
	}
	pub, err := pubECDSA.ECDH()
	if err != nil {
		return nil, fmt.Errorf("failed to convert to ECDH: %w", err)
	}
	if pub.Curve() != ecdh.P256() {
		return nil, ErrNotECKey
	}
	return pub, nil
}

// SharedPassword agrees a secret with the peer and returns it as the stego
// password. Both sides obtain the same string.
func SharedPassword(priv *ecdh.PrivateKey, peerPublicB64 string) (string, error) {
	pub, err := ParsePublicKey(peerPublicB64)
	if err != nil {
		return "", err
	}

	secret, err := priv.ECDH(pub)
	if err != nil {
		return "", fmt.Errorf("key agreement failed: %w", err)
	}
	defer memguard.WipeBytes(secret)

	sum := sha256.Sum256(secret)
	defer memguard.WipeBytes(sum[:])
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}
