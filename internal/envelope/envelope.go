// Package envelope seals payloads for a single receiving server. The payload is encrypted with a random
// XChaCha20-Poly1305 key, which is in turn encrypted with the server's RSA public key.
package envelope

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sidereusnuntius/hermes/internal/utils"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	Algorithm   = "RSA-OAEP-256+XChaCha20-Poly1305"
	ContentType = "application/vnd.hermes.envelope+json"
)

var label = []byte("hermes-envelope")

var (
	ErrAlgorithm = errors.New("unsupported envelope algorithm")
	ErrOpen      = errors.New("unable to open envelope")
)

type Envelope struct {
	Alg   string `json:"alg"`
	Key   []byte `json:"key"`
	Nonce []byte `json:"nonce"`
	Data  []byte `json:"data"`
}

// Seal encrypts payload for the holder of the private half of publicKeyPem and returns the JSON encoded
// envelope.
func Seal(payload []byte, publicKeyPem string) ([]byte, error) {
	pub, err := utils.ParsePublicKeyPem(publicKeyPem)
	if err != nil {
		return nil, err
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err = rand.Read(key); err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err = rand.Read(nonce); err != nil {
		return nil, err
	}

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, key, label)
	if err != nil {
		return nil, fmt.Errorf("key wrapping: %w", err)
	}

	return json.Marshal(Envelope{
		Alg:   Algorithm,
		Key:   wrapped,
		Nonce: nonce,
		Data:  aead.Seal(nil, nonce, payload, []byte(Algorithm)),
	})
}

// Open reverses Seal.
func Open(sealed []byte, key *rsa.PrivateKey) ([]byte, error) {
	var env Envelope
	if err := json.Unmarshal(sealed, &env); err != nil {
		return nil, err
	}
	if env.Alg != Algorithm {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithm, env.Alg)
	}

	symmetric, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, key, env.Key, label)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	aead, err := chacha20poly1305.NewX(symmetric)
	if err != nil {
		return nil, err
	}

	payload, err := aead.Open(nil, env.Nonce, env.Data, []byte(Algorithm))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return payload, nil
}
