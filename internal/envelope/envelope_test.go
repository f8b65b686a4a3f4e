package envelope

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/utils"
)

var serverPub string
var serverKey *rsa.PrivateKey

func TestMain(m *testing.M) {
	pub, priv, err := utils.GenerateKeysPem(2048)
	if err != nil {
		log.Fatal().Err(err).Msg("tests setup failure")
		return
	}
	serverPub = pub
	serverKey, err = utils.ParsePrivateKeyPem(priv)
	if err != nil {
		log.Fatal().Err(err).Msg("tests setup failure")
		return
	}

	m.Run()
}

func TestSealOpen(t *testing.T) {
	payload := []byte(`{"type":"Create","object":{"type":"Note","content":"only for you"}}`)

	sealed, err := Seal(payload, serverPub)
	if err != nil {
		t.Fatal(err)
	}

	opened, err := Open(sealed, serverKey)
	if err != nil {
		t.Fatal(err)
	}

	if string(opened) != string(payload) {
		t.Errorf("expected %s, got %s", payload, opened)
	}
}

func TestOpen_WrongKey(t *testing.T) {
	sealed, err := Seal([]byte("secret"), serverPub)
	if err != nil {
		t.Fatal(err)
	}

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Open(sealed, other)
	if !errors.Is(err, ErrOpen) {
		t.Errorf("expected \"%s\", got \"%v\"", ErrOpen, err)
	}
}

func TestSeal_InvalidKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not pem", "ssh-rsa AAAA"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Seal([]byte("x"), c.key); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
