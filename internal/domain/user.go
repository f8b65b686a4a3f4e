package domain

import (
	"net/url"
)

// Author is a local account on whose behalf objects are federated. PrivateKey holds the PEM encoded key
// used to sign outgoing requests; its public half is published at ApID#main-key.
type Author struct {
	ID         int64
	Username   string
	Name       string
	ApID       *url.URL
	PublicKey  string
	PrivateKey string
}

// KeyID returns the IRI of the author's public key.
func (a Author) KeyID() *url.URL {
	if a.ApID == nil {
		return nil
	}
	id := *a.ApID
	id.Fragment = "main-key"
	return &id
}

// Followers returns the IRI of the author's followers collection.
func (a Author) Followers() *url.URL {
	if a.ApID == nil {
		return nil
	}
	return a.ApID.JoinPath("followers")
}
