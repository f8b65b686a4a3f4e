package federation

import (
	"context"
	"net/url"

	"github.com/sidereusnuntius/hermes/internal/domain"
)

//go:generate mockgen -source=fedproto.go -destination=../mocks/federation.go -package=mocks

// Resolver computes who must receive an object.
type Resolver interface {
	// PublicRecipients returns every follower of author, local or remote.
	PublicRecipients(ctx context.Context, author domain.Author) (domain.RecipientSet, error)
	// AudienceRecipients returns the members of the audience obj is restricted to. The result never
	// contains anyone outside of it.
	AudienceRecipients(ctx context.Context, author domain.Author, obj domain.Federatable) (domain.RecipientSet, error)
}

// Notifier delivers an object to a local account. Notifying the same account twice about the same
// object must have no further effect.
type Notifier interface {
	NotifyLocal(ctx context.Context, accountID int64, obj domain.Federatable) error
}

// Payload is the body of a request sent to a remote server.
type Payload struct {
	Body        []byte
	ContentType string
}

// Transport sends payloads to remote servers on behalf of an author, signing them with the author's key.
type Transport interface {
	SendRemote(ctx context.Context, author domain.Author, endpoint *url.URL, payload Payload) error
}

// CrossPoster publishes objects to external services, identified by a label.
type CrossPoster interface {
	Publish(ctx context.Context, label string, author domain.Author, obj domain.Federatable) error
}
