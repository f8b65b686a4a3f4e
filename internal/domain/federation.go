package domain

import (
	"fmt"
	"net/url"
	"time"
)

type RecipientKind uint8

const (
	LocalRecipient RecipientKind = iota
	RemoteRecipient
)

// Recipient is either a local account, identified by AccountID, or a remote actor reachable at Endpoint,
// which is usually the shared inbox of the actor's server. PublicKey is the server's key material, used
// to seal private payloads.
type Recipient struct {
	Kind      RecipientKind
	AccountID int64
	Actor     *url.URL
	Endpoint  *url.URL
	PublicKey string
}

func Local(accountID int64) Recipient {
	return Recipient{Kind: LocalRecipient, AccountID: accountID}
}

func Remote(actor, endpoint *url.URL, publicKey string) Recipient {
	return Recipient{
		Kind:      RemoteRecipient,
		Actor:     actor,
		Endpoint:  endpoint,
		PublicKey: publicKey,
	}
}

// Key identifies the unit of delivery the recipient belongs to. Remote recipients sharing an endpoint
// share a key, since they are served by a single request.
func (r Recipient) Key() string {
	if r.Kind == LocalRecipient {
		return fmt.Sprintf("local:%d", r.AccountID)
	}
	return "remote:" + r.Endpoint.String()
}

func (r Recipient) IsLocal() bool {
	return r.Kind == LocalRecipient
}

type RecipientSet []Recipient

// Dedup removes repeated local accounts and repeated remote actors, keeping the first occurrence.
func (s RecipientSet) Dedup() RecipientSet {
	seen := make(map[string]struct{}, len(s))
	out := make(RecipientSet, 0, len(s))
	for _, r := range s {
		var k string
		switch {
		case r.IsLocal():
			k = r.Key()
		case r.Endpoint == nil:
			continue
		case r.Actor != nil:
			k = "actor:" + r.Actor.String()
		default:
			k = r.Key()
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

const (
	DeliveryDelivered = "delivered"
	DeliveryFailed    = "failed"
	DeliveryPending   = "pending"
)

// Delivery is the recorded outcome of delivering a job to one recipient key.
type Delivery struct {
	JobKey    string    `json:"job_key"`
	Recipient string    `json:"recipient"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FailedJob is a dispatch job that will not be attempted again.
type FailedJob struct {
	Key        string    `json:"key"`
	AuthorID   int64     `json:"author_id"`
	ObjectType string    `json:"object_type"`
	ObjectID   int64     `json:"object_id"`
	Options    string    `json:"options"`
	Attempts   int       `json:"attempts"`
	Reason     string    `json:"reason"`
	FailedAt   time.Time `json:"failed_at"`
}
