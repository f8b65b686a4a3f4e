package dispatch

import (
	"context"

	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
)

// Journal keeps the outcome of each delivery of a job across attempts. Recipients it reports as settled
// were either reached or failed permanently, and are not contacted again.
type Journal interface {
	Settled(ctx context.Context) (map[string]bool, error)
	Record(ctx context.Context, recipient, status, reason string) error
}

// NopJournal remembers nothing, so every recipient is contacted on every dispatch.
type NopJournal struct{}

func (NopJournal) Settled(context.Context) (map[string]bool, error) {
	return nil, nil
}

func (NopJournal) Record(context.Context, string, string, string) error {
	return nil
}

func statusOf(err error) (status, reason string) {
	switch {
	case err == nil:
		return domain.DeliveryDelivered, ""
	case federation.IsTransient(err):
		return domain.DeliveryPending, err.Error()
	default:
		return domain.DeliveryFailed, err.Error()
	}
}
