package dispatch

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/config"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
	"golang.org/x/sync/errgroup"
)

// batch is the set of remote recipients served by a single request.
type batch struct {
	endpoint   *url.URL
	recipients []domain.Recipient
	// publicKey is the key material of the destination server, if any recipient carries it.
	publicKey string
}

func (b batch) key() string {
	return b.recipients[0].Key()
}

func (b batch) actors() []*url.URL {
	actors := make([]*url.URL, 0, len(b.recipients))
	for _, r := range b.recipients {
		if r.Actor != nil {
			actors = append(actors, r.Actor)
		}
	}
	return actors
}

// partition deduplicates set and splits it into local accounts and remote batches, one per endpoint.
func partition(set domain.RecipientSet) (locals []domain.Recipient, remotes []batch) {
	index := make(map[string]int)
	for _, r := range set.Dedup() {
		if r.IsLocal() {
			locals = append(locals, r)
			continue
		}

		k := r.Key()
		i, ok := index[k]
		if !ok {
			i = len(remotes)
			index[k] = i
			remotes = append(remotes, batch{endpoint: r.Endpoint})
		}
		remotes[i].recipients = append(remotes[i].recipients, r)
		if remotes[i].publicKey == "" {
			remotes[i].publicKey = r.PublicKey
		}
	}
	return
}

// payloadFunc builds the payload sent to one batch.
type payloadFunc func(b batch) (federation.Payload, error)

// base holds what both strategies share: the request they are bound to and the delivery machinery.
type base struct {
	author domain.Author
	obj    domain.Federatable
	opts   domain.Options
	deps   Deps
	cfg    *config.Configuration

	used  atomic.Bool
	state atomic.Uint32
}

func (b *base) State() State {
	return State(b.state.Load())
}

func (b *base) setState(s State) {
	b.state.Store(uint32(s))
}

// begin marks the dispatcher as used. It fails on every call but the first.
func (b *base) begin() error {
	if !b.used.CompareAndSwap(false, true) {
		return ErrDispatched
	}
	b.setState(StateResolving)
	return nil
}

type unit struct {
	key  string
	send func(ctx context.Context) error
}

// deliver contacts every local and remote recipient that is not settled in journal, concurrently and
// with a timeout per send. A failure never prevents the other deliveries.
func (b *base) deliver(ctx context.Context, journal Journal, locals []domain.Recipient, remotes []batch, payload payloadFunc) (Report, error) {
	b.setState(StateDelivering)

	settled, err := journal.Settled(ctx)
	if err != nil {
		return Report{}, err
	}

	units := make([]unit, 0, len(locals)+len(remotes))
	for _, r := range locals {
		accountID := r.AccountID
		units = append(units, unit{
			key: r.Key(),
			send: func(ctx context.Context) error {
				return b.deps.Notifier.NotifyLocal(ctx, accountID, b.obj)
			},
		})
	}
	for _, rb := range remotes {
		units = append(units, unit{
			key: rb.key(),
			send: func(ctx context.Context) error {
				p, err := payload(rb)
				if err != nil {
					return err
				}
				return b.deps.Transport.SendRemote(ctx, b.author, rb.endpoint, p)
			},
		})
	}

	var (
		mu     sync.Mutex
		report Report
	)
	var g errgroup.Group
	g.SetLimit(max(b.cfg.SendConcurrency, 1))
	for _, u := range units {
		if settled[u.key] {
			report.Skipped = append(report.Skipped, u.key)
			continue
		}

		g.Go(func() error {
			sendCtx, cancel := ctx, context.CancelFunc(func() {})
			if b.cfg.SendTimeout > 0 {
				sendCtx, cancel = context.WithTimeout(ctx, b.cfg.SendTimeout)
			}
			err := u.send(sendCtx)
			cancel()

			status, reason := statusOf(err)
			if jerr := journal.Record(ctx, u.key, status, reason); jerr != nil {
				log.Error().Err(jerr).Str("recipient", u.key).Msg("failed to record delivery")
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().Err(err).Str("recipient", u.key).Msg("delivery failed")
				report.Failed = append(report.Failed, failure(u.key, err))
			} else {
				report.Delivered = append(report.Delivered, u.key)
			}
			return nil
		})
	}
	_ = g.Wait()

	b.setState(report.State())
	return report, nil
}
