// Package crosspost publishes public objects to external services. Every service is identified by the
// label used in the service_types dispatch option.
package crosspost

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/conversions"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
)

var ErrUnknownService = errors.New("unknown cross-post service")

type Adapter interface {
	Label() string
	Publish(ctx context.Context, author domain.Author, obj domain.Federatable) error
}

// Registry routes publications to the adapter registered under a label. It implements
// federation.CrossPoster.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Label()] = a
}

func (r *Registry) Publish(ctx context.Context, label string, author domain.Author, obj domain.Federatable) error {
	r.mu.RLock()
	a, ok := r.adapters[label]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownService, label)
	}

	log.Debug().Str("service", label).Str("type", obj.TypeName()).Int64("id", obj.ObjectID()).Msg("cross-posting")
	return a.Publish(ctx, author, obj)
}

// Webhook posts the object's activity, signed by its author, to a fixed endpoint.
type Webhook struct {
	label     string
	endpoint  *url.URL
	base      *url.URL
	transport federation.Transport
}

func NewWebhook(label string, endpoint, base *url.URL, transport federation.Transport) *Webhook {
	return &Webhook{
		label:     label,
		endpoint:  endpoint,
		base:      base,
		transport: transport,
	}
}

func (w *Webhook) Label() string {
	return w.label
}

func (w *Webhook) Publish(ctx context.Context, author domain.Author, obj domain.Federatable) error {
	activity, err := conversions.ToActivity(w.base, author, obj, conversions.PublicAddressing(author))
	if err != nil {
		return err
	}

	body, err := conversions.Serialize(activity)
	if err != nil {
		return err
	}

	return w.transport.SendRemote(ctx, author, w.endpoint, federation.Payload{Body: body})
}
