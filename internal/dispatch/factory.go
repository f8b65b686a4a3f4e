// Package dispatch delivers an authored object to everyone who must receive it. The Factory picks the
// strategy from the object's visibility: Public reaches the author's followers, Private only the audience
// the object is restricted to.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/sidereusnuntius/hermes/internal/config"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
)

var (
	ErrInvalidRequest = errors.New("invalid dispatch request")
	ErrDispatched     = errors.New("dispatcher already used")
)

// Dispatcher is bound to a single author and object, and can be dispatched once.
type Dispatcher interface {
	Dispatch(ctx context.Context, journal Journal) (Report, error)
	State() State
}

type Deps struct {
	Resolver    federation.Resolver
	Notifier    federation.Notifier
	Transport   federation.Transport
	CrossPoster federation.CrossPoster
}

type Factory struct {
	deps Deps
	cfg  *config.Configuration
}

func NewFactory(deps Deps, cfg *config.Configuration) *Factory {
	return &Factory{
		deps: deps,
		cfg:  cfg,
	}
}

// Build returns a Public dispatcher for public objects and a Private one otherwise, including for objects
// that carry no visibility at all.
func (f *Factory) Build(author *domain.Author, obj domain.Federatable, opts domain.Options) (Dispatcher, error) {
	if author == nil {
		return nil, fmt.Errorf("%w: missing author", ErrInvalidRequest)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: missing object", ErrInvalidRequest)
	}
	if opts == nil {
		opts = domain.Options{}
	}

	b := &base{
		author: *author,
		obj:    obj,
		opts:   opts,
		deps:   f.deps,
		cfg:    f.cfg,
	}

	if domain.VisibilityOf(obj) == domain.VisibilityPublic {
		return &Public{base: b}, nil
	}
	return &Private{base: b}, nil
}
