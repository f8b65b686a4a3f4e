// Package web exposes the operator endpoints of the dispatch pipeline: requesting a dispatch by
// reference, and inspecting failed jobs and the deliveries of a job.
package web

import (
	"context"

	"github.com/sidereusnuntius/hermes/internal/config"
	"github.com/sidereusnuntius/hermes/internal/db"
	"github.com/sidereusnuntius/hermes/internal/domain"
)

const (
	FederationPath = "/federation"
	DefaultLimit   = 50
	MaxLimit       = 500
	MaxRequestBody = 64 << 10
)

type Deferrer interface {
	DeferDispatch(ctx context.Context, author *domain.Author, obj domain.Federatable, opts domain.Options) (string, error)
}

type Store interface {
	db.Objects
	db.Deliveries
	db.FailedJobs
}

type Handler struct {
	Config   *config.Configuration
	store    Store
	deferrer Deferrer
}

func New(config *config.Configuration, store Store, deferrer Deferrer) Handler {
	return Handler{
		Config:   config,
		store:    store,
		deferrer: deferrer,
	}
}
