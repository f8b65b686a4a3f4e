// Package db declares the persistence operations the dispatch pipeline depends on. The SQLite
// implementation lives in db/impl.
package db

import (
	"errors"

	"github.com/sidereusnuntius/hermes/internal/federation"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrUnknownType is returned when an object type name does not match any stored object kind.
	ErrUnknownType = errors.New("unknown object type")
)

// DB is everything the process needs from the database: it loads the records jobs refer to, resolves
// and notifies recipients, and keeps the delivery journal and the failed jobs.
type DB interface {
	Objects
	Deliveries
	FailedJobs
	Maintenance
	federation.Resolver
	federation.Notifier
}
