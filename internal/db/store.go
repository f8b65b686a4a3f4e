package db

import (
	"context"
	"time"

	"github.com/sidereusnuntius/hermes/internal/domain"
)

//go:generate mockgen -source=store.go -destination=../mocks/db.go -package=mocks

// Objects loads the records referred to by dispatch jobs.
type Objects interface {
	// FindAuthor returns the local account with the given id, including its key pair.
	FindAuthor(ctx context.Context, id int64) (domain.Author, error)
	FindAuthorByUsername(ctx context.Context, username string) (domain.Author, error)
	// FindObject loads the object of the given type. It fails with ErrUnknownType for type names it
	// does not know and ErrNotFound when the object was deleted.
	FindObject(ctx context.Context, typeName string, id int64) (domain.Federatable, error)
}

// Deliveries is the journal of per-recipient outcomes of each job.
type Deliveries interface {
	// Settled returns the recipients of the job whose delivery is no longer pending.
	Settled(ctx context.Context, jobKey string) (map[string]bool, error)
	// RecordDelivery stores the outcome of a delivery. Settled deliveries are never overwritten.
	RecordDelivery(ctx context.Context, d domain.Delivery) error
	ListDeliveries(ctx context.Context, jobKey string) ([]domain.Delivery, error)
}

type FailedJobs interface {
	// BuryJob records a job that will not be attempted again.
	BuryJob(ctx context.Context, job domain.FailedJob) error
	// ListFailedJobs returns the most recently failed jobs first.
	ListFailedJobs(ctx context.Context, limit int) ([]domain.FailedJob, error)
}

type Maintenance interface {
	// Prune deletes journal entries last updated before deliveries and failed jobs recorded before
	// failed. It returns the number of deleted rows.
	Prune(ctx context.Context, deliveries, failed time.Time) (int64, error)
}
