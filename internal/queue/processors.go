package queue

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/gruf/go-mutexes"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/db"
	"github.com/sidereusnuntius/hermes/internal/dispatch"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
)

// Store is what the worker needs from the database.
type Store interface {
	db.Objects
	db.Deliveries
	db.FailedJobs
}

type Builder interface {
	Build(author *domain.Author, obj domain.Federatable, opts domain.Options) (dispatch.Dispatcher, error)
}

// Processor executes dispatch jobs. Deliveries that fail transiently are retried by enqueuing the job
// again; jobs that can never complete are recorded as failed.
type Processor struct {
	store    Store
	builder  Builder
	enqueuer Enqueuer
	retry    RetryPolicy
	locks    *mutexes.MutexMap
}

func NewProcessor(store Store, builder Builder, enqueuer Enqueuer, retry RetryPolicy) *Processor {
	locks := mutexes.MutexMap{}
	return &Processor{
		store:    store,
		builder:  builder,
		enqueuer: enqueuer,
		retry:    retry,
		locks:    &locks,
	}
}

// Handle runs one attempt of a job. Errors it returns leave the job to backlite's own retries, and are
// limited to failures of the database.
func (p *Processor) Handle(ctx context.Context, job DispatchJob) error {
	unlock := p.locks.Lock(job.Key)
	defer unlock()

	logger := log.With().
		Str("key", job.Key).
		Str("type", job.ObjectType).
		Int64("id", job.ObjectID).
		Int("attempt", job.Attempt).
		Logger()
	logger.Debug().Msg("processing dispatch job")

	author, err := p.store.FindAuthor(ctx, job.AuthorID)
	if err != nil {
		return p.buryIfStale(ctx, job, err)
	}

	obj, err := p.store.FindObject(ctx, job.ObjectType, job.ObjectID)
	if err != nil {
		return p.buryIfStale(ctx, job, err)
	}

	opts, err := job.DecodeOptions()
	if err != nil {
		return p.bury(ctx, job, fmt.Sprintf("invalid options: %s", err))
	}

	dispatcher, err := p.builder.Build(&author, obj, opts)
	if err != nil {
		return p.bury(ctx, job, err.Error())
	}

	report, err := dispatcher.Dispatch(ctx, journal{store: p.store, jobKey: job.Key})
	if err != nil {
		if errors.Is(err, federation.ErrPermanent) || errors.Is(err, db.ErrUnknownType) {
			return p.bury(ctx, job, err.Error())
		}
		logger.Warn().Err(err).Msg("dispatch failed")
		return p.retryOrBury(ctx, job, err.Error())
	}

	logger.Info().
		Int("delivered", len(report.Delivered)).
		Int("skipped", len(report.Skipped)).
		Int("failed", len(report.Failed)).
		Str("state", report.State().String()).
		Msg("dispatch finished")

	if report.Retryable() {
		return p.retryOrBury(ctx, job, report.Reason())
	}
	return nil
}

// buryIfStale fails the job for good when the records it refers to are gone.
func (p *Processor) buryIfStale(ctx context.Context, job DispatchJob, err error) error {
	if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrUnknownType) {
		return p.bury(ctx, job, err.Error())
	}
	return err
}

func (p *Processor) retryOrBury(ctx context.Context, job DispatchJob, reason string) error {
	if p.retry.Exhausted(job.Attempt) {
		return p.bury(ctx, job, reason)
	}

	job.Attempt++
	delay := p.retry.Delay(job.Attempt)
	if _, err := p.enqueuer.Enqueue(ctx, job, delay); err != nil {
		return err
	}
	log.Info().Str("key", job.Key).Int("attempt", job.Attempt).Dur("delay", delay).Msg("dispatch rescheduled")
	return nil
}

func (p *Processor) bury(ctx context.Context, job DispatchJob, reason string) error {
	log.Error().
		Str("key", job.Key).
		Str("type", job.ObjectType).
		Int64("id", job.ObjectID).
		Str("reason", reason).
		Msg("dispatch job failed permanently")
	return p.store.BuryJob(ctx, job.failed(reason))
}

// journal binds the delivery journal to a single job.
type journal struct {
	store  db.Deliveries
	jobKey string
}

func (j journal) Settled(ctx context.Context) (map[string]bool, error) {
	return j.store.Settled(ctx, j.jobKey)
}

func (j journal) Record(ctx context.Context, recipient, status, reason string) error {
	return j.store.RecordDelivery(ctx, domain.Delivery{
		JobKey:    j.jobKey,
		Recipient: recipient,
		Status:    status,
		Reason:    reason,
	})
}
