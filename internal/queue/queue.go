package queue

import (
	"context"
	"errors"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"
)

// Enqueuer stores a job so that a worker executes it after delay.
type Enqueuer interface {
	Enqueue(ctx context.Context, job DispatchJob, delay time.Duration) (id string, err error)
}

// Queue keeps dispatch jobs in the SQLite database through backlite. A job is claimed by one worker at a
// time; if the worker does not finish it in time, it is released to the others.
type Queue struct {
	client *backlite.Client
}

func New(client *backlite.Client) *Queue {
	return &Queue{client: client}
}

func (q *Queue) Enqueue(ctx context.Context, job DispatchJob, delay time.Duration) (string, error) {
	op := q.client.Add(job).Ctx(ctx)
	if delay > 0 {
		op = op.Wait(delay)
	}

	ids, err := op.Save()
	if err != nil {
		log.Error().Err(err).Str("key", job.Key).Msg("adding dispatch job to queue")
		return "", err
	}
	if len(ids) == 0 {
		return "", errors.New("queue returned no task id")
	}

	log.Debug().
		Str("key", job.Key).
		Str("task", ids[0]).
		Int("attempt", job.Attempt).
		Dur("delay", delay).
		Msg("enqueued dispatch job")
	return ids[0], nil
}

// Start registers p as the handler of dispatch jobs and starts the workers. It must be called once.
func (q *Queue) Start(ctx context.Context, p *Processor) {
	q.client.Register(backlite.NewQueue[DispatchJob](p.Handle))
	q.client.Start(ctx)
	log.Info().Msg("started task queue")
}

// Stop waits for running jobs to finish, or for ctx to be done. It reports whether every worker stopped.
func (q *Queue) Stop(ctx context.Context) bool {
	stopped := q.client.Stop(ctx)
	if !stopped {
		log.Warn().Msg("task queue did not drain before shutdown")
	}
	return stopped
}
