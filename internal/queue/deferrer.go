package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/dispatch"
	"github.com/sidereusnuntius/hermes/internal/domain"
)

// Deferrer is the entry point for federating an object: it enqueues a job and returns, leaving recipient
// resolution and delivery to the workers.
type Deferrer struct {
	enqueuer Enqueuer
}

func NewDeferrer(enqueuer Enqueuer) *Deferrer {
	return &Deferrer{enqueuer: enqueuer}
}

// DeferDispatch enqueues exactly one job referring to author and obj, and returns its key.
func (d *Deferrer) DeferDispatch(ctx context.Context, author *domain.Author, obj domain.Federatable, opts domain.Options) (string, error) {
	if author == nil {
		return "", fmt.Errorf("%w: missing author", dispatch.ErrInvalidRequest)
	}
	if obj == nil {
		return "", fmt.Errorf("%w: missing object", dispatch.ErrInvalidRequest)
	}

	options, err := EncodeOptions(opts)
	if err != nil {
		return "", fmt.Errorf("%w: options: %w", dispatch.ErrInvalidRequest, err)
	}

	job := DispatchJob{
		Key:        uuid.NewString(),
		AuthorID:   author.ID,
		ObjectType: obj.TypeName(),
		ObjectID:   obj.ObjectID(),
		Options:    options,
	}

	if _, err = d.enqueuer.Enqueue(ctx, job, 0); err != nil {
		return "", err
	}

	log.Debug().Str("key", job.Key).Str("type", job.ObjectType).Int64("id", job.ObjectID).Msg("dispatch deferred")
	return job.Key, nil
}
