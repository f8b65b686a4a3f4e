package queue

import (
	"encoding/json"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/sidereusnuntius/hermes/internal/domain"
)

const (
	DispatchQueue = "dispatch"
)

// DispatchJob refers to the object to dispatch instead of carrying it, so the worker always loads the
// current version of the author and the object. Attempt counts the previous executions of the job.
type DispatchJob struct {
	Key        string
	AuthorID   int64
	ObjectType string
	ObjectID   int64
	Options    json.RawMessage
	Attempt    int
}

// Config sets the retry policy of backlite itself, which only applies when a job fails before the
// dispatch runs, e.g. because the database is unavailable. Failed deliveries are rescheduled by the
// Processor.
func (j DispatchJob) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        DispatchQueue,
		MaxAttempts: 5,
		Backoff:     30 * time.Second,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data: &backlite.RetainData{
				OnlyFailed: true,
			},
		},
	}
}

func (j DispatchJob) DecodeOptions() (domain.Options, error) {
	opts := domain.Options{}
	if len(j.Options) == 0 {
		return opts, nil
	}
	err := json.Unmarshal(j.Options, &opts)
	return opts, err
}

func EncodeOptions(opts domain.Options) (json.RawMessage, error) {
	if opts == nil {
		opts = domain.Options{}
	}
	return json.Marshal(opts)
}

func (j DispatchJob) failed(reason string) domain.FailedJob {
	return domain.FailedJob{
		Key:        j.Key,
		AuthorID:   j.AuthorID,
		ObjectType: j.ObjectType,
		ObjectID:   j.ObjectID,
		Options:    string(j.Options),
		Attempts:   j.Attempt + 1,
		Reason:     reason,
		FailedAt:   time.Now(),
	}
}
