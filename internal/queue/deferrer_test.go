package queue

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sidereusnuntius/hermes/internal/dispatch"
	"github.com/sidereusnuntius/hermes/internal/domain"
)

func TestDeferDispatch(t *testing.T) {
	cases := []struct {
		name        string
		obj         domain.Federatable
		opts        domain.Options
		expectOpts  domain.Options
		expectType  string
		expectObjId int64
	}{
		{"post without options", domain.Post{ID: 7, Public: true}, nil, domain.Options{}, domain.PostType, 7},
		{"comment with service", domain.Comment{ID: 3}, domain.Options{"service_types": "tumblr"}, domain.Options{"service_types": "tumblr"}, domain.CommentType, 3},
		{"profile", domain.Profile{AccountID: 1}, domain.Options{"custom": true}, domain.Options{"custom": true}, domain.ProfileType, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			enqueuer := &fakeEnqueuer{}
			deferrer := NewDeferrer(enqueuer)

			key, err := deferrer.DeferDispatch(ctx, &author, c.obj, c.opts)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if _, err = uuid.Parse(key); err != nil {
				t.Errorf("expected a uuid key, got %q", key)
			}

			if len(enqueuer.jobs) != 1 {
				t.Fatalf("expected exactly one job, got %d", len(enqueuer.jobs))
			}
			job := enqueuer.jobs[0]
			if job.Key != key || job.AuthorID != author.ID || job.ObjectType != c.expectType ||
				job.ObjectID != c.expectObjId || job.Attempt != 0 {
				t.Errorf("unexpected job %+v", job)
			}
			if enqueuer.delays[0] != 0 {
				t.Errorf("a new job must run immediately, got delay %s", enqueuer.delays[0])
			}

			opts, err := job.DecodeOptions()
			if err != nil {
				t.Fatal(err)
			}
			if len(opts) != len(c.expectOpts) {
				t.Errorf("expected options %v, got %v", c.expectOpts, opts)
			}
			for k, v := range c.expectOpts {
				if opts[k] != v {
					t.Errorf("option %s: expected %v, got %v", k, v, opts[k])
				}
			}
		})
	}
}

func TestDeferDispatch_InvalidRequest(t *testing.T) {
	cases := []struct {
		name   string
		author *domain.Author
		obj    domain.Federatable
		opts   domain.Options
	}{
		{"no author", nil, domain.Post{ID: 1}, nil},
		{"no object", &author, nil, nil},
		{"options not serializable", &author, domain.Post{ID: 1}, domain.Options{"bad": make(chan int)}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			enqueuer := &fakeEnqueuer{}
			_, err := NewDeferrer(enqueuer).DeferDispatch(ctx, c.author, c.obj, c.opts)
			if !errors.Is(err, dispatch.ErrInvalidRequest) {
				t.Errorf("expected \"%s\", got \"%v\"", dispatch.ErrInvalidRequest, err)
			}
			if len(enqueuer.jobs) != 0 {
				t.Error("an invalid request must not be enqueued")
			}
		})
	}
}

func TestDeferDispatch_EnqueueFailure(t *testing.T) {
	failure := errors.New("disk full")
	_, err := NewDeferrer(&fakeEnqueuer{err: failure}).DeferDispatch(ctx, &author, domain.Post{ID: 1}, nil)
	if !errors.Is(err, failure) {
		t.Errorf("expected \"%s\", got \"%v\"", failure, err)
	}
}
