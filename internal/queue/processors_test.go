package queue

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/hermes/internal/config"
	"github.com/sidereusnuntius/hermes/internal/db"
	"github.com/sidereusnuntius/hermes/internal/dispatch"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
	"github.com/sidereusnuntius/hermes/internal/mocks"
	"go.uber.org/mock/gomock"
)

var ctx = context.Background()

var cfg = &config.Configuration{
	Url:             toURL("https://pod.example/"),
	SendConcurrency: 4,
	SendTimeout:     5 * time.Second,
	MaxAttempts:     3,
	RetryInitial:    30 * time.Second,
	RetryMax:        time.Hour,
}

var author = domain.Author{
	ID:       1,
	Username: "alice",
	ApID:     toURL("https://pod.example/u/alice"),
}

// store joins the database mocks into a Store.
type store struct {
	*mocks.MockObjects
	*mocks.MockDeliveries
	*mocks.MockFailedJobs
}

type fakeEnqueuer struct {
	mu     sync.Mutex
	jobs   []DispatchJob
	delays []time.Duration
	err    error
}

func (e *fakeEnqueuer) Enqueue(_ context.Context, job DispatchJob, delay time.Duration) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return "", e.err
	}
	e.jobs = append(e.jobs, job)
	e.delays = append(e.delays, delay)
	return "task-" + job.Key, nil
}

type fixture struct {
	objects    *mocks.MockObjects
	deliveries *mocks.MockDeliveries
	failed     *mocks.MockFailedJobs
	resolver   *mocks.MockResolver
	notifier   *mocks.MockNotifier
	transport  *mocks.MockTransport
	enqueuer   *fakeEnqueuer
	processor  *Processor
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		objects:    mocks.NewMockObjects(ctrl),
		deliveries: mocks.NewMockDeliveries(ctrl),
		failed:     mocks.NewMockFailedJobs(ctrl),
		resolver:   mocks.NewMockResolver(ctrl),
		notifier:   mocks.NewMockNotifier(ctrl),
		transport:  mocks.NewMockTransport(ctrl),
		enqueuer:   &fakeEnqueuer{},
	}

	factory := dispatch.NewFactory(dispatch.Deps{
		Resolver:    f.resolver,
		Notifier:    f.notifier,
		Transport:   f.transport,
		CrossPoster: mocks.NewMockCrossPoster(ctrl),
	}, cfg)
	f.processor = NewProcessor(store{f.objects, f.deliveries, f.failed}, factory, f.enqueuer, NewRetryPolicy(cfg))
	return f
}

func (f *fixture) loads(obj domain.Federatable) {
	f.objects.EXPECT().FindAuthor(gomock.Any(), author.ID).Return(author, nil)
	f.objects.EXPECT().FindObject(gomock.Any(), obj.TypeName(), obj.ObjectID()).Return(obj, nil)
}

func (f *fixture) journal(settled map[string]bool) *[]domain.Delivery {
	var (
		mu       sync.Mutex
		recorded []domain.Delivery
	)
	f.deliveries.EXPECT().Settled(gomock.Any(), gomock.Any()).Return(settled, nil)
	f.deliveries.EXPECT().RecordDelivery(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d domain.Delivery) error {
			mu.Lock()
			defer mu.Unlock()
			recorded = append(recorded, d)
			return nil
		}).
		AnyTimes()
	return &recorded
}

func job(obj domain.Federatable, attempt int) DispatchJob {
	return DispatchJob{
		Key:        "job-1",
		AuthorID:   author.ID,
		ObjectType: obj.TypeName(),
		ObjectID:   obj.ObjectID(),
		Options:    json.RawMessage(`{}`),
		Attempt:    attempt,
	}
}

func remote(host string) domain.Recipient {
	return domain.Remote(toURL("https://"+host+"/u/someone"), toURL("https://"+host+"/inbox"), "")
}

func TestHandle_PublicScenario(t *testing.T) {
	f := newFixture(t)
	post := domain.Post{ID: 7, AuthorID: 1, Content: "hello", Public: true}
	f.loads(post)
	recorded := f.journal(nil)

	f.resolver.EXPECT().PublicRecipients(gomock.Any(), author).Return(domain.RecipientSet{
		domain.Local(2), domain.Local(3), domain.Local(4), remote("a.example"), remote("b.example"),
	}, nil)
	f.notifier.EXPECT().NotifyLocal(gomock.Any(), gomock.Any(), post).Return(nil).Times(3)
	f.transport.EXPECT().SendRemote(gomock.Any(), author, gomock.Any(), gomock.Any()).Return(nil).Times(2)

	if err := f.processor.Handle(ctx, job(post, 0)); err != nil {
		t.Fatal(err)
	}

	if len(f.enqueuer.jobs) != 0 {
		t.Errorf("a completed job must not be rescheduled: %+v", f.enqueuer.jobs)
	}
	if len(*recorded) != 5 {
		t.Fatalf("expected 5 journal entries, got %+v", *recorded)
	}
	for _, d := range *recorded {
		if d.JobKey != "job-1" || d.Status != domain.DeliveryDelivered {
			t.Errorf("unexpected journal entry %+v", d)
		}
	}
}

func TestHandle_PrivateScenario(t *testing.T) {
	f := newFixture(t)
	post := domain.Post{ID: 8, AuthorID: 1, Content: "only B"}
	f.loads(post)
	f.journal(nil)

	f.resolver.EXPECT().AudienceRecipients(gomock.Any(), author, post).Return(domain.RecipientSet{domain.Local(42)}, nil)
	f.notifier.EXPECT().NotifyLocal(gomock.Any(), int64(42), post).Return(nil).Times(1)

	if err := f.processor.Handle(ctx, job(post, 0)); err != nil {
		t.Fatal(err)
	}
}

func TestHandle_TransientFailureReschedules(t *testing.T) {
	f := newFixture(t)
	post := domain.Post{ID: 7, Public: true}
	f.loads(post)
	f.journal(nil)

	f.resolver.EXPECT().PublicRecipients(gomock.Any(), author).
		Return(domain.RecipientSet{remote("down.example"), remote("up.example")}, nil)
	f.transport.EXPECT().SendRemote(gomock.Any(), author, toURL("https://down.example/inbox"), gomock.Any()).
		Return(federation.ErrTransient)
	f.transport.EXPECT().SendRemote(gomock.Any(), author, toURL("https://up.example/inbox"), gomock.Any()).
		Return(nil)

	if err := f.processor.Handle(ctx, job(post, 0)); err != nil {
		t.Fatal(err)
	}

	if len(f.enqueuer.jobs) != 1 {
		t.Fatalf("expected the job to be rescheduled once, got %d", len(f.enqueuer.jobs))
	}
	next := f.enqueuer.jobs[0]
	expect := job(post, 1)
	if diff := cmp.Diff(expect, next); diff != "" {
		t.Error(diff)
	}
	if f.enqueuer.delays[0] != cfg.RetryInitial {
		t.Errorf("expected delay %s, got %s", cfg.RetryInitial, f.enqueuer.delays[0])
	}
}

func TestHandle_ExhaustedRetriesBury(t *testing.T) {
	f := newFixture(t)
	post := domain.Post{ID: 7, Public: true}
	f.loads(post)
	f.journal(nil)

	f.resolver.EXPECT().PublicRecipients(gomock.Any(), author).Return(domain.RecipientSet{remote("down.example")}, nil)
	f.transport.EXPECT().SendRemote(gomock.Any(), author, gomock.Any(), gomock.Any()).Return(federation.ErrTransient)
	f.failed.EXPECT().BuryJob(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, j domain.FailedJob) error {
			if j.Key != "job-1" || j.Attempts != cfg.MaxAttempts {
				t.Errorf("unexpected failed job %+v", j)
			}
			return nil
		}).
		Times(1)

	if err := f.processor.Handle(ctx, job(post, cfg.MaxAttempts-1)); err != nil {
		t.Fatal(err)
	}
	if len(f.enqueuer.jobs) != 0 {
		t.Error("an exhausted job must not be rescheduled")
	}
}

func TestHandle_PermanentFailureCompletes(t *testing.T) {
	f := newFixture(t)
	post := domain.Post{ID: 7, Public: true}
	f.loads(post)
	recorded := f.journal(nil)

	f.resolver.EXPECT().PublicRecipients(gomock.Any(), author).Return(domain.RecipientSet{remote("a.example")}, nil)
	f.transport.EXPECT().SendRemote(gomock.Any(), author, gomock.Any(), gomock.Any()).Return(federation.ErrRejected)

	if err := f.processor.Handle(ctx, job(post, 0)); err != nil {
		t.Fatal(err)
	}
	if len(f.enqueuer.jobs) != 0 {
		t.Error("a permanent failure must not be retried")
	}
	if len(*recorded) != 1 || (*recorded)[0].Status != domain.DeliveryFailed {
		t.Errorf("expected the failure to be journaled, got %+v", *recorded)
	}
}

func TestHandle_UnsupportedObjectBuries(t *testing.T) {
	anonymous := domain.Author{ID: author.ID, Username: "alice"}
	post := domain.Post{ID: 7, Public: true}
	f := newFixture(t)
	f.objects.EXPECT().FindAuthor(gomock.Any(), author.ID).Return(anonymous, nil)
	f.objects.EXPECT().FindObject(gomock.Any(), post.TypeName(), post.ObjectID()).Return(post, nil)

	f.resolver.EXPECT().PublicRecipients(gomock.Any(), anonymous).
		Return(domain.RecipientSet{remote("a.example"), remote("b.example")}, nil)

	var buried domain.FailedJob
	f.failed.EXPECT().BuryJob(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, j domain.FailedJob) error {
			buried = j
			return nil
		})

	if err := f.processor.Handle(ctx, job(post, 0)); err != nil {
		t.Fatal(err)
	}
	if len(f.enqueuer.jobs) != 0 {
		t.Error("an unsupported object must not be retried")
	}
	if buried.Key != "job-1" || buried.Attempts != 1 {
		t.Errorf("unexpected failed job %+v", buried)
	}
}

func TestHandle_SkipsSettledRecipients(t *testing.T) {
	f := newFixture(t)
	post := domain.Post{ID: 7, Public: true}
	f.loads(post)
	f.journal(map[string]bool{"local:2": true})

	f.resolver.EXPECT().PublicRecipients(gomock.Any(), author).
		Return(domain.RecipientSet{domain.Local(2), domain.Local(3)}, nil)
	f.notifier.EXPECT().NotifyLocal(gomock.Any(), int64(3), post).Return(nil).Times(1)

	if err := f.processor.Handle(ctx, job(post, 1)); err != nil {
		t.Fatal(err)
	}
}

func TestHandle_StaleReference(t *testing.T) {
	cases := []struct {
		name      string
		authorErr error
		objectErr error
	}{
		{"author deleted", db.ErrNotFound, nil},
		{"object deleted", nil, db.ErrNotFound},
		{"unknown type", nil, db.ErrUnknownType},
	}

	post := domain.Post{ID: 7, Public: true}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			f.objects.EXPECT().FindAuthor(gomock.Any(), author.ID).Return(author, c.authorErr)
			if c.authorErr == nil {
				f.objects.EXPECT().FindObject(gomock.Any(), post.TypeName(), post.ObjectID()).Return(nil, c.objectErr)
			}
			f.failed.EXPECT().BuryJob(gomock.Any(), gomock.Any()).Return(nil).Times(1)

			if err := f.processor.Handle(ctx, job(post, 0)); err != nil {
				t.Errorf("unexpected error: %s", err)
			}
			if len(f.enqueuer.jobs) != 0 {
				t.Error("a stale job must not be rescheduled")
			}
		})
	}
}

func TestHandle_StoreFailureIsReturned(t *testing.T) {
	f := newFixture(t)
	locked := errors.New("database is locked")
	f.objects.EXPECT().FindAuthor(gomock.Any(), author.ID).Return(domain.Author{}, locked)

	err := f.processor.Handle(ctx, job(domain.Post{ID: 7}, 0))
	if !errors.Is(err, locked) {
		t.Errorf("expected \"%s\", got \"%v\"", locked, err)
	}
}

func TestHandle_ResolverFailureReschedules(t *testing.T) {
	f := newFixture(t)
	post := domain.Post{ID: 7, Public: true}
	f.loads(post)
	f.resolver.EXPECT().PublicRecipients(gomock.Any(), author).Return(nil, errors.New("database is locked"))

	if err := f.processor.Handle(ctx, job(post, 0)); err != nil {
		t.Fatal(err)
	}
	if len(f.enqueuer.jobs) != 1 {
		t.Errorf("expected the job to be rescheduled, got %+v", f.enqueuer.jobs)
	}
}

func TestHandle_InvalidOptionsBury(t *testing.T) {
	f := newFixture(t)
	post := domain.Post{ID: 7, Public: true}
	f.loads(post)
	f.failed.EXPECT().BuryJob(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	j := job(post, 0)
	j.Options = json.RawMessage(`["not", "a", "map"]`)
	if err := f.processor.Handle(ctx, j); err != nil {
		t.Fatal(err)
	}
}

func toURL(u string) *url.URL {
	url, _ := url.Parse(u)
	return url
}
