// Package maintenance schedules the housekeeping of the dispatch tables.
package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/config"
	"github.com/sidereusnuntius/hermes/internal/db"
)

// Pruner periodically deletes delivery journal entries and failed jobs older than their retention.
type Pruner struct {
	store              db.Maintenance
	deliveryRetention  time.Duration
	failedJobRetention time.Duration
	now                func() time.Time

	c *cron.Cron
}

func NewPruner(store db.Maintenance, cfg *config.Configuration) *Pruner {
	return &Pruner{
		store:              store,
		deliveryRetention:  cfg.DeliveryRetention,
		failedJobRetention: cfg.FailedJobRetention,
		now:                time.Now,
		c:                  cron.New(),
	}
}

// Start schedules Prune according to schedule, a standard cron expression or descriptor such as @hourly.
func (p *Pruner) Start(ctx context.Context, schedule string) error {
	_, err := p.c.AddFunc(schedule, func() {
		if _, err := p.Prune(ctx); err != nil {
			log.Error().Err(err).Msg("pruning dispatch tables")
		}
	})
	if err != nil {
		return err
	}

	p.c.Start()
	log.Info().Str("schedule", schedule).Msg("started pruning schedule")
	return nil
}

// Stop prevents further runs and waits for a running one to finish.
func (p *Pruner) Stop() {
	<-p.c.Stop().Done()
}

func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	now := p.now()
	n, err := p.store.Prune(ctx, now.Add(-p.deliveryRetention), now.Add(-p.failedJobRetention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("rows", n).Msg("pruned dispatch tables")
	}
	return n, nil
}
