package dispatch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/conversions"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
)

// Public delivers an object anyone may read to all of the author's followers and, when enabled, to the
// relay. The same signed activity is sent to every remote server.
type Public struct {
	*base
}

func (d *Public) Dispatch(ctx context.Context, journal Journal) (Report, error) {
	if err := d.begin(); err != nil {
		return Report{}, err
	}
	if journal == nil {
		journal = NopJournal{}
	}

	recipients, err := d.deps.Resolver.PublicRecipients(ctx, d.author)
	if err != nil {
		return Report{}, fmt.Errorf("resolving followers of %d: %w", d.author.ID, err)
	}
	if d.cfg.RelayEnabled && d.cfg.RelayInbox != nil {
		recipients = append(recipients, domain.Remote(nil, d.cfg.RelayInbox, ""))
	}

	locals, remotes := partition(recipients)
	log.Debug().
		Str("type", d.obj.TypeName()).
		Int64("id", d.obj.ObjectID()).
		Int("local", len(locals)).
		Int("remote", len(remotes)).
		Msg("public dispatch")

	// An object that cannot be expressed as an activity fails the whole dispatch before anyone is
	// contacted.
	var payload federation.Payload
	if len(remotes) > 0 {
		payload.Body, err = activityBody(d.base, conversions.PublicAddressing(d.author))
		if err != nil {
			return Report{}, fmt.Errorf("building activity of %s %d: %w", d.obj.TypeName(), d.obj.ObjectID(), err)
		}
	}

	d.crossPost(ctx, journal)

	return d.deliver(ctx, journal, locals, remotes, func(batch) (federation.Payload, error) {
		return payload, nil
	})
}

// serviceKey is the journal entry of a cross-post.
func serviceKey(label string) string {
	return "service:" + label
}

// crossPost hands the object to every service named in the options that was not tried in an earlier
// attempt. Failures are only logged.
func (d *Public) crossPost(ctx context.Context, journal Journal) {
	services := d.opts.ServiceTypes()
	if len(services) == 0 || d.deps.CrossPoster == nil {
		return
	}

	settled, err := journal.Settled(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("reading cross-post journal")
	}

	seen := make(map[string]bool, len(services))
	for _, label := range services {
		if seen[label] || settled[serviceKey(label)] {
			continue
		}
		seen[label] = true

		err := d.deps.CrossPoster.Publish(ctx, label, d.author, d.obj)
		if err != nil {
			log.Warn().Err(err).Str("service", label).Int64("id", d.obj.ObjectID()).Msg("cross-post failed")
		}

		// Cross-posts are settled either way and never retried.
		status, reason := domain.DeliveryDelivered, ""
		if err != nil {
			status, reason = domain.DeliveryFailed, err.Error()
		}
		if jerr := journal.Record(ctx, serviceKey(label), status, reason); jerr != nil {
			log.Error().Err(jerr).Str("service", label).Msg("failed to record cross-post")
		}
	}
}
