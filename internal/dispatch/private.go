package dispatch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/conversions"
	"github.com/sidereusnuntius/hermes/internal/envelope"
	"github.com/sidereusnuntius/hermes/internal/federation"
)

// Private delivers an object to the audience it is restricted to, and nobody else. Each remote server
// receives an activity addressed to its own recipients, sealed with the server's key.
type Private struct {
	*base
}

// Dispatch never cross-posts: the service_types option is ignored for private objects.
func (d *Private) Dispatch(ctx context.Context, journal Journal) (Report, error) {
	if err := d.begin(); err != nil {
		return Report{}, err
	}
	if journal == nil {
		journal = NopJournal{}
	}

	recipients, err := d.deps.Resolver.AudienceRecipients(ctx, d.author, d.obj)
	if err != nil {
		return Report{}, fmt.Errorf("resolving audience of %s %d: %w", d.obj.TypeName(), d.obj.ObjectID(), err)
	}

	locals, remotes := partition(recipients)
	log.Debug().
		Str("type", d.obj.TypeName()).
		Int64("id", d.obj.ObjectID()).
		Int("local", len(locals)).
		Int("remote", len(remotes)).
		Msg("private dispatch")

	// Each batch gets its own addressing; converting once up front rejects objects that cannot be
	// expressed as an activity before anyone is contacted.
	if len(remotes) > 0 {
		if _, err = activityBody(d.base, conversions.DirectAddressing(nil)); err != nil {
			return Report{}, fmt.Errorf("building activity of %s %d: %w", d.obj.TypeName(), d.obj.ObjectID(), err)
		}
	}

	return d.deliver(ctx, journal, locals, remotes, d.payload)
}

func (d *Private) payload(b batch) (federation.Payload, error) {
	if b.publicKey == "" {
		return federation.Payload{}, fmt.Errorf("%w: %s", federation.ErrMissingKey, b.endpoint)
	}

	body, err := activityBody(d.base, conversions.DirectAddressing(b.actors()))
	if err != nil {
		return federation.Payload{}, err
	}

	sealed, err := envelope.Seal(body, b.publicKey)
	if err != nil {
		return federation.Payload{}, fmt.Errorf("%w: %w", federation.ErrMissingKey, err)
	}

	return federation.Payload{
		Body:        sealed,
		ContentType: envelope.ContentType,
	}, nil
}

func activityBody(b *base, addr conversions.Addressing) ([]byte, error) {
	activity, err := conversions.ToActivity(b.cfg.Url, b.author, b.obj, addr)
	if err != nil {
		return nil, err
	}
	return conversions.Serialize(activity)
}
