package impl

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/db"
	"github.com/sidereusnuntius/hermes/internal/domain"
)

// Every recipient query selects the same columns: the id of a local account, or the IRI, endpoint and
// server key of a remote actor. Remote actors are reached through their server's shared inbox if known.
const recipientColumns = `m.local_account_id, ra.ap_id, COALESCE(s.shared_inbox, ra.inbox), s.public_key`

const remoteJoins = `
	LEFT JOIN remote_actors ra ON ra.id = m.remote_actor_id
	LEFT JOIN servers s ON s.id = ra.server_id`

func (d *dbImpl) PublicRecipients(ctx context.Context, author domain.Author) (domain.RecipientSet, error) {
	return d.queryRecipients(ctx, author.ID,
		`SELECT `+recipientColumns+` FROM (
			SELECT local_follower_id AS local_account_id, remote_follower_id AS remote_actor_id
			FROM follows WHERE followee_id = ? AND accepted
		) m`+remoteJoins,
		author.ID)
}

// AudienceRecipients returns the members of the aspects a post is shared with. Comments and likes reach
// the audience of their post and the post's author; a profile reaches every aspect of its owner.
func (d *dbImpl) AudienceRecipients(ctx context.Context, author domain.Author, obj domain.Federatable) (domain.RecipientSet, error) {
	var postId int64
	switch o := obj.(type) {
	case domain.Post:
		postId = o.ID
	case domain.Comment:
		postId = o.PostID
	case domain.Like:
		postId = o.PostID
	case domain.Profile:
		return d.queryRecipients(ctx, author.ID,
			`SELECT DISTINCT `+recipientColumns+`
			FROM aspects a JOIN aspect_members m ON m.aspect_id = a.id`+remoteJoins+`
			WHERE a.account_id = ?`,
			author.ID)
	default:
		return nil, fmt.Errorf("%w: %s", db.ErrUnknownType, obj.TypeName())
	}

	recipients, err := d.queryRecipients(ctx, author.ID,
		`SELECT DISTINCT `+recipientColumns+`
		FROM post_aspects pa JOIN aspect_members m ON m.aspect_id = pa.aspect_id`+remoteJoins+`
		WHERE pa.post_id = ?`,
		postId)
	if err != nil {
		return nil, err
	}

	if obj.TypeName() == domain.PostType {
		return recipients, nil
	}

	var postAuthor int64
	err = d.db.QueryRowContext(ctx, `SELECT author_id FROM posts WHERE id = ?`, postId).Scan(&postAuthor)
	if err != nil {
		return nil, fmt.Errorf("%w: post %d", d.HandleError(err), postId)
	}
	if postAuthor != author.ID {
		recipients = append(recipients, domain.Local(postAuthor))
	}
	return recipients, nil
}

// queryRecipients runs a recipient query, leaving out the local account self.
func (d *dbImpl) queryRecipients(ctx context.Context, self int64, query string, args ...any) (domain.RecipientSet, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	var recipients domain.RecipientSet
	for rows.Next() {
		var (
			local     sql.NullInt64
			apId      sql.NullString
			endpoint  sql.NullString
			publicKey sql.NullString
		)
		if err = rows.Scan(&local, &apId, &endpoint, &publicKey); err != nil {
			return nil, d.HandleError(err)
		}

		if local.Valid {
			if local.Int64 != self {
				recipients = append(recipients, domain.Local(local.Int64))
			}
			continue
		}

		actor, err := url.Parse(apId.String)
		if err != nil {
			log.Warn().Err(err).Str("actor", apId.String).Msg("skipping remote actor with invalid IRI")
			continue
		}
		inbox, err := url.Parse(endpoint.String)
		if err != nil || !endpoint.Valid {
			log.Warn().Str("actor", apId.String).Msg("skipping remote actor without inbox")
			continue
		}
		recipients = append(recipients, domain.Remote(actor, inbox, publicKey.String))
	}

	return recipients, d.HandleError(rows.Err())
}

func (d *dbImpl) NotifyLocal(ctx context.Context, accountID int64, obj domain.Federatable) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO notifications (account_id, object_type, object_id, created) VALUES (?, ?, ?, ?)`,
		accountID, obj.TypeName(), obj.ObjectID(), time.Now().Unix())
	return d.HandleError(err)
}
