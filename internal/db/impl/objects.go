package impl

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/sidereusnuntius/hermes/internal/db"
	"github.com/sidereusnuntius/hermes/internal/domain"
)

const authorColumns = `SELECT id, username, name, ap_id, public_key, private_key FROM accounts`

func (d *dbImpl) FindAuthor(ctx context.Context, id int64) (domain.Author, error) {
	author, err := scanAuthor(d.db.QueryRowContext(ctx, authorColumns+` WHERE id = ?`, id))
	if err != nil {
		return domain.Author{}, fmt.Errorf("%w: author %d", d.HandleError(err), id)
	}
	return author, nil
}

func (d *dbImpl) FindAuthorByUsername(ctx context.Context, username string) (domain.Author, error) {
	author, err := scanAuthor(d.db.QueryRowContext(ctx, authorColumns+` WHERE username = ?`, username))
	if err != nil {
		return domain.Author{}, fmt.Errorf("%w: author %s", d.HandleError(err), username)
	}
	return author, nil
}

func scanAuthor(row *sql.Row) (author domain.Author, err error) {
	var apId string
	if err = row.Scan(&author.ID, &author.Username, &author.Name, &apId, &author.PublicKey, &author.PrivateKey); err != nil {
		return
	}
	author.ApID, err = url.Parse(apId)
	return
}

func (d *dbImpl) FindObject(ctx context.Context, typeName string, id int64) (obj domain.Federatable, err error) {
	switch typeName {
	case domain.PostType:
		obj, err = d.findPost(ctx, id)
	case domain.CommentType:
		obj, err = d.findComment(ctx, id)
	case domain.LikeType:
		obj, err = d.findLike(ctx, id)
	case domain.ProfileType:
		obj, err = d.findProfile(ctx, id)
	default:
		return nil, fmt.Errorf("%w: %s", db.ErrUnknownType, typeName)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s %d", d.HandleError(err), typeName, id)
	}
	return obj, nil
}

func (d *dbImpl) findPost(ctx context.Context, id int64) (p domain.Post, err error) {
	var created int64
	err = d.db.QueryRowContext(ctx,
		`SELECT id, author_id, content, public, created FROM posts WHERE id = ?`, id).
		Scan(&p.ID, &p.AuthorID, &p.Content, &p.Public, &created)
	p.Created = time.Unix(created, 0).UTC()
	return
}

// Comments and likes are as visible as the post they belong to.
func (d *dbImpl) findComment(ctx context.Context, id int64) (c domain.Comment, err error) {
	var created int64
	err = d.db.QueryRowContext(ctx,
		`SELECT c.id, c.author_id, c.post_id, c.content, p.public, c.created
		FROM comments c JOIN posts p ON p.id = c.post_id
		WHERE c.id = ?`, id).
		Scan(&c.ID, &c.AuthorID, &c.PostID, &c.Content, &c.Public, &created)
	c.Created = time.Unix(created, 0).UTC()
	return
}

func (d *dbImpl) findLike(ctx context.Context, id int64) (l domain.Like, err error) {
	var created int64
	err = d.db.QueryRowContext(ctx,
		`SELECT l.id, l.author_id, l.post_id, l.positive, p.public, l.created
		FROM likes l JOIN posts p ON p.id = l.post_id
		WHERE l.id = ?`, id).
		Scan(&l.ID, &l.AuthorID, &l.PostID, &l.Positive, &l.Public, &created)
	l.Created = time.Unix(created, 0).UTC()
	return
}

func (d *dbImpl) findProfile(ctx context.Context, accountID int64) (p domain.Profile, err error) {
	var updated int64
	err = d.db.QueryRowContext(ctx,
		`SELECT account_id, display_name, bio, public, updated FROM profiles WHERE account_id = ?`, accountID).
		Scan(&p.AccountID, &p.DisplayName, &p.Bio, &p.Public, &updated)
	p.Updated = time.Unix(updated, 0).UTC()
	return
}
