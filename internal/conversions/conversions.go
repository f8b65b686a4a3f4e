package conversions

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"code.superseriousbusiness.org/activity/streams"
	"code.superseriousbusiness.org/activity/streams/vocab"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
)

// Addressing holds the recipients written in the to and cc properties of an activity.
type Addressing struct {
	To []*url.URL
	Cc []*url.URL
}

// PublicAddressing addresses an activity to everyone, copying the author's followers.
func PublicAddressing(author domain.Author) Addressing {
	a := Addressing{To: []*url.URL{domain.Public}}
	if followers := author.Followers(); followers != nil {
		a.Cc = []*url.URL{followers}
	}
	return a
}

// DirectAddressing addresses an activity to the given actors only.
func DirectAddressing(actors []*url.URL) Addressing {
	return Addressing{To: actors}
}

// ObjectIRI returns the IRI under which obj is published by the instance at base.
func ObjectIRI(base *url.URL, author domain.Author, obj domain.Federatable) (*url.URL, error) {
	id := strconv.FormatInt(obj.ObjectID(), 10)
	switch obj.TypeName() {
	case domain.PostType:
		return base.JoinPath("posts", id), nil
	case domain.CommentType:
		return base.JoinPath("comments", id), nil
	case domain.LikeType:
		return base.JoinPath("likes", id), nil
	case domain.ProfileType:
		if author.ApID == nil {
			return nil, fmt.Errorf("%w: author without IRI", federation.ErrUnsupported)
		}
		return author.ApID, nil
	default:
		return nil, fmt.Errorf("%w: %s", federation.ErrUnsupported, obj.TypeName())
	}
}

// ToActivity wraps obj in the activity that announces it: posts and comments are created, likes are
// activities themselves and profiles are updated.
func ToActivity(base *url.URL, author domain.Author, obj domain.Federatable, addr Addressing) (vocab.Type, error) {
	if author.ApID == nil {
		return nil, fmt.Errorf("%w: author without IRI", federation.ErrUnsupported)
	}

	objIRI, err := ObjectIRI(base, author, obj)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case domain.Post:
		note := newNote(objIRI, author.ApID, o.Content, o.Created, addr)
		return newCreate(objIRI.JoinPath("activity"), author.ApID, note, o.Created, addr), nil
	case domain.Comment:
		note := newNote(objIRI, author.ApID, o.Content, o.Created, addr)
		reply := streams.NewActivityStreamsInReplyToProperty()
		reply.AppendIRI(base.JoinPath("posts", strconv.FormatInt(o.PostID, 10)))
		note.SetActivityStreamsInReplyTo(reply)
		return newCreate(objIRI.JoinPath("activity"), author.ApID, note, o.Created, addr), nil
	case domain.Like:
		return newLike(objIRI, author.ApID, base.JoinPath("posts", strconv.FormatInt(o.PostID, 10)), o, addr), nil
	case domain.Profile:
		return newProfileUpdate(author, o, addr), nil
	default:
		return nil, fmt.Errorf("%w: %s", federation.ErrUnsupported, obj.TypeName())
	}
}

// Serialize returns the JSON-LD representation of an activity.
func Serialize(activity vocab.Type) ([]byte, error) {
	data, err := streams.Serialize(activity)
	if err != nil {
		return nil, err
	}
	return json.Marshal(data)
}

type addressable interface {
	SetActivityStreamsTo(vocab.ActivityStreamsToProperty)
	SetActivityStreamsCc(vocab.ActivityStreamsCcProperty)
}

func address(t addressable, addr Addressing) {
	if len(addr.To) != 0 {
		to := streams.NewActivityStreamsToProperty()
		for _, iri := range addr.To {
			to.AppendIRI(iri)
		}
		t.SetActivityStreamsTo(to)
	}

	if len(addr.Cc) != 0 {
		cc := streams.NewActivityStreamsCcProperty()
		for _, iri := range addr.Cc {
			cc.AppendIRI(iri)
		}
		t.SetActivityStreamsCc(cc)
	}
}

func idProp(iri *url.URL) vocab.JSONLDIdProperty {
	id := streams.NewJSONLDIdProperty()
	id.SetIRI(iri)
	return id
}

func actorProp(actor *url.URL) vocab.ActivityStreamsActorProperty {
	prop := streams.NewActivityStreamsActorProperty()
	prop.AppendIRI(actor)
	return prop
}

func publishedProp(t time.Time) vocab.ActivityStreamsPublishedProperty {
	prop := streams.NewActivityStreamsPublishedProperty()
	prop.Set(t.UTC())
	return prop
}

func newNote(id, author *url.URL, content string, published time.Time, addr Addressing) vocab.ActivityStreamsNote {
	note := streams.NewActivityStreamsNote()
	note.SetJSONLDId(idProp(id))

	attributedTo := streams.NewActivityStreamsAttributedToProperty()
	attributedTo.AppendIRI(author)
	note.SetActivityStreamsAttributedTo(attributedTo)

	contentProp := streams.NewActivityStreamsContentProperty()
	contentProp.AppendXMLSchemaString(content)
	note.SetActivityStreamsContent(contentProp)

	if !published.IsZero() {
		note.SetActivityStreamsPublished(publishedProp(published))
	}

	address(note, addr)
	return note
}

func newCreate(id, actor *url.URL, note vocab.ActivityStreamsNote, published time.Time, addr Addressing) vocab.ActivityStreamsCreate {
	create := streams.NewActivityStreamsCreate()
	create.SetJSONLDId(idProp(id))
	create.SetActivityStreamsActor(actorProp(actor))

	obj := streams.NewActivityStreamsObjectProperty()
	obj.AppendActivityStreamsNote(note)
	create.SetActivityStreamsObject(obj)

	if !published.IsZero() {
		create.SetActivityStreamsPublished(publishedProp(published))
	}

	address(create, addr)
	return create
}

func newLike(id, actor, target *url.URL, like domain.Like, addr Addressing) vocab.Type {
	obj := streams.NewActivityStreamsObjectProperty()
	obj.AppendIRI(target)

	if !like.Positive {
		dislike := streams.NewActivityStreamsDislike()
		dislike.SetJSONLDId(idProp(id))
		dislike.SetActivityStreamsActor(actorProp(actor))
		dislike.SetActivityStreamsObject(obj)
		address(dislike, addr)
		return dislike
	}

	l := streams.NewActivityStreamsLike()
	l.SetJSONLDId(idProp(id))
	l.SetActivityStreamsActor(actorProp(actor))
	l.SetActivityStreamsObject(obj)
	if !like.Created.IsZero() {
		l.SetActivityStreamsPublished(publishedProp(like.Created))
	}
	address(l, addr)
	return l
}

func newProfileUpdate(author domain.Author, profile domain.Profile, addr Addressing) vocab.ActivityStreamsUpdate {
	person := streams.NewActivityStreamsPerson()
	person.SetJSONLDId(idProp(author.ApID))

	username := streams.NewActivityStreamsPreferredUsernameProperty()
	username.SetXMLSchemaString(author.Username)
	person.SetActivityStreamsPreferredUsername(username)

	if profile.DisplayName != "" {
		name := streams.NewActivityStreamsNameProperty()
		name.AppendXMLSchemaString(profile.DisplayName)
		person.SetActivityStreamsName(name)
	}

	if profile.Bio != "" {
		summary := streams.NewActivityStreamsSummaryProperty()
		summary.AppendXMLSchemaString(profile.Bio)
		person.SetActivityStreamsSummary(summary)
	}

	if author.PublicKey != "" {
		person.SetW3IDSecurityV1PublicKey(PublicKeyProp(author))
	}

	update := streams.NewActivityStreamsUpdate()
	update.SetJSONLDId(idProp(author.ApID.JoinPath("updates", strconv.FormatInt(profile.Updated.Unix(), 10))))
	update.SetActivityStreamsActor(actorProp(author.ApID))

	obj := streams.NewActivityStreamsObjectProperty()
	obj.AppendActivityStreamsPerson(person)
	update.SetActivityStreamsObject(obj)

	address(update, addr)
	return update
}

func PublicKeyProp(author domain.Author) vocab.W3IDSecurityV1PublicKeyProperty {
	keyProp := streams.NewW3IDSecurityV1PublicKeyProperty()
	key := streams.NewW3IDSecurityV1PublicKey()

	ownerProp := streams.NewW3IDSecurityV1OwnerProperty()
	ownerProp.SetIRI(author.ApID)

	pemProp := streams.NewW3IDSecurityV1PublicKeyPemProperty()
	pemProp.Set(author.PublicKey)

	key.SetJSONLDId(idProp(author.KeyID()))
	key.SetW3IDSecurityV1PublicKeyPem(pemProp)
	key.SetW3IDSecurityV1Owner(ownerProp)

	keyProp.AppendW3IDSecurityV1PublicKey(key)
	return keyProp
}
