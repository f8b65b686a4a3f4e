package domain

import (
	"net/url"
	"time"

	"code.superseriousbusiness.org/activity/pub"
)

// Public is the special collection used to address objects to everyone.
var Public, _ = url.Parse(pub.PublicActivityPubIRI)

const (
	PostType    = "Post"
	CommentType = "Comment"
	LikeType    = "Like"
	ProfileType = "Profile"
)

// Federatable is anything that can be dispatched to other servers. The pair (TypeName, ObjectID) must
// identify the object so that a worker can load it again.
type Federatable interface {
	TypeName() string
	ObjectID() int64
}

// Visible is implemented by objects that carry a public/private marker.
type Visible interface {
	IsPublic() bool
}

type Visibility uint8

const (
	VisibilityUnknown Visibility = iota
	VisibilityPrivate
	VisibilityPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// VisibilityOf reads the visibility marker of obj. Objects without one are VisibilityUnknown, which
// callers must handle as private.
func VisibilityOf(obj Federatable) Visibility {
	v, ok := obj.(Visible)
	if !ok {
		return VisibilityUnknown
	}
	if v.IsPublic() {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

type Post struct {
	ID       int64
	AuthorID int64
	Content  string
	Public   bool
	Created  time.Time
}

func (p Post) TypeName() string { return PostType }
func (p Post) ObjectID() int64  { return p.ID }
func (p Post) IsPublic() bool   { return p.Public }

// Comment inherits the visibility of the post it answers.
type Comment struct {
	ID       int64
	AuthorID int64
	PostID   int64
	Content  string
	Public   bool
	Created  time.Time
}

func (c Comment) TypeName() string { return CommentType }
func (c Comment) ObjectID() int64  { return c.ID }
func (c Comment) IsPublic() bool   { return c.Public }

// Like inherits the visibility of the post it targets. Positive is false for dislikes.
type Like struct {
	ID       int64
	AuthorID int64
	PostID   int64
	Positive bool
	Public   bool
	Created  time.Time
}

func (l Like) TypeName() string { return LikeType }
func (l Like) ObjectID() int64  { return l.ID }
func (l Like) IsPublic() bool   { return l.Public }

// Profile is identified by the id of the account it belongs to.
type Profile struct {
	AccountID   int64
	DisplayName string
	Bio         string
	Public      bool
	Updated     time.Time
}

func (p Profile) TypeName() string { return ProfileType }
func (p Profile) ObjectID() int64  { return p.AccountID }
func (p Profile) IsPublic() bool   { return p.Public }
