package conversions

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"code.superseriousbusiness.org/activity/streams"
	"code.superseriousbusiness.org/activity/streams/vocab"
	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/federation"
)

var base = toURL("https://pod.example/")
var alice = domain.Author{
	ID:        1,
	Username:  "alice",
	ApID:      toURL("https://pod.example/u/alice"),
	PublicKey: "-----BEGIN PUBLIC KEY-----\nMFkw\n-----END PUBLIC KEY-----\n",
}

func TestToActivity(t *testing.T) {
	published := toTime("2025-09-25T22:27:56Z")
	bob := toURL("https://remote.example/u/bob")

	cases := []struct {
		name       string
		obj        domain.Federatable
		addr       Addressing
		expectType string
		expectId   string
		expectTo   []string
		expectCc   []string
		object     map[string]any
	}{
		{
			name:       "public post",
			obj:        domain.Post{ID: 7, AuthorID: 1, Content: "hello", Public: true, Created: published},
			addr:       PublicAddressing(alice),
			expectType: "Create",
			expectId:   "https://pod.example/posts/7/activity",
			expectTo:   []string{domain.Public.String()},
			expectCc:   []string{"https://pod.example/u/alice/followers"},
			object: map[string]any{
				"type":         "Note",
				"id":           "https://pod.example/posts/7",
				"content":      "hello",
				"attributedTo": "https://pod.example/u/alice",
			},
		},
		{
			name:       "private comment",
			obj:        domain.Comment{ID: 3, AuthorID: 1, PostID: 7, Content: "reply", Created: published},
			addr:       DirectAddressing([]*url.URL{bob}),
			expectType: "Create",
			expectId:   "https://pod.example/comments/3/activity",
			expectTo:   []string{bob.String()},
			object: map[string]any{
				"type":      "Note",
				"id":        "https://pod.example/comments/3",
				"content":   "reply",
				"inReplyTo": "https://pod.example/posts/7",
			},
		},
		{
			name:       "like",
			obj:        domain.Like{ID: 9, AuthorID: 1, PostID: 7, Positive: true, Public: true},
			addr:       PublicAddressing(alice),
			expectType: "Like",
			expectId:   "https://pod.example/likes/9",
			expectTo:   []string{domain.Public.String()},
			expectCc:   []string{"https://pod.example/u/alice/followers"},
		},
		{
			name:       "dislike",
			obj:        domain.Like{ID: 10, AuthorID: 1, PostID: 7},
			addr:       DirectAddressing([]*url.URL{bob}),
			expectType: "Dislike",
			expectId:   "https://pod.example/likes/10",
			expectTo:   []string{bob.String()},
		},
		{
			name:       "profile",
			obj:        domain.Profile{AccountID: 1, DisplayName: "Alice", Bio: "bio", Public: true, Updated: published},
			addr:       PublicAddressing(alice),
			expectType: "Update",
			expectId:   "https://pod.example/u/alice/updates/1758839276",
			expectTo:   []string{domain.Public.String()},
			expectCc:   []string{"https://pod.example/u/alice/followers"},
			object: map[string]any{
				"type":              "Person",
				"id":                "https://pod.example/u/alice",
				"name":              "Alice",
				"summary":           "bio",
				"preferredUsername": "alice",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			activity, err := ToActivity(base, alice, c.obj, c.addr)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}

			raw, err := Serialize(activity)
			if err != nil {
				t.Fatal(err)
			}

			var m map[string]any
			if err = json.Unmarshal(raw, &m); err != nil {
				t.Fatal(err)
			}

			if m["type"] != c.expectType {
				t.Errorf("expected type %s, got %v", c.expectType, m["type"])
			}
			if m["id"] != c.expectId {
				t.Errorf("expected id %s, got %v", c.expectId, m["id"])
			}
			if diff := cmp.Diff(c.expectTo, iris(m["to"])); diff != "" {
				t.Errorf("to: %s", diff)
			}
			if diff := cmp.Diff(c.expectCc, iris(m["cc"])); diff != "" {
				t.Errorf("cc: %s", diff)
			}

			if c.object == nil {
				return
			}
			obj, ok := m["object"].(map[string]any)
			if !ok {
				t.Fatalf("expected an embedded object, got %v", m["object"])
			}
			for k, v := range c.object {
				if obj[k] != v {
					t.Errorf("object property %s: expected %v, got %v", k, v, obj[k])
				}
			}
		})
	}
}

func TestToActivity_ProfileCarriesKey(t *testing.T) {
	activity, err := ToActivity(base, alice, domain.Profile{AccountID: 1}, PublicAddressing(alice))
	if err != nil {
		t.Fatal(err)
	}

	update, ok := activity.(vocab.ActivityStreamsUpdate)
	if !ok {
		t.Fatalf("expected an Update, got %s", activity.GetTypeName())
	}

	person := update.GetActivityStreamsObject().Begin().GetActivityStreamsPerson()
	if person == nil {
		t.Fatal("update does not embed a person")
	}

	keyProp := person.GetW3IDSecurityV1PublicKey()
	if keyProp == nil || keyProp.Len() == 0 {
		t.Fatal("person has no public key")
	}
	pem := keyProp.Begin().Get().GetW3IDSecurityV1PublicKeyPem()
	if pem == nil {
		t.Fatal("public key has no publicKeyPem")
	}
	if key := pem.Get(); key != alice.PublicKey {
		t.Errorf("expected key %q, got %q", alice.PublicKey, key)
	}
}

type unknownObject struct{}

func (unknownObject) TypeName() string { return "Poll" }
func (unknownObject) ObjectID() int64  { return 1 }

func TestToActivity_Unsupported(t *testing.T) {
	cases := []struct {
		name   string
		author domain.Author
		obj    domain.Federatable
	}{
		{"unknown type", alice, unknownObject{}},
		{"author without IRI", domain.Author{ID: 2}, domain.Post{ID: 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ToActivity(base, c.author, c.obj, Addressing{})
			if !errors.Is(err, federation.ErrUnsupported) {
				t.Errorf("expected \"%s\", got \"%v\"", federation.ErrUnsupported, err)
			}
			if federation.IsTransient(err) {
				t.Error("conversion errors must not be retried")
			}
		})
	}
}

func TestSerialize_HasContext(t *testing.T) {
	raw, err := Serialize(streams.NewActivityStreamsNote())
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err = json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["@context"]; !ok {
		t.Error("serialized activity has no @context")
	}
}

func iris(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func toURL(u string) *url.URL {
	url, _ := url.Parse(u)
	return url
}

func toTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
