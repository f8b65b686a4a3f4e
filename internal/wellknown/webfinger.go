// Package wellknown serves the discovery endpoints remote servers query before fetching an author's actor
// and public key.
package wellknown

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/db"
	"github.com/sidereusnuntius/hermes/internal/domain"
)

const ContentType = "application/jrd+json"

type WebfingerLink struct {
	Rel  string `json:"rel"`
	Type string `json:"type"`
	Href string `json:"href"`
}

type WebfingerResponse struct {
	Subject string          `json:"subject"`
	Aliases []string        `json:"aliases,omitempty"`
	Links   []WebfingerLink `json:"links"`
}

type Authors interface {
	FindAuthorByUsername(ctx context.Context, username string) (domain.Author, error)
}

func Mount(authors Authors, domainName string, r chi.Router) {
	r.Route("/.well-known/", func(r chi.Router) {
		r.Get("/webfinger", WebfingerEndpoint(authors, domainName))
	})
}

// WebfingerEndpoint resolves acct:user@domain resources of local authors. Accounts of other domains
// are reported as missing.
func WebfingerEndpoint(authors Authors, domainName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resource := r.URL.Query().Get("resource")
		username, host, ok := parseAcct(resource)
		if !ok {
			http.Error(w, "failed to parse resource", http.StatusBadRequest)
			return
		}
		if !strings.EqualFold(host, domainName) {
			http.Error(w, "", http.StatusNotFound)
			return
		}

		author, err := authors.FindAuthorByUsername(r.Context(), username)
		if err != nil {
			http.Error(w, "", handleErr(err))
			return
		}

		apId := author.ApID.String()
		res := WebfingerResponse{
			Subject: resource,
			Aliases: []string{apId},
			Links: []WebfingerLink{
				{Rel: "self", Type: "application/activity+json", Href: apId},
			},
		}

		w.Header().Set("Content-Type", ContentType)
		if err = json.NewEncoder(w).Encode(res); err != nil {
			log.Error().Err(err).Msg("unable to marshal webfinger response")
		}
	}
}

func parseAcct(resource string) (username, host string, ok bool) {
	acct, found := strings.CutPrefix(resource, "acct:")
	if !found {
		return "", "", false
	}
	username, host, ok = strings.Cut(strings.TrimPrefix(acct, "@"), "@")
	return username, host, ok && username != "" && host != ""
}

func handleErr(err error) int {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
