package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/hermes/internal/db"
	"github.com/sidereusnuntius/hermes/internal/dispatch"
	"github.com/sidereusnuntius/hermes/internal/domain"
	"github.com/sidereusnuntius/hermes/internal/validate"
)

type DispatchRequest struct {
	AuthorID   int64          `json:"author_id"`
	ObjectType string         `json:"object_type"`
	ObjectID   int64          `json:"object_id"`
	Options    domain.Options `json:"options,omitempty"`
}

type DispatchResponse struct {
	JobID string `json:"job_id"`
}

// DeferDispatch enqueues the dispatch of a stored object. The author and the object are loaded first, so
// that requests referring to missing records are rejected instead of failing in a worker.
func DeferDispatch(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DispatchRequest
		r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBody)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		if err := validate.DispatchRequest(req.AuthorID, req.ObjectType, req.ObjectID, req.Options); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		author, err := h.store.FindAuthor(ctx, req.AuthorID)
		if err != nil {
			http.Error(w, "author: "+http.StatusText(handleErr(err)), handleErr(err))
			return
		}

		obj, err := h.store.FindObject(ctx, req.ObjectType, req.ObjectID)
		if err != nil {
			http.Error(w, "object: "+http.StatusText(handleErr(err)), handleErr(err))
			return
		}

		id, err := h.deferrer.DeferDispatch(ctx, &author, obj, req.Options)
		if err != nil {
			log.Error().Err(err).Int64("author", req.AuthorID).Str("type", req.ObjectType).Msg("deferring dispatch")
			http.Error(w, "", handleErr(err))
			return
		}

		writeJSON(w, http.StatusAccepted, DispatchResponse{JobID: id})
	}
}

func FailedJobs(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := DefaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = min(n, MaxLimit)
		}

		jobs, err := h.store.ListFailedJobs(r.Context(), limit)
		if err != nil {
			http.Error(w, "", handleErr(err))
			return
		}
		writeJSON(w, http.StatusOK, jobs)
	}
}

func Deliveries(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deliveries, err := h.store.ListDeliveries(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			http.Error(w, "", handleErr(err))
			return
		}
		writeJSON(w, http.StatusOK, deliveries)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("unable to encode response")
	}
}

func handleErr(err error) int {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrUnknownType), errors.Is(err, dispatch.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
