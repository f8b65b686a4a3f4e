package web

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) Mount(r chi.Router) {
	r.Route(FederationPath, func(r chi.Router) {
		r.Post("/dispatches", DeferDispatch(h))
		r.Get("/failed-jobs", FailedJobs(h))
		r.Get("/jobs/{key}/deliveries", Deliveries(h))
	})
}
