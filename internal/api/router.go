package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/samandr77/microservices/advances/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors, mw.Secure)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)
		r.HandleFunc("/swagger/*", httpSwagger.Handler())

		r.Post("/auth", h.Auth)

		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.Records)
			r.Post("/", h.CreateRecord)
			r.Post("/validate", h.ValidateRecord)
			r.Get("/view", h.View)
			r.Get("/export", h.Export)

			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", h.UpdateRecord)
				r.Delete("/", h.DeleteRecord)
				r.Post("/close", h.CloseBill)
			})
		})
	})

	return mux
}
