package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/unclebandit/totallook-bridge/internal/controller"
)

// NewRouter wires middleware and every route of the bridge
func NewRouter(clients *controller.ClientController, allowedOrigins []string, logger *slog.Logger) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", Root)
	r.Get("/health", Health)

	r.Route("/jotform/clients", func(r chi.Router) {
		r.Get("/", clients.ListClients)
		r.Post("/", clients.CreateClient)
		r.Put("/{id}", clients.UpdateClient)
		r.Delete("/{id}", clients.DeleteClient)

		// no id in the path: the controller answers 400
		r.Put("/", clients.UpdateClient)
		r.Delete("/", clients.DeleteClient)
	})

	return r
}
