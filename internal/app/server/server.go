// Package server wires handlers and middleware into the chi router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dodomains/dodomains/internal/app/handler"
	"github.com/dodomains/dodomains/internal/app/service"
	"github.com/dodomains/dodomains/internal/middleware"
)

// Init builds the router. limiter guards the generate endpoint and may be nil.
func Init(logger *zap.Logger, s service.GeneratorServiceIface, auth service.AuthIface, limiter *middleware.RateLimiter) *chi.Mux {
	getHandler := handler.NewGet(s, logger)
	postHandler := handler.NewPost(s, logger)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/ping", getHandler.Ping)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithSession(auth, logger))

		r.With(middleware.WithGZIPGet).Get("/", handler.ComponentHandler(getHandler.Index).ServeHTTP)
		r.With(middleware.WithGZIPGet).Get("/api/session", getHandler.Session)

		r.Group(func(r chi.Router) {
			r.Use(middleware.WithGZIPPost)

			r.Post("/keywords", postHandler.AddKeyword)
			r.Post("/keywords/remove", postHandler.RemoveKeyword)
			r.Post("/description", postHandler.SetDescription)
			r.Post("/length", postHandler.SetLength)
			r.Post("/style", postHandler.SetStyle)
			r.Post("/tlds/toggle", postHandler.ToggleTLD)
			r.Post("/tlds/category", postHandler.SetCategory)

			if limiter != nil {
				r.With(middleware.WithRateLimit(limiter)).Post("/generate", postHandler.Generate)
			} else {
				r.Post("/generate", postHandler.Generate)
			}
		})
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
