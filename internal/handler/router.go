// Package handler wires the development server's HTTP routes.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	chathandler "github.com/mulbot/mulchat/internal/handler/chat"
	"github.com/mulbot/mulchat/internal/middleware"
	"github.com/mulbot/mulchat/internal/service/answers"
	"github.com/mulbot/mulchat/internal/service/cache"
)

// NewRouter mounts the chat API under /api.
func NewRouter(svc *answers.Service, c *cache.Cache, stepDelay time.Duration, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	h := chathandler.New(svc, c, stepDelay, log)
	r.Route("/api", func(api chi.Router) {
		h.RegisterRoutes(api)
	})

	return r
}
