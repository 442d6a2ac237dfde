package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/himalink/internal/config"
	"github.com/heartmarshall/himalink/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// RouterDeps collects what NewRouter wires together.
type RouterDeps struct {
	Logger      *slog.Logger
	Health      *HealthHandler
	Entries     *EntryHandler
	Chats       *ChatHandler
	Visited     *VisitedHandler
	Validator   tokenValidator
	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter
	RateLimit   int
	Gatherer    prometheus.Gatherer
}

// NewRouter builds the HTTP API. Probes and /metrics sit outside auth and
// rate limiting.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
	)

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(d.Validator), middleware.RequireUser)
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Limit(d.RateLimit))
		}

		r.Get("/timeline", d.Entries.Timeline)

		r.Post("/entries", d.Entries.Create)
		r.Route("/entries/{entryID}", func(r chi.Router) {
			r.Get("/", d.Entries.Get)
			r.Patch("/", d.Entries.Update)
			r.Delete("/", d.Entries.Delete)
			r.Get("/social", d.Entries.Social)
			r.Post("/reactions", d.Entries.ToggleReaction)
			r.Post("/comments", d.Entries.SubmitComment)
			r.Post("/images", d.Entries.UploadImage)
			r.Delete("/images/{imageID}", d.Entries.DeleteImage)
		})

		r.Get("/chats", d.Chats.List)
		r.Delete("/chats/open", d.Chats.Close)
		r.Get("/chats/{peerID}", d.Chats.Open)
		r.Post("/chats/{peerID}/messages", d.Chats.Send)

		r.Get("/visited", d.Visited.List)
		r.Post("/visited/{userID}", d.Visited.Add)
	})

	return r
}
