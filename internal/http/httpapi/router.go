package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"gateway/internal/http/handlers"
	"gateway/internal/infra"
	"gateway/internal/middleware"
)

// Options carries the cross-cutting settings the router wires around the
// handlers.
type Options struct {
	Logger          infra.Logger
	AllowedOrigins  []string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)
	r.NotFound(app.NotFound)
	r.MethodNotAllowed(app.MethodNotAllowed)

	r.Get("/healthz", app.Health)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/avatars", app.ListAvatars)
		r.Get("/streaming-avatars", app.ListStreamingAvatars)
		r.Get("/voices", app.ListVoices)
		r.Get("/voices/locales", app.ListVoiceLocales)
		// The bare path reaches the handler so a missing id is a 400, not a 404.
		r.Get("/avatar-groups/", app.ListAvatarGroup)
		r.Get("/avatar-groups/{groupId}", app.ListAvatarGroup)
	})

	r.Route("/session", func(r chi.Router) {
		r.Post("/token", app.CreateSessionToken)
		r.Get("/active", app.ListActiveSessions)
		r.Post("/{sessionId}/stop", app.StopSession)
	})

	r.Route("/jobs", func(r chi.Router) {
		// Submissions are billed upstream; only they are rate limited.
		r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/", app.SubmitJob)
		r.Get("/{jobId}", app.JobStatus)
	})

	return r
}
