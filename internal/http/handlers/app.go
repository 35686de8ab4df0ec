package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"gateway/internal/domain/media"
	"gateway/internal/infra"
	"gateway/internal/middleware"
)

// CatalogService lists what the provider offers.
type CatalogService interface {
	ListAvatars(ctx context.Context) ([]media.CatalogEntry, error)
	ListStreamingAvatars(ctx context.Context) ([]media.CatalogEntry, error)
	ListAvatarGroup(ctx context.Context, groupID string) ([]media.CatalogEntry, error)
	ListVoices(ctx context.Context, locale string) ([]media.CatalogEntry, error)
	ListVoiceLocales(ctx context.Context) ([]string, error)
}

// JobService submits generation jobs.
type JobService interface {
	Submit(ctx context.Context, req media.GenerationRequest) (*media.Job, error)
}

// JobPoller reads a job's current state.
type JobPoller interface {
	Poll(ctx context.Context, jobID string) (*media.Job, error)
}

// SessionService manages streaming sessions.
type SessionService interface {
	CreateToken(ctx context.Context) (string, error)
	ListActive(ctx context.Context) ([]map[string]any, error)
	Stop(ctx context.Context, sessionID string) error
}

type App struct {
	Catalog  CatalogService
	Jobs     JobService
	Poller   JobPoller
	Sessions SessionService
	Logger   infra.Logger
}

func NewApp(catalog CatalogService, jobs JobService, poller JobPoller, sessions SessionService, logger infra.Logger) *App {
	return &App{
		Catalog:  catalog,
		Jobs:     jobs,
		Poller:   poller,
		Sessions: sessions,
		Logger:   logger,
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}

// fail renders err as the structured error body. Upstream payloads are never
// passed through; only the normalized message is.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	rid := middleware.RequestIDFromContext(r.Context())
	var e *media.Error
	if !errors.As(err, &e) {
		a.Logger.Error().Err(err).Str("request_id", rid).Str("path", r.URL.Path).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, string(media.KindInternal), "internal error")
		return
	}
	switch e.Kind {
	case media.KindInconsistentUpstreamState:
		a.Logger.Error().Str("request_id", rid).Str("path", r.URL.Path).Msg(e.Message)
	case media.KindTransport:
		a.Logger.Warn().Str("request_id", rid).Str("path", r.URL.Path).Bool("timeout", e.Timeout).Msg(e.Message)
	case media.KindConfiguration:
		a.Logger.Error().Str("request_id", rid).Msg(e.Message)
	}
	detail := errorDetail{Kind: string(e.Kind), Message: e.Message}
	if e.Kind == media.KindUpstreamRejected {
		detail.Status = e.Status
	}
	a.json(w, e.HTTPStatus(), errorBody{Error: detail})
}

// NotFound answers unknown routes with the structured error body.
func (a *App) NotFound(w http.ResponseWriter, r *http.Request) {
	a.error(w, http.StatusNotFound, "not_found", "route not found")
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (a *App) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.error(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" not allowed")
}
