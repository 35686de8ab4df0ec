package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"gateway/internal/middleware"
)

func (a *App) ListAvatars(w http.ResponseWriter, r *http.Request) {
	avatars, err := a.Catalog.ListAvatars(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"avatars": avatars})
}

func (a *App) ListStreamingAvatars(w http.ResponseWriter, r *http.Request) {
	avatars, err := a.Catalog.ListStreamingAvatars(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"avatars": avatars})
}

// ListVoices accepts ?locale=<tag> to keep only voices able to speak it;
// locale=auto uses the locale detected from the request.
func (a *App) ListVoices(w http.ResponseWriter, r *http.Request) {
	locale := strings.TrimSpace(r.URL.Query().Get("locale"))
	if strings.EqualFold(locale, "auto") {
		locale = middleware.LocaleFromContext(r.Context())
	}
	voices, err := a.Catalog.ListVoices(r.Context(), locale)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"voices": voices})
}

func (a *App) ListVoiceLocales(w http.ResponseWriter, r *http.Request) {
	locales, err := a.Catalog.ListVoiceLocales(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"locales": locales})
}

// ListAvatarGroup answers with a bare array of group members.
func (a *App) ListAvatarGroup(w http.ResponseWriter, r *http.Request) {
	groupID := pathParam(r, "groupId")
	members, err := a.Catalog.ListAvatarGroup(r.Context(), groupID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, members)
}

// pathParam returns the decoded route parameter; chi hands back the escaped
// form when the request path carried escapes.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
