package handlers

import (
	"net/http"
)

func (a *App) CreateSessionToken(w http.ResponseWriter, r *http.Request) {
	token, err := a.Sessions.CreateToken(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"token": token})
}

func (a *App) ListActiveSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := a.Sessions.ListActive(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (a *App) StopSession(w http.ResponseWriter, r *http.Request) {
	if err := a.Sessions.Stop(r.Context(), pathParam(r, "sessionId")); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"stopped": true})
}
