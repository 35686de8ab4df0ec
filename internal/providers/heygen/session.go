package heygen

import (
	"context"

	"gateway/internal/domain/media"
)

// Sessions manages interactive streaming sessions.
type Sessions struct {
	client *Client
}

func NewSessions(client *Client) *Sessions {
	return &Sessions{client: client}
}

// CreateToken mints a short-lived token the front end uses to open a
// streaming session directly with the provider.
func (s *Sessions) CreateToken(ctx context.Context) (string, error) {
	resp, err := s.client.Do(ctx, Call{Op: OpCreateStreamingToken})
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", s.client.Reject(OpCreateStreamingToken, resp)
	}
	token := String(Object(resp.Body), "token")
	if token == "" {
		return "", media.Inconsistent("provider returned no streaming token")
	}
	return token, nil
}

// ListActive returns the provider's view of currently open sessions.
func (s *Sessions) ListActive(ctx context.Context) ([]map[string]any, error) {
	resp, err := s.client.Do(ctx, Call{Op: OpListStreamingSessions})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, s.client.Reject(OpListStreamingSessions, resp)
	}
	return Collection(resp.Body, "sessions"), nil
}

type stopSessionRequest struct {
	SessionID string `json:"session_id"`
}

// Stop closes one streaming session.
func (s *Sessions) Stop(ctx context.Context, sessionID string) error {
	if err := validateIdentifier("session id", sessionID); err != nil {
		return err
	}
	resp, err := s.client.Do(ctx, Call{
		Op:   OpStopStreamingSession,
		Body: stopSessionRequest{SessionID: sessionID},
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return s.client.Reject(OpStopStreamingSession, resp)
	}
	s.client.Logger().Info().Str("session_id", sessionID).Msg("heygen: streaming session stopped")
	return nil
}
