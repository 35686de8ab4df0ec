package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gateway/internal/providers/heygen"
)

func newTestClient(t *testing.T) *heygen.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/voices", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"voices":[
			{"voice_id":"V1","name":"Camila","language":"Portuguese","support_locale":true},
			{"voice_id":"V2","name":"Jenny","language":"English","support_locale":true}]}}`)
	})
	mux.HandleFunc("/v2/voices/locales", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"locales":["en-US","pt-BR"]}}`)
	})
	mux.HandleFunc("/v1/streaming.stop", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":100}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cred, err := heygen.NewCredential("cli-key", heygen.SchemeAPIKey)
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	binder, err := heygen.NewBinder(cred)
	if err != nil {
		t.Fatalf("binder: %v", err)
	}
	client, err := heygen.NewClient(heygen.Options{Binder: binder, BaseURL: server.URL})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return client
}

func TestRunCommands(t *testing.T) {
	tests := []struct {
		cmd  string
		args []string
		want string
	}{
		{"voices-count", nil, "2 voices\n"},
		{"voices", []string{"-locale", "pt-BR"}, "V1\tCamila\tPortuguese\n"},
		{"locales", nil, "en-US\npt-BR\n"},
		{"stop-stream", []string{"-session", "S1"}, "session S1 stopped\n"},
	}
	client := newTestClient(t)

	for _, tc := range tests {
		t.Run(tc.cmd, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(context.Background(), client, tc.cmd, tc.args, &out); err != nil {
				t.Fatalf("run(%s) error: %v", tc.cmd, err)
			}
			if out.String() != tc.want {
				t.Fatalf("output = %q, want %q", out.String(), tc.want)
			}
		})
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	client := newTestClient(t)

	if err := run(context.Background(), client, "voices", nil, io.Discard); err == nil {
		t.Fatalf("expected error without -locale")
	}
	if err := run(context.Background(), client, "stop-stream", nil, io.Discard); err == nil {
		t.Fatalf("expected error without -session")
	}
	err := run(context.Background(), client, "bogus", nil, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("unexpected error: %v", err)
	}
}
