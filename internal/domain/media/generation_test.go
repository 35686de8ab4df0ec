package media

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	req := GenerationRequest{AvatarID: " A1 ", VoiceID: "V1\n", Text: "  hi  "}
	req.Normalize()

	if req.AvatarID != "A1" || req.VoiceID != "V1" || req.Text != "hi" {
		t.Fatalf("fields not trimmed: %+v", req)
	}
	if req.Background == nil || req.Background.Color != DefaultBackgroundColor {
		t.Fatalf("background = %+v", req.Background)
	}
	if req.Dimension == nil || req.Dimension.Width != DefaultWidth || req.Dimension.Height != DefaultHeight {
		t.Fatalf("dimension = %+v", req.Dimension)
	}
	if req.Title != DefaultTitle {
		t.Fatalf("title = %q", req.Title)
	}
}

func TestNormalizeKeepsCallerChoices(t *testing.T) {
	req := GenerationRequest{
		Background: &Background{VideoURL: " https://x/bg.mp4 "},
		Dimension:  &Dimension{Width: 1920, Height: 1080},
		Title:      "Launch",
	}
	req.Normalize()

	if req.Background.VideoURL != "https://x/bg.mp4" || req.Background.Color != "" {
		t.Fatalf("background = %+v", req.Background)
	}
	if req.Dimension.Width != 1920 || req.Title != "Launch" {
		t.Fatalf("request = %+v", req)
	}
}

func TestValidate(t *testing.T) {
	valid := func() GenerationRequest {
		return GenerationRequest{AvatarID: "A1", VoiceID: "V1", Text: "hi"}
	}

	tests := []struct {
		name    string
		mutate  func(r *GenerationRequest)
		wantErr string
	}{
		{"valid", func(*GenerationRequest) {}, ""},
		{"missing both ids", func(r *GenerationRequest) { r.AvatarID, r.VoiceID = "", "" }, "avatarId and voiceId are required"},
		{"missing avatar", func(r *GenerationRequest) { r.AvatarID = "" }, "avatarId is required"},
		{"missing voice", func(r *GenerationRequest) { r.VoiceID = "" }, "voiceId is required"},
		{"missing text", func(r *GenerationRequest) { r.Text = "" }, "text is required"},
		{"text at limit", func(r *GenerationRequest) { r.Text = strings.Repeat("é", MaxInputTextLength) }, ""},
		{"text over limit", func(r *GenerationRequest) { r.Text = strings.Repeat("é", MaxInputTextLength+1) }, "text exceeds"},
		{"valid locale", func(r *GenerationRequest) { r.Locale = "pt-BR" }, ""},
		{"invalid locale", func(r *GenerationRequest) { r.Locale = "??" }, "locale"},
		{"image background", func(r *GenerationRequest) { r.Background = &Background{ImageURL: "https://x/a.png"} }, ""},
		{"empty background", func(r *GenerationRequest) { r.Background = &Background{} }, "background"},
		{"two backgrounds", func(r *GenerationRequest) { r.Background = &Background{Color: "#000", VideoURL: "https://x"} }, "background"},
		{"zero dimension", func(r *GenerationRequest) { r.Dimension = &Dimension{Width: 0, Height: 640} }, "dimension"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)
			err := req.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			var e *Error
			if !errors.As(err, &e) || e.Kind != KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(e.Message, tc.wantErr) {
				t.Fatalf("message = %q, want %q", e.Message, tc.wantErr)
			}
		})
	}
}

func TestErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("x"), http.StatusBadRequest},
		{Configuration("x"), http.StatusInternalServerError},
		{Transport("x", false, nil), http.StatusBadGateway},
		{Transport("x", true, nil), http.StatusGatewayTimeout},
		{Rejected(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests},
		{Rejected(http.StatusServiceUnavailable, ""), http.StatusServiceUnavailable},
		{Rejected(302, "moved"), http.StatusBadGateway},
		{Inconsistent("x"), http.StatusBadGateway},
		{&Error{Kind: KindInternal}, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("%v: HTTPStatus() = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestRejectedDefaultsMessage(t *testing.T) {
	if e := Rejected(http.StatusForbidden, ""); e.Message != "Forbidden" {
		t.Fatalf("message = %q", e.Message)
	}
}

func TestKindOf(t *testing.T) {
	cause := errors.New("dial")
	wrapped := Transport("down", false, cause)
	if KindOf(wrapped) != KindTransport || !errors.Is(wrapped, cause) {
		t.Fatalf("transport error lost its kind or cause")
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Fatalf("plain error should be internal")
	}
}

func TestJobTerminal(t *testing.T) {
	for state, want := range map[JobState]bool{
		JobSubmitted:  false,
		JobProcessing: false,
		JobCompleted:  true,
		JobFailed:     true,
	} {
		if got := (&Job{State: state}).Terminal(); got != want {
			t.Fatalf("%s: Terminal() = %v", state, got)
		}
	}
}
