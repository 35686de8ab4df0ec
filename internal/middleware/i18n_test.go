package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(r *http.Request)
		country string
		want    string
	}{
		{
			name: "x-locale wins",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "pt-BR")
				r.Header.Set("Accept-Language", "en-US")
			},
			want: "pt-BR",
		},
		{
			name: "invalid x-locale falls through to accept-language",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "!!")
				r.Header.Set("Accept-Language", "es-MX,es;q=0.9")
			},
			want: "es-MX",
		},
		{
			name: "bare language completed with country",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "pt,en;q=0.5")
			},
			country: "BR",
			want:    "pt-BR",
		},
		{
			name: "explicit region kept over country",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-GB")
			},
			country: "US",
			want:    "en-GB",
		},
		{
			name:    "fallback when no hints",
			country: "DE",
			want:    "en-US",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.setup != nil {
				tc.setup(req)
			}
			got := detectLocale(req, language.AmericanEnglish, tc.country)
			if got.String() != tc.want {
				t.Fatalf("detectLocale() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveCountry(t *testing.T) {
	lookup := func(ip string) (string, error) {
		if ip == "203.0.113.9" {
			return "br", nil
		}
		return "", errors.New("unknown ip")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-IPCountry", "id")
	if got := ResolveCountry(req, lookup); got != "ID" {
		t.Fatalf("header hint: got %q, want ID", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:4242"
	if got := ResolveCountry(req, lookup); got != "BR" {
		t.Fatalf("lookup: got %q, want BR", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.1:4242"
	if got := ResolveCountry(req, lookup); got != "" {
		t.Fatalf("failed lookup: got %q, want empty", got)
	}
}

func TestI18NStoresLocaleInContext(t *testing.T) {
	var locale, country string
	h := I18N("en-US", func(string) (string, error) { return "BR", nil })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale = LocaleFromContext(r.Context())
		country = CountryFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/catalog/voices", nil)
	req.Header.Set("Accept-Language", "pt")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if locale != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", locale)
	}
	if country != "BR" {
		t.Fatalf("country = %q, want BR", country)
	}
}
