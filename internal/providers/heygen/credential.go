package heygen

import (
	"fmt"
	"net/http"
	"strings"

	"gateway/internal/domain/media"
)

// Scheme is the authentication header convention an operation expects.
type Scheme int

const (
	// SchemeDefault defers to the scheme the credential was loaded with.
	SchemeDefault Scheme = iota
	// SchemeAPIKey sends the raw key in the X-Api-Key header.
	SchemeAPIKey
	// SchemeBearer sends "Authorization: Bearer <key>".
	SchemeBearer
)

const apiKeyHeader = "X-Api-Key"

const redacted = "[redacted]"

// ParseScheme accepts the spellings used in environment and YAML config.
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SchemeDefault, nil
	case "api_key", "apikey", "x-api-key", "header":
		return SchemeAPIKey, nil
	case "bearer", "bearer_token", "token":
		return SchemeBearer, nil
	default:
		return SchemeDefault, fmt.Errorf("unknown auth scheme %q", s)
	}
}

func (s Scheme) String() string {
	switch s {
	case SchemeAPIKey:
		return "api_key"
	case SchemeBearer:
		return "bearer"
	default:
		return "default"
	}
}

// Credential is the provider secret plus the scheme used when an operation
// does not declare its own. The zero value is unusable.
type Credential struct {
	key    string
	scheme Scheme
}

// NewCredential fails with a configuration error when key is blank. A
// SchemeDefault scheme resolves to SchemeAPIKey.
func NewCredential(key string, scheme Scheme) (Credential, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Credential{}, media.Configuration("HEYGEN_API_KEY is required")
	}
	if scheme == SchemeDefault {
		scheme = SchemeAPIKey
	}
	return Credential{key: key, scheme: scheme}, nil
}

// Scheme returns the credential's default scheme.
func (c Credential) Scheme() Scheme {
	return c.scheme
}

func (c Credential) String() string {
	return "heygen.Credential{" + redacted + "}"
}

func (c Credential) GoString() string {
	return c.String()
}

func (c Credential) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// Binder owns the credential for the process lifetime and turns a declared
// scheme into outbound headers.
type Binder struct {
	cred Credential
}

func NewBinder(cred Credential) (*Binder, error) {
	if cred.key == "" {
		return nil, media.Configuration("credential is not loaded")
	}
	return &Binder{cred: cred}, nil
}

// Headers returns the authentication headers for scheme.
func (b *Binder) Headers(scheme Scheme) http.Header {
	if scheme == SchemeDefault {
		scheme = b.cred.scheme
	}
	h := http.Header{}
	switch scheme {
	case SchemeBearer:
		h.Set("Authorization", "Bearer "+b.cred.key)
	default:
		h.Set(apiKeyHeader, b.cred.key)
	}
	return h
}

// Apply copies the headers for scheme onto req.
func (b *Binder) Apply(req *http.Request, scheme Scheme) {
	for k, values := range b.Headers(scheme) {
		for _, v := range values {
			req.Header.Set(k, v)
		}
	}
}

// Redact removes every occurrence of the key from s.
func (b *Binder) Redact(s string) string {
	if b == nil || b.cred.key == "" {
		return s
	}
	return strings.ReplaceAll(s, b.cred.key, redacted)
}
