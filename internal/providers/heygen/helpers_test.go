package heygen

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"gateway/internal/domain/media"
)

const testKey = "test-key-123"

type captureTransport struct {
	mu        sync.Mutex
	responses map[string]responseStub
	requests  []*http.Request
	bodies    [][]byte
	roundTrip func(req *http.Request) (*http.Response, error)
}

type responseStub struct {
	status int
	header http.Header
	body   []byte
}

func newCaptureTransport() *captureTransport {
	return &captureTransport{responses: map[string]responseStub{}}
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
	}
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.bodies = append(c.bodies, body)
	stub, ok := c.responses[req.URL.Path]
	c.mu.Unlock()

	if c.roundTrip != nil {
		return c.roundTrip(req)
	}
	if ok {
		return stub.toResponse(), nil
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("not found")),
	}, nil
}

func (c *captureTransport) setJSON(path string, status int, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[path] = responseStub{
		status: status,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   body,
	}
}

func (c *captureTransport) setRaw(path string, status int, body string) {
	c.responses[path] = responseStub{
		status: status,
		header: http.Header{"Content-Type": []string{"text/plain"}},
		body:   []byte(body),
	}
}

func (c *captureTransport) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func (c *captureTransport) lastRequest(t *testing.T) (*http.Request, []byte) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		t.Fatalf("expected an upstream request")
	}
	i := len(c.requests) - 1
	return c.requests[i], c.bodies[i]
}

func (s responseStub) toResponse() *http.Response {
	header := http.Header{}
	for k, values := range s.header {
		cloned := make([]string, len(values))
		copy(cloned, values)
		header[k] = cloned
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(s.body)),
	}
}

func newTestClient(t *testing.T, transport http.RoundTripper, opts ...func(*Options)) *Client {
	t.Helper()
	cred, err := NewCredential(testKey, SchemeAPIKey)
	if err != nil {
		t.Fatalf("new credential: %v", err)
	}
	binder, err := NewBinder(cred)
	if err != nil {
		t.Fatalf("new binder: %v", err)
	}
	o := Options{
		Binder:     binder,
		BaseURL:    "https://api.heygen.test",
		HTTPClient: &http.Client{Transport: transport},
	}
	for _, opt := range opts {
		opt(&o)
	}
	client, err := NewClient(o)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func requireKind(t *testing.T, err error, want media.Kind) *media.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var e *media.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *media.Error, got %T: %v", err, err)
	}
	if e.Kind != want {
		t.Fatalf("kind = %s, want %s (%v)", e.Kind, want, err)
	}
	return e
}
