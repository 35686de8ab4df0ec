package heygen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gateway/internal/domain/media"
	"gateway/internal/infra"
)

const (
	defaultBaseURL = "https://api.heygen.com"
	defaultTimeout = 30 * time.Second
	// maxResponseBytes bounds how much of an upstream body is buffered.
	maxResponseBytes = 8 << 20
	maxMessageLength = 300
)

// Options configures the upstream client.
type Options struct {
	Binder     *Binder
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *infra.Logger
	// Schemes overrides the declared scheme of operations by name.
	Schemes map[string]Scheme
}

// Client issues calls against the provider and reports every HTTP status as
// a normal result. Only transport failures are errors.
type Client struct {
	binder     *Binder
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *infra.Logger
	schemes    map[string]Scheme
}

// Call is one outbound request.
type Call struct {
	Op    Operation
	ID    string
	Query url.Values
	Body  any
}

// Response is the upstream answer. Body holds the decoded JSON; when the
// payload is not JSON, Body is nil and Text carries it verbatim.
type Response struct {
	Status int
	Body   any
	Text   string
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// NewClient constructs a client. A nil binder is a configuration error.
func NewClient(opts Options) (*Client, error) {
	if opts.Binder == nil {
		return nil, media.Configuration("heygen: credential binder is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, media.Configuration("heygen: invalid base url %q", baseURL)
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	schemes := make(map[string]Scheme, len(opts.Schemes))
	for name, scheme := range opts.Schemes {
		schemes[name] = scheme
	}
	return &Client{
		binder:     opts.Binder,
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
		schemes:    schemes,
	}, nil
}

// Logger exposes the client's logger to the services built on it.
func (c *Client) Logger() *infra.Logger {
	return c.logger
}

func (c *Client) scheme(op Operation) Scheme {
	if s, ok := c.schemes[op.Name]; ok && s != SchemeDefault {
		return s
	}
	return op.Scheme
}

func (c *Client) endpoint(call Call) string {
	path := call.Op.Path
	if strings.Contains(path, "%s") {
		path = fmt.Sprintf(path, url.PathEscape(call.ID))
	}
	u := c.baseURL + path
	if len(call.Query) > 0 {
		u += "?" + call.Query.Encode()
	}
	return u
}

// Do performs call exactly once. The outbound request is detached from the
// caller's cancellation and bounded by the client timeout only, so work the
// provider may already have started is not abandoned halfway.
func (c *Client) Do(ctx context.Context, call Call) (*Response, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	var body io.Reader
	if call.Body != nil {
		raw, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("heygen: encode %s request: %w", call.Op.Name, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, call.Op.Method, c.endpoint(call), body)
	if err != nil {
		return nil, fmt.Errorf("heygen: build %s request: %w", call.Op.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.binder.Apply(req, c.scheme(call.Op))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(call.Op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.transportError(call.Op, err)
	}
	out := &Response{Status: resp.StatusCode}
	if len(bytes.TrimSpace(raw)) > 0 {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			out.Body = decoded
		} else {
			out.Text = string(raw)
		}
	}
	c.logger.Debug().
		Str("operation", call.Op.Name).
		Int("status", out.Status).
		Dur("elapsed", time.Since(start)).
		Msg("heygen: upstream call")
	return out, nil
}

func (c *Client) transportError(op Operation, err error) *media.Error {
	timeout := errors.Is(err, context.DeadlineExceeded)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		timeout = true
	}
	msg := fmt.Sprintf("%s: upstream unreachable", op.Name)
	if timeout {
		msg = fmt.Sprintf("%s: upstream timed out after %s", op.Name, c.timeout)
	}
	c.logger.Warn().
		Str("operation", op.Name).
		Bool("timeout", timeout).
		Str("cause", c.binder.Redact(err.Error())).
		Msg("heygen: transport failure")
	return media.Transport(msg, timeout, err)
}

// Reject converts a non-2xx response into an UpstreamRejected error whose
// message comes from the provider's error shape, never the raw payload.
func (c *Client) Reject(op Operation, resp *Response) *media.Error {
	msg := c.binder.Redact(upstreamMessage(resp))
	c.logger.Info().
		Str("operation", op.Name).
		Int("status", resp.Status).
		Str("message", msg).
		Msg("heygen: upstream rejected request")
	return media.Rejected(resp.Status, msg)
}

func upstreamMessage(resp *Response) string {
	if m, ok := resp.Body.(map[string]any); ok {
		if msg := errorField(m["error"]); msg != "" {
			return truncate(msg)
		}
		if msg := String(m, "message", "msg", "detail"); msg != "" {
			return truncate(msg)
		}
		if data, ok := m["data"].(map[string]any); ok {
			if msg := errorField(data["error"]); msg != "" {
				return truncate(msg)
			}
		}
	}
	if text := strings.TrimSpace(resp.Text); text != "" && !strings.HasPrefix(text, "<") {
		return truncate(text)
	}
	return http.StatusText(resp.Status)
}

// errorField reads the provider's error value, which is either a string or
// an object with message/detail/code.
func errorField(v any) string {
	switch e := v.(type) {
	case string:
		return strings.TrimSpace(e)
	case map[string]any:
		return String(e, "message", "detail", "code")
	}
	return ""
}

func truncate(s string) string {
	if len(s) <= maxMessageLength {
		return s
	}
	return s[:maxMessageLength] + "..."
}
