package heygen

import (
	"gateway/internal/domain/media"
	"gateway/internal/infra"
)

// NewClientFromConfig builds the credential, binder and client from the
// process configuration. Every failure is a configuration error.
func NewClientFromConfig(cfg *infra.Config, logger *infra.Logger) (*Client, error) {
	if cfg == nil {
		return nil, media.Configuration("config is required")
	}
	scheme, err := ParseScheme(cfg.HeyGenAuthScheme)
	if err != nil {
		return nil, media.Configuration("HEYGEN_AUTH_SCHEME: %v", err)
	}
	cred, err := NewCredential(cfg.HeyGenAPIKey, scheme)
	if err != nil {
		return nil, err
	}
	binder, err := NewBinder(cred)
	if err != nil {
		return nil, err
	}
	known := Operations()
	overrides := make(map[string]Scheme, len(cfg.OperationSchemes))
	for name, raw := range cfg.OperationSchemes {
		if _, ok := known[name]; !ok {
			return nil, media.Configuration("unknown operation %q in scheme overrides", name)
		}
		s, err := ParseScheme(raw)
		if err != nil {
			return nil, media.Configuration("operation %s: %v", name, err)
		}
		overrides[name] = s
	}
	return NewClient(Options{
		Binder:  binder,
		BaseURL: cfg.HeyGenBaseURL,
		Timeout: cfg.UpstreamTimeout,
		Logger:  logger,
		Schemes: overrides,
	})
}
