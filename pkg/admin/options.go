// Option functions for configuring the API.

package admin

import (
	"log/slog"
	"time"

	"github.com/getreqd/reqd/pkg/secrets"
	"github.com/getreqd/reqd/pkg/store"
)

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger used by the API and everything it constructs.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithDataDir sets a custom data directory for the file store.
// Useful for test isolation.
func WithDataDir(dir string) Option {
	return func(a *API) {
		a.dataDir = dir
	}
}

// WithStore injects a pre-opened data store, bypassing the default
// file store construction.
func WithStore(s store.Store) Option {
	return func(a *API) {
		a.dataStore = s
	}
}

// WithCodec sets the variable encryption codec. Without one, variable
// endpoints and workspace-scoped substitution report a configuration error.
func WithCodec(c *secrets.Codec) Option {
	return func(a *API) {
		a.codec = c
	}
}

// WithExecuteTimeout bounds outbound calls made by the execute endpoint.
// Zero (the default) leaves them unbounded.
func WithExecuteTimeout(d time.Duration) Option {
	return func(a *API) {
		if d > 0 {
			a.execTimeout = d
		}
	}
}

// WithCORS configures the CORS settings for the API.
// If not set, a permissive configuration (allow all origins) is used.
func WithCORS(config CORSConfig) Option {
	return func(a *API) {
		a.corsConfig = config
	}
}

// WithVersion sets the version string reported by the status endpoint.
func WithVersion(v string) Option {
	return func(a *API) {
		if v != "" {
			a.version = v
		}
	}
}
