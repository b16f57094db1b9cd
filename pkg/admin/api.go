// Package admin provides the REST API for managing workspaces, folders,
// request definitions, and variables, and for executing requests.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getreqd/reqd/pkg/httputil"
	"github.com/getreqd/reqd/pkg/logging"
	"github.com/getreqd/reqd/pkg/runner"
	"github.com/getreqd/reqd/pkg/secrets"
	"github.com/getreqd/reqd/pkg/store"
	"github.com/getreqd/reqd/pkg/template"
)

// Shared JSON writers; handlers use these short names throughout.
var (
	writeJSON       = httputil.WriteJSON
	writeError      = httputil.WriteError
	writeCreated    = httputil.WriteCreated
	writeNoContent  = httputil.WriteNoContent
	writeBadGateway = httputil.WriteBadGateway
)

// API exposes the reqd REST surface over net/http.
type API struct {
	port        int
	httpServer  *http.Server
	dataDir     string
	dataStore   store.Store
	codec       *secrets.Codec
	resolver    *secrets.Resolver
	engine      *template.Engine
	runner      *runner.Runner
	execTimeout time.Duration
	corsConfig  CORSConfig
	log         *slog.Logger
	startTime   time.Time
	version     string
}

// New creates an API listening on the given port once started.
// A port of 0 is valid for tests that invoke handlers directly.
func New(port int, opts ...Option) *API {
	api := &API{
		port:       port,
		log:        logging.Nop(),
		corsConfig: DefaultCORSConfig(),
		startTime:  time.Now(),
		version:    "dev",
	}

	for _, opt := range opts {
		opt(api)
	}

	if api.dataStore == nil {
		fs := store.NewFileStore(api.dataDir, api.log)
		if err := fs.Open(context.Background()); err != nil {
			api.log.Error("failed to open data store", "dataDir", api.dataDir, "error", err)
		}
		api.dataStore = fs
	}

	// The resolver is built even without a codec; secret-touching
	// endpoints report the configuration error per call.
	api.resolver = secrets.NewResolver(api.dataStore.Variables(), api.codec, api.log)
	api.engine = template.New(api.resolver, api.log)
	if api.runner == nil {
		api.runner = runner.New(api.execTimeout, api.log)
	}

	return api
}

// Handler returns the full HTTP handler, routes plus middleware.
// Exposed so tests and embedders can serve the API without Start.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.registerRoutes(mux)
	return a.corsConfig.Middleware(mux)
}

// Start begins serving the API in a background goroutine.
func (a *API) Start() error {
	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.log.Info("admin API starting", "port", a.port)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("admin API server error", "error", err)
		}
	}()
	return nil
}

// Stop shuts the server down gracefully and closes the data store.
func (a *API) Stop() error {
	var firstErr error

	if a.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.httpServer.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}

	if err := a.dataStore.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// logger returns the API's logger.
func (a *API) logger() *slog.Logger { return a.log }
