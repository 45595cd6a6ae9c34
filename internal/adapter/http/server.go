package http

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
	"go.uber.org/zap"

	"github.com/neomorfeo/dealerops/internal/adapter/auth"
	"github.com/neomorfeo/dealerops/internal/app"
)

const serviceName = "dealerops"

// Options configures NewRouter. Logger and Metrics are optional.
type Options struct {
	Services *app.Services
	Tokens   *auth.Tokens
	Logger   *zap.Logger
	Metrics  *Metrics
	Version  string
}

// NewRouter builds the chi router with the middleware stack, the Huma API
// under /api/v1 and the /metrics endpoint.
func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(serviceName)
	}
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(router)))
	router.Use(opts.Metrics.Middleware)
	router.Use(RequestLogger(opts.Logger))

	router.Handle("/metrics", opts.Metrics.Handler())

	api := humachi.New(router, huma.DefaultConfig(serviceName, opts.Version))
	Register(api, opts.Services, opts.Tokens)

	return router
}
