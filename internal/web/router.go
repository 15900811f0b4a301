package web

import (
	"log/slog"
	"net/http"

	"github.com/jusunglee/kanaconv/internal/db"
	"github.com/jusunglee/kanaconv/internal/transliteration"
	"github.com/jusunglee/kanaconv/internal/web/handlers"
	"github.com/jusunglee/kanaconv/internal/web/middleware"
)

type Router struct {
	conv    *transliteration.Converter
	repo    db.Repository
	log     *slog.Logger
	origins []string
	apiKey  string
	limiter *middleware.IPRateLimiter
}

// Options carries the optional router settings.
type Options struct {
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
	// AdminAPIKey guards history deletion. Empty disables the route.
	AdminAPIKey string
	// RateLimit is the number of write requests per client per minute.
	RateLimit int
}

// NewRouter wires the HTTP API. repo may be nil, in which case nothing is
// recorded and the history routes are not registered.
func NewRouter(conv *transliteration.Converter, repo db.Repository, log *slog.Logger, opts Options) *Router {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 120
	}
	return &Router{
		conv:    conv,
		repo:    repo,
		log:     log,
		origins: opts.AllowedOrigins,
		apiKey:  opts.AdminAPIKey,
		limiter: middleware.NewRateLimiter(opts.RateLimit, 60),
	}
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	convertHandler := handlers.NewConvertHandler(r.conv, r.repo, r.log)
	healthHandler := handlers.NewHealthHandler(r.repo, r.log)

	read := func(h http.HandlerFunc, cache string) http.Handler {
		return middleware.Chain(h,
			middleware.RequestID(),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl(cache),
		)
	}
	write := func(h http.HandlerFunc, extra ...middleware.Middleware) http.Handler {
		mws := []middleware.Middleware{
			middleware.RequestID(),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
		}
		return middleware.Chain(h, append(mws, extra...)...)
	}

	mux.Handle("POST /api/v1/convert", write(convertHandler.Convert))
	mux.Handle("POST /api/v1/convert/batch", write(convertHandler.Batch))
	mux.Handle("GET /api/v1/classify", read(handlers.Classify, "public, max-age=3600"))
	mux.Handle("GET /health", read(healthHandler.Health, "no-store"))

	if r.repo != nil {
		historyHandler := handlers.NewHistoryHandler(r.repo, r.log)
		mux.Handle("GET /api/v1/history", read(historyHandler.List, "no-store"))
		mux.Handle("GET /api/v1/history/stats", read(historyHandler.Stats, "no-store"))
		mux.Handle("GET /api/v1/history/{id}", read(historyHandler.Get, "no-store"))
		if r.apiKey != "" {
			mux.Handle("DELETE /api/v1/history", write(historyHandler.Prune, middleware.APIKeyAuth(r.apiKey)))
		}
	}

	return middleware.CORS(r.origins)(mux)
}
