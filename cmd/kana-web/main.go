package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/kanaconv/internal/db"
	"github.com/jusunglee/kanaconv/internal/db/store"
	"github.com/jusunglee/kanaconv/internal/logger"
	"github.com/jusunglee/kanaconv/internal/transliteration"
	"github.com/jusunglee/kanaconv/internal/web"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed all:dist
var staticFiles embed.FS

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("kana-web")

	var (
		port              = fs_.Int64Long("port", 3000, "HTTP server port")
		databaseURL       = fs_.StringLong("database-url", "", "History database: postgres:// URL or SQLite path (empty disables history)")
		allowedOrigins    = fs_.StringLong("allowed-origins", "", "Comma-separated list of allowed CORS origins")
		adminAPIKey       = fs_.StringLong("admin-api-key", "", "API key for DELETE /api/v1/history")
		rateLimit         = fs_.IntLong("rate-limit", 120, "Conversion requests per client per minute")
		historyRetention  = fs_.DurationLong("history-retention", 30*24*time.Hour, "How long to keep conversion history (0 keeps forever)")
		retentionInterval = fs_.DurationLong("retention-interval", time.Hour, "How often to prune old history")
	)

	if err := ff.Parse(fs_, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *retentionInterval <= 0 {
		return errors.New("retention-interval must be positive")
	}

	log := logger.New()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	table, err := transliteration.NewTable()
	if err != nil {
		return fmt.Errorf("building symbol tables: %w", err)
	}
	conv := transliteration.NewConverter(table)

	var repo db.Repository
	if *databaseURL != "" {
		repo, err = store.Open(ctx, *databaseURL)
		if err != nil {
			return err
		}
		defer repo.Close()
		log.InfoContext(ctx, "history enabled", "retention", *historyRetention)

		go store.ExportPoolStats(ctx, repo, 15*time.Second)
		if *historyRetention > 0 {
			go store.RunRetention(ctx, repo, *historyRetention, *retentionInterval, log)
		}
	} else {
		log.InfoContext(ctx, "history disabled, no database-url set")
	}

	var origins []string
	if *allowedOrigins != "" {
		for _, o := range strings.Split(*allowedOrigins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	router := web.NewRouter(conv, repo, log, web.Options{
		AllowedOrigins: origins,
		AdminAPIKey:    *adminAPIKey,
		RateLimit:      *rateLimit,
	})
	apiHandler := router.Handler()

	distFS, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		return fmt.Errorf("creating sub filesystem: %w", err)
	}
	fileServer := http.FileServer(http.FS(distFS))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/health" {
			apiHandler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, s-maxage=60, max-age=0")
		fileServer.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
		cancel(errors.New("signal received"))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "server shutdown error", "error", err)
		}
	}()

	log.InfoContext(ctx, "starting web server", "port", *port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
