// Command kana-e2e drives the HTTP API end to end: convert, batch,
// classify, history and pruning. It starts an in-process server backed by
// a temporary SQLite file unless E2E_BASE_URL points at a running one.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/kanaconv/internal/db/sqlite"
	"github.com/jusunglee/kanaconv/internal/logger"
	"github.com/jusunglee/kanaconv/internal/transliteration"
	"github.com/jusunglee/kanaconv/internal/web"
	"github.com/oklog/ulid/v2"
)

func main() {
	if err := run(); err != nil {
		slog.Error("E2E FAILED", "error", err)
		os.Exit(1)
	}
	slog.Info("E2E PASSED")
}

func run() error {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	baseURL := os.Getenv("E2E_BASE_URL")
	apiKey := os.Getenv("E2E_ADMIN_API_KEY")

	// Phase 1: bring up a server when none was given
	if baseURL == "" {
		log.Info("Phase 1: Starting in-process server...")
		dbPath := fmt.Sprintf("%s/kana-e2e-%d.db", os.TempDir(), time.Now().UnixNano())
		defer os.Remove(dbPath)

		repo, err := sqlite.New(ctx, dbPath)
		if err != nil {
			return fmt.Errorf("creating temp SQLite: %w", err)
		}
		defer repo.Close()

		apiKey = ulid.Make().String()
		router := web.NewRouter(transliteration.NewConverter(transliteration.Default()), repo, log, web.Options{AdminAPIKey: apiKey})
		srv := httptest.NewServer(router.Handler())
		defer srv.Close()
		baseURL = srv.URL
	} else {
		log.Info("Phase 1: Using running server", "url", baseURL)
	}
	c := &client{base: baseURL, http: &http.Client{Timeout: 10 * time.Second}}

	// Phase 2: single conversions
	log.Info("Phase 2: Converting...")
	cases := []struct {
		body map[string]any
		want string
	}{
		{map[string]any{"text": "しんぶん", "from": "hiragana", "to": "romaji"}, "shimbun"},
		{map[string]any{"text": "きっぷ", "from": "hiragana", "to": "romaji", "convention": "kunrei"}, "kippu"},
		{map[string]any{"text": "kon'ya", "from": "romaji", "to": "hiragana"}, "こんや"},
		{map[string]any{"text": "ラーメン", "from": "katakana", "to": "romaji"}, "rāmen"},
	}
	var lastID int64
	for _, tc := range cases {
		var resp struct {
			Output    string `json:"output"`
			HistoryID int64  `json:"history_id"`
		}
		if err := c.do(http.MethodPost, "/api/v1/convert", tc.body, http.StatusOK, &resp); err != nil {
			return err
		}
		if resp.Output != tc.want {
			return fmt.Errorf("converting %v: got %q, want %q", tc.body["text"], resp.Output, tc.want)
		}
		lastID = resp.HistoryID
		log.Info("converted", "text", tc.body["text"], "output", resp.Output, "history_id", resp.HistoryID)
	}

	// Phase 3: batch
	log.Info("Phase 3: Batch converting...")
	var batch struct {
		Outputs []string `json:"outputs"`
	}
	if err := c.do(http.MethodPost, "/api/v1/convert/batch", map[string]any{
		"texts": []string{"ka", "kya", "n"}, "from": "romaji", "to": "katakana",
	}, http.StatusOK, &batch); err != nil {
		return err
	}
	if fmt.Sprint(batch.Outputs) != "[カ キャ ン]" {
		return fmt.Errorf("batch: got %v", batch.Outputs)
	}

	// Phase 4: classification
	log.Info("Phase 4: Classifying...")
	var classified struct {
		IsKana bool   `json:"is_kana"`
		Romaji string `json:"romaji"`
	}
	if err := c.do(http.MethodGet, "/api/v1/classify?text=%E3%81%8B%E3%81%AA", nil, http.StatusOK, &classified); err != nil {
		return err
	}
	if !classified.IsKana || classified.Romaji != "kana" {
		return fmt.Errorf("classify: unexpected %+v", classified)
	}

	// Phase 5: history
	log.Info("Phase 5: Reading history...")
	if lastID == 0 {
		log.Warn("server has history disabled, skipping history phases")
		return nil
	}
	var got struct {
		Output string `json:"output"`
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/v1/history/%d", lastID), nil, http.StatusOK, &got); err != nil {
		return err
	}
	if got.Output != "rāmen" {
		return fmt.Errorf("history %d: got %q", lastID, got.Output)
	}
	var stats struct {
		Total int64 `json:"total"`
	}
	if err := c.do(http.MethodGet, "/api/v1/history/stats", nil, http.StatusOK, &stats); err != nil {
		return err
	}
	log.Info("history stats", "total", stats.Total)

	// Phase 6: cleanup
	if apiKey == "" {
		log.Warn("E2E_ADMIN_API_KEY not set, skipping prune")
		return nil
	}
	log.Info("Phase 6: Pruning...")
	c.apiKey = apiKey
	var pruned struct {
		Deleted int64 `json:"deleted"`
	}
	before := time.Now().Add(time.Minute).UTC().Format(time.RFC3339)
	if err := c.do(http.MethodDelete, "/api/v1/history?before="+before, nil, http.StatusOK, &pruned); err != nil {
		return err
	}
	log.Info("all verifications passed", "pruned", pruned.Deleted)
	return nil
}

type client struct {
	base   string
	apiKey string
	http   *http.Client
}

func (c *client) do(method, path string, body any, wantStatus int, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, r)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d, want %d: %s", method, path, resp.StatusCode, wantStatus, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}
