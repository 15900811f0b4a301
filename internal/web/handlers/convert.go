package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/jusunglee/kanaconv/internal/db"
	"github.com/jusunglee/kanaconv/internal/metrics"
	"github.com/jusunglee/kanaconv/internal/transliteration"
	"github.com/jusunglee/kanaconv/internal/web/middleware"
	"golang.org/x/sync/errgroup"
)

const (
	maxBodyBytes  = 1 << 20
	maxTextRunes  = 10_000
	maxBatchTexts = 100
)

type ConvertHandler struct {
	conv *transliteration.Converter
	repo db.Repository // nil disables history
	log  *slog.Logger
}

func NewConvertHandler(conv *transliteration.Converter, repo db.Repository, log *slog.Logger) *ConvertHandler {
	return &ConvertHandler{conv: conv, repo: repo, log: log}
}

// options is the JSON form of transliteration.Config. Empty fields take the
// DefaultConfig value.
type options struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Convention string `json:"convention,omitempty"`
	LongVowel  string `json:"long_vowel,omitempty"`
	Apostrophe *bool  `json:"apostrophe,omitempty"`
	Case       string `json:"case,omitempty"`
	Normalize  bool   `json:"normalize,omitempty"`
}

func (o options) config() (transliteration.Config, error) {
	from, err := transliteration.ParseScript(o.From)
	if err != nil {
		return transliteration.Config{}, err
	}
	to, err := transliteration.ParseScript(o.To)
	if err != nil {
		return transliteration.Config{}, err
	}
	cfg := transliteration.DefaultConfig(from, to)
	if o.Convention != "" {
		if cfg.Convention, err = transliteration.ParseConvention(o.Convention); err != nil {
			return cfg, err
		}
	}
	if o.LongVowel != "" {
		if cfg.LongVowel, err = transliteration.ParseLongVowelStyle(o.LongVowel); err != nil {
			return cfg, err
		}
	}
	if o.Case != "" {
		if cfg.Case, err = transliteration.ParseCaseStyle(o.Case); err != nil {
			return cfg, err
		}
	}
	if o.Apostrophe != nil {
		cfg.Apostrophe = *o.Apostrophe
	}
	cfg.Normalize = o.Normalize
	return cfg, cfg.Validate()
}

type convertRequest struct {
	Text string `json:"text"`
	options
}

type convertResponse struct {
	Output     string `json:"output"`
	From       string `json:"from"`
	To         string `json:"to"`
	Convention string `json:"convention"`
	HistoryID  *int64 `json:"history_id,omitempty"`
}

func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if utf8.RuneCountInString(req.Text) > maxTextRunes {
		writeError(w, http.StatusRequestEntityTooLarge, "text is too long")
		return
	}

	cfg, err := req.config()
	if err != nil {
		writeConfigError(w, err)
		return
	}

	out, err := h.convert(req.Text, cfg)
	if err != nil {
		h.log.ErrorContext(r.Context(), "converting text", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := convertResponse{
		Output:     out,
		From:       cfg.From.String(),
		To:         cfg.To.String(),
		Convention: cfg.Convention.String(),
	}
	if h.repo != nil {
		if id, err := record(r.Context(), h.repo, req.Text, out, cfg); err != nil {
			h.log.WarnContext(r.Context(), "recording conversion", "error", err)
		} else {
			resp.HistoryID = &id
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type batchRequest struct {
	Texts []string `json:"texts"`
	options
}

type batchResponse struct {
	Outputs    []string `json:"outputs"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Convention string   `json:"convention"`
}

// Batch converts many texts with one configuration, in parallel.
func (h *ConvertHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts is required")
		return
	}
	if len(req.Texts) > maxBatchTexts {
		writeError(w, http.StatusRequestEntityTooLarge, "too many texts")
		return
	}

	cfg, err := req.config()
	if err != nil {
		writeConfigError(w, err)
		return
	}

	outputs := make([]string, len(req.Texts))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range req.Texts {
		g.Go(func() error {
			out, err := h.convert(text, cfg)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.log.ErrorContext(r.Context(), "converting batch", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	metrics.BatchSize.Observe(float64(len(req.Texts)))

	if h.repo != nil {
		err := h.repo.WithTx(r.Context(), func(tx db.Repository) error {
			for i, text := range req.Texts {
				if text == "" {
					continue
				}
				if _, err := record(r.Context(), tx, text, outputs[i], cfg); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			h.log.WarnContext(r.Context(), "recording batch", "texts", len(req.Texts), "error", err)
		}
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Outputs:    outputs,
		From:       cfg.From.String(),
		To:         cfg.To.String(),
		Convention: cfg.Convention.String(),
	})
}

func (h *ConvertHandler) convert(text string, cfg transliteration.Config) (string, error) {
	direction := cfg.From.String() + "->" + cfg.To.String()
	start := time.Now()
	out, err := h.conv.Convert(text, cfg)
	if err != nil {
		metrics.ConversionsTotal.WithLabelValues(direction, "error").Inc()
		return "", err
	}
	metrics.ConversionsTotal.WithLabelValues(direction, "ok").Inc()
	metrics.ConversionDuration.WithLabelValues(direction).Observe(time.Since(start).Seconds())
	metrics.ConversionInputRunes.Observe(float64(utf8.RuneCountInString(text)))
	return out, nil
}

func record(ctx context.Context, repo db.Repository, input, output string, cfg transliteration.Config) (int64, error) {
	reqID := middleware.RequestIDFrom(ctx)
	c, err := repo.RecordConversion(ctx, db.RecordConversionParams{
		Input:      input,
		Output:     output,
		FromScript: cfg.From.String(),
		ToScript:   cfg.To.String(),
		Convention: cfg.Convention.String(),
		RequestID:  sql.NullString{String: reqID, Valid: reqID != ""},
	})
	if err != nil {
		metrics.HistoryWritesTotal.WithLabelValues("error").Inc()
		return 0, err
	}
	metrics.HistoryWritesTotal.WithLabelValues("ok").Inc()
	return c.ID, nil
}

func writeConfigError(w http.ResponseWriter, err error) {
	var ce *transliteration.ConfigError
	if errors.As(err, &ce) {
		writeError(w, http.StatusBadRequest, ce.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
