package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/kanaconv/internal/db"
	"github.com/jusunglee/kanaconv/internal/transliteration"
)

type HealthHandler struct {
	repo db.Repository // optional
	log  *slog.Logger
}

func NewHealthHandler(repo db.Repository, log *slog.Logger) *HealthHandler {
	return &HealthHandler{repo: repo, log: log}
}

// Health checks that the engine converts and, when configured, that the
// history store answers.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if transliteration.ToRomaji("かな") != "kana" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "engine failure"})
		return
	}

	if h.repo != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, err := h.repo.CountConversions(ctx); err != nil {
			h.log.WarnContext(r.Context(), "history store unhealthy", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "history": "unavailable"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
