package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jusunglee/kanaconv/internal/db"
	"github.com/samber/lo"
)

type HistoryHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewHistoryHandler(repo db.Repository, log *slog.Logger) *HistoryHandler {
	return &HistoryHandler{repo: repo, log: log}
}

type conversionResponse struct {
	ID         int64   `json:"id"`
	Input      string  `json:"input"`
	Output     string  `json:"output"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	Convention string  `json:"convention"`
	RequestID  *string `json:"request_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func toConversionResponse(c db.Conversion) conversionResponse {
	resp := conversionResponse{
		ID:         c.ID,
		Input:      c.Input,
		Output:     c.Output,
		From:       c.FromScript,
		To:         c.ToScript,
		Convention: c.Convention,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if c.RequestID.Valid {
		resp.RequestID = &c.RequestID.String
	}
	return resp
}

type historyListResponse struct {
	Data  []conversionResponse `json:"data"`
	Total int64                `json:"total"`
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 25
	}

	conversions, err := h.repo.ListRecentConversions(r.Context(), int32(limit))
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	total, err := h.repo.CountConversions(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, historyListResponse{
		Data:  lo.Map(conversions, func(c db.Conversion, _ int) conversionResponse { return toConversionResponse(c) }),
		Total: total,
	})
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.repo.GetConversion(r.Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			writeError(w, http.StatusNotFound, "conversion not found")
			return
		}
		h.log.ErrorContext(r.Context(), "getting conversion", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toConversionResponse(c))
}

type directionStat struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int64  `json:"count"`
}

type statsResponse struct {
	Total      int64           `json:"total"`
	Directions []directionStat `json:"directions"`
}

func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.repo.CountConversionsByDirection(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting by direction", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Total: lo.SumBy(counts, func(c db.DirectionCount) int64 { return c.Count }),
		Directions: lo.Map(counts, func(c db.DirectionCount, _ int) directionStat {
			return directionStat{From: c.FromScript, To: c.ToScript, Count: c.Count}
		}),
	})
}

// Prune deletes history older than the "before" timestamp (RFC 3339) or
// the "older_than" duration.
func (h *HistoryHandler) Prune(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var before time.Time
	switch {
	case q.Get("before") != "":
		t, err := time.Parse(time.RFC3339, q.Get("before"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "before must be an RFC 3339 timestamp")
			return
		}
		before = t
	case q.Get("older_than") != "":
		d, err := time.ParseDuration(q.Get("older_than"))
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, "older_than must be a positive duration")
			return
		}
		before = time.Now().Add(-d)
	default:
		writeError(w, http.StatusBadRequest, "before or older_than is required")
		return
	}

	n, err := h.repo.DeleteConversionsBefore(r.Context(), before)
	if err != nil {
		h.log.ErrorContext(r.Context(), "pruning history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.InfoContext(r.Context(), "history pruned", "before", before, "rows", n)
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
