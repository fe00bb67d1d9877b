package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"trade-journal-go/internal/ai"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/stats"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log  *zap.Logger
	repo *journal.Repository
	ai   ai.ClientInterface
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, repo *journal.Repository, aiClient ai.ClientInterface) *APIHandler {
	return &APIHandler{log: log, repo: repo, ai: aiClient}
}

// filteredTrades applies the symbol and time-frame query parameters to the
// full journal. Every read endpoint shares this view.
func (h *APIHandler) filteredTrades(r *http.Request) []models.Trade {
	q := r.URL.Query()
	frame := stats.TimeFrame(q.Get("timeframe"))
	if frame == "" {
		frame = stats.FrameAll
	}
	window := stats.ResolveWindow(frame, q.Get("start"), q.Get("end"), time.Now())
	return stats.Filter(h.repo.List(), q.Get("symbol"), window)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// ListTradesHandler returns the filtered trade list.
func (h *APIHandler) ListTradesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.filteredTrades(r))
}

// CreateTradeHandler records a new trade. Invalid input yields 400 and no
// record is created.
func (h *APIHandler) CreateTradeHandler(w http.ResponseWriter, r *http.Request) {
	var in journal.TradeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	trade, err := h.repo.Create(r.Context(), in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, trade)
}

// UpdateTradeHandler replaces a trade by id.
func (h *APIHandler) UpdateTradeHandler(w http.ResponseWriter, r *http.Request) {
	var in journal.TradeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	trade, err := h.repo.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	writeJSON(w, trade)
}

// DeleteTradeHandler removes a trade by id.
func (h *APIHandler) DeleteTradeHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			h.log.Error("Failed to delete trade", zap.Error(err))
			http.Error(w, "failed to delete trade", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatisticsHandler returns summary metrics for the filtered view.
func (h *APIHandler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.Aggregate(h.filteredTrades(r)))
}

// SeriesHandler returns the daily and cumulative realized-profit series.
func (h *APIHandler) SeriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.DailySeries(h.filteredTrades(r)))
}

// RankingsHandler returns per-symbol realized profit, best first.
func (h *APIHandler) RankingsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.RankBySymbol(h.filteredTrades(r)))
}

// AllocationHandler returns per-symbol deployed capital shares.
func (h *APIHandler) AllocationHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.Allocation(h.filteredTrades(r)))
}

// analysisResponse wraps the AI narrative for the dashboard.
type analysisResponse struct {
	Analysis string `json:"analysis"`
}

// AnalysisHandler asks the AI collaborator for a narrative review of the
// filtered view. Failures surface as the sentinel text, never as a 5xx.
func (h *APIHandler) AnalysisHandler(w http.ResponseWriter, r *http.Request) {
	trades := h.filteredTrades(r)
	text := h.ai.Analyze(r.Context(), trades, stats.Aggregate(trades))
	writeJSON(w, analysisResponse{Analysis: text})
}

// PriceHandler performs a best-effort price lookup. A miss or a failed call
// returns a JSON null body rather than an error status.
func (h *APIHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	quote, err := h.ai.LookupPrice(r.Context(), symbol)
	if err != nil {
		h.log.Warn("Price lookup failed", zap.String("symbol", symbol), zap.Error(err))
		quote = nil
	}
	writeJSON(w, quote)
}
