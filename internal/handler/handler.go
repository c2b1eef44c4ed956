package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/cash-insights/internal/middleware"
	"github.com/Dan9191/cash-insights/internal/models"
	"github.com/sirupsen/logrus"
)

// maxRequestBody bounds posted analysis snapshots
const maxRequestBody = 10 << 20

// Analysis is the part of the service the handlers need
type Analysis interface {
	Analyze(ctx context.Context, ownerID string) (*models.AnalysisResult, error)
	ServeAnalysis(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalysisResult, error)
}

// RateSource provides the central bank key rate
type RateSource interface {
	KeyRate(ctx context.Context) (float64, error)
}

type Handler struct {
	svc   Analysis
	rates RateSource
	log   *logrus.Logger
}

func NewHandler(svc Analysis, rates RateSource, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, rates: rates, log: log}
}

// Health reports that this process can serve analysis requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthStatus{Status: "ok", Message: "analysis service running"})
}

// AnalyzeRequest runs the local analysis over a posted snapshot
func (h *Handler) AnalyzeRequest(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.ServeAnalysis(r.Context(), &req)
	if err != nil {
		h.log.Errorf("Served analysis failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Dashboard analyzes the records of the authenticated user
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	result, err := h.svc.Analyze(r.Context(), userID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.log.Errorf("Dashboard analysis failed for %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// KeyRate returns the current central bank key rate
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.rates.KeyRate(r.Context())
	if err != nil {
		h.log.Errorf("Failed to get key rate: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"erro": "failed to get key rate"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"key_rate": rate})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.AnalysisResult{
		Patterns:        []models.CategoryPattern{},
		Insights:        []models.Insight{},
		Forecast:        []models.CashFlowPoint{},
		Recommendations: []string{},
		Success:         false,
		Error:           message,
	})
}
