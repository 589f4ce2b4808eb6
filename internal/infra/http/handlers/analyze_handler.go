package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type AnalyzeHandler struct {
	AnalyzeUC *usecase.AnalyzeLeadUseCase
}

func NewAnalyzeHandler(uc *usecase.AnalyzeLeadUseCase) *AnalyzeHandler {
	return &AnalyzeHandler{AnalyzeUC: uc}
}

type AnalyzeRequest struct {
	LeadID string `json:"leadId"`
}

type AnalyzeResponse struct {
	Success  bool                 `json:"success"`
	Analysis *entity.LeadAnalysis `json:"analysis"`
}

// Handle (POST /api/analyze) — roda o pipeline de análise para um lead.
func (h *AnalyzeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	if req.LeadID == "" {
		respondError(w, http.StatusBadRequest, "Lead ID is required")
		return
	}

	start := time.Now()
	analysis, err := h.AnalyzeUC.Execute(r.Context(), req.LeadID)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrLeadNotFound):
			respondError(w, http.StatusNotFound, "Lead not found")
		case errors.Is(err, usecase.ErrAnalysisInProgress):
			respondError(w, http.StatusConflict, err.Error())
		default:
			middleware.RecordAnalysis("failed", time.Since(start))
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	middleware.RecordAnalysis("success", time.Since(start))

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		Success:  true,
		Analysis: analysis,
	})
}
