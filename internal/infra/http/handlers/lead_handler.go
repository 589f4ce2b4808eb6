package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type LeadHandler struct {
	CreateLeadUC *usecase.CreateLeadUseCase
	LeadRepo     entity.LeadRepositoryInterface
}

func NewLeadHandler(uc *usecase.CreateLeadUseCase, leadRepo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{
		CreateLeadUC: uc,
		LeadRepo:     leadRepo,
	}
}

// HandleCreate (POST /api/leads) — captura pública do formulário.
// Não dispara análise: o front chama /api/analyze separadamente.
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	lead, err := h.CreateLeadUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RecordLeadCaptured()

	respondJSON(w, http.StatusCreated, lead)
}

// HandleList (GET /api/leads) — todos os leads, mais recentes primeiro.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.FindAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}

	respondJSON(w, http.StatusOK, leads)
}
