package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type ContactHandler struct {
	ContactUC *usecase.ContactLeadUseCase
}

func NewContactHandler(uc *usecase.ContactLeadUseCase) *ContactHandler {
	return &ContactHandler{ContactUC: uc}
}

// Handle (POST /api/contact) — repassa a mensagem do atendente para o
// webhook de automação. A resposta espelha o sucesso/falha do forward.
func (h *ContactHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	if err := h.ContactUC.Execute(r.Context(), input); err != nil {
		if usecase.IsDomainError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		middleware.RecordIntegrationError("n8n")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
