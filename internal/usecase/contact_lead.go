package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/infra/integration/n8n"
)

type ContactLeadInput struct {
	LeadID    string `json:"leadId"`
	LeadName  string `json:"leadName"`
	LeadEmail string `json:"leadEmail"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type ContactLeadUseCase struct {
	Relay ContactRelay
}

func NewContactLeadUseCase(relay ContactRelay) *ContactLeadUseCase {
	return &ContactLeadUseCase{Relay: relay}
}

// Execute repassa a mensagem do atendente para o webhook do n8n.
// O relay existe só para não expor a origem do webhook ao browser.
func (uc *ContactLeadUseCase) Execute(ctx context.Context, input ContactLeadInput) error {
	if strings.TrimSpace(input.LeadID) == "" {
		return &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "leadId is required",
		}
	}
	if strings.TrimSpace(input.Message) == "" {
		return &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "message is required",
		}
	}

	err := uc.Relay.Forward(ctx, n8n.ForwardInput{
		LeadID:    input.LeadID,
		LeadName:  input.LeadName,
		LeadEmail: input.LeadEmail,
		Message:   input.Message,
		Timestamp: input.Timestamp,
	})
	if err != nil {
		return &TechnicalError{
			Code:    "RELAY_ERROR",
			Message: "failed to forward message to automation webhook",
			Err:     err,
		}
	}

	return nil
}
