package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type CreateLeadInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BusinessType string `json:"business_type"`
	Budget       string `json:"budget"`
	Timeline     string `json:"timeline"`
	Requirement  string `json:"requirement"`
}

type CreateLeadUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Events EventPublisher
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface, events EventPublisher) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Repo:   repo,
		Events: events,
	}
}

// Execute valida e persiste um novo lead. NÃO dispara a análise de IA:
// captura precisa responder rápido e independente da disponibilidade do modelo.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	validationErrors := ValidateCreateLeadInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	lead, err := entity.NewLead(
		input.Name,
		input.Email,
		input.Phone,
		input.BusinessType,
		input.Requirement,
		input.Budget,
		input.Timeline,
	)
	if err != nil {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrConstraintViolation) {
			return nil, &DomainError{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead",
			Err:     err,
		}
	}

	// Change feed é enriquecimento: o dashboard pode igualmente fazer poll.
	if uc.Events != nil {
		go func() {
			if err := uc.Events.LeadCreated(context.Background(), lead); err != nil {
				log.Printf("⚠️ [LEADS] Falha ao publicar lead.created para %s: %v", lead.ID, err)
			}
		}()
	}

	return lead, nil
}
