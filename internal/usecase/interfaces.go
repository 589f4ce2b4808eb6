package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/n8n"
)

// Classifier é o contrato do cliente de classificação (OpenRouter).
// Uma chamada remota por invocação, sem retry.
type Classifier interface {
	Classify(ctx context.Context, lead *entity.Lead) (*entity.LeadAnalysis, error)
}

// ContactRelay encaminha a mensagem do atendente para o webhook de automação.
type ContactRelay interface {
	Forward(ctx context.Context, input n8n.ForwardInput) error
}

// EventPublisher publica o change feed de leads (criado/analisado).
// Best-effort: falha aqui nunca derruba a requisição.
type EventPublisher interface {
	LeadCreated(ctx context.Context, lead *entity.Lead) error
	LeadAnalyzed(ctx context.Context, lead *entity.Lead) error
}
