package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// LeadEventPayload é o evento publicado no change feed a cada mutação
// de lead. O dashboard assina isso para atualização ao vivo; o core
// nunca lê de volta.
type LeadEventPayload struct {
	Event        string    `json:"event"` // lead.created | lead.analyzed
	LeadID       string    `json:"lead_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BusinessType string    `json:"business_type"`
	Summary      string    `json:"ai_summary,omitempty"`
	QualityScore string    `json:"lead_quality_score,omitempty"`
	NextAction   string    `json:"suggested_next_action,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Publisher struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewPublisher(conn *amqp.Connection, ch *amqp.Channel) *Publisher {
	return &Publisher{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *Publisher) LeadCreated(ctx context.Context, lead *entity.Lead) error {
	return p.publish(ctx, KeyLeadCreated, payloadFrom("lead.created", lead))
}

func (p *Publisher) LeadAnalyzed(ctx context.Context, lead *entity.Lead) error {
	return p.publish(ctx, KeyLeadAnalyzed, payloadFrom("lead.analyzed", lead))
}

func (p *Publisher) publish(ctx context.Context, routingKey string, payload LeadEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Transient, // Feed é efêmero, não vale disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}

func payloadFrom(event string, lead *entity.Lead) LeadEventPayload {
	payload := LeadEventPayload{
		Event:        event,
		LeadID:       lead.ID,
		Name:         lead.Name,
		Email:        lead.Email,
		BusinessType: lead.BusinessType,
		OccurredAt:   time.Now(),
	}

	if lead.AISummary != nil {
		payload.Summary = *lead.AISummary
	}
	if lead.LeadQualityScore != nil {
		payload.QualityScore = *lead.LeadQualityScore
	}
	if lead.SuggestedNextAction != nil {
		payload.NextAction = *lead.SuggestedNextAction
	}

	return payload
}
