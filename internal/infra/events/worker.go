package events

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
)

// AlertSender define o contrato de notificação de lead quente.
type AlertSender interface {
	SendHotLeadAlert(to string, data mail.HotLeadAlertData) error
}

type Worker struct {
	Channel *amqp.Channel
	Mail    AlertSender
	AlertTo string
}

func NewWorker(ch *amqp.Channel, mailSender AlertSender, alertTo string) *Worker {
	return &Worker{
		Channel: ch,
		Mail:    mailSender,
		AlertTo: alertTo,
	}
}

// Start consome a fila de eventos de análise e avisa o time de vendas
// por email quando um lead sai como Hot.
func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [ALERTS] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			if payload.Event != "lead.analyzed" || payload.QualityScore != entity.QualityHot {
				// Não é lead quente, nada a fazer.
				d.Ack(false)
				continue
			}

			log.Printf("🔥 [ALERTS] Lead quente: %s (%s)", payload.Name, payload.Email)

			data := mail.HotLeadAlertData{
				Name:         payload.Name,
				Email:        payload.Email,
				BusinessType: payload.BusinessType,
				Summary:      payload.Summary,
				QualityScore: payload.QualityScore,
				NextAction:   payload.NextAction,
			}

			if err := w.Mail.SendHotLeadAlert(w.AlertTo, data); err != nil {
				log.Printf("❌ [ALERTS] Erro ao enviar alerta: %s", err)
				// Alerta é best-effort: rejeita sem requeue, o dashboard
				// continua mostrando o lead de qualquer jeito.
				d.Nack(false, false)
			} else {
				log.Printf("✅ [ALERTS] Alerta enviado para %s", w.AlertTo)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de alertas rodando e aguardando na fila '%s'", queueName)
	<-forever
}
