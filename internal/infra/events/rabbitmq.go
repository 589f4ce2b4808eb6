package events

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName    = "ex.leads"
	AlertQueueName  = "q.lead-alerts"
	KeyLeadCreated  = "k.lead.created"
	KeyLeadAnalyzed = "k.lead.analyzed"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(user, pass, host, port string) (*RabbitMQ, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(dsn)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir canal: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

// setupTopology declara o exchange do change feed e a fila de alertas.
// O feed é enriquecimento best-effort: sem DLQ, sem garantia de entrega.
func setupTopology(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	_, err = ch.QueueDeclare(AlertQueueName, true, false, false, false, nil)
	if err != nil {
		return err
	}

	// Só eventos de análise interessam ao worker de alertas.
	err = ch.QueueBind(AlertQueueName, KeyLeadAnalyzed, ExchangeName, false, nil)
	if err != nil {
		return err
	}

	return nil
}
