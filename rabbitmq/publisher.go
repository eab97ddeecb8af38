package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"checkout-server/models"
)

const publishTimeout = 5 * time.Second

type Publisher struct {
	pool      *ChannelPool
	queueName string
	logger    *zap.SugaredLogger
}

func NewPublisher(pool *ChannelPool, queueName string, logger *zap.SugaredLogger) *Publisher {
	return &Publisher{
		pool:      pool,
		queueName: queueName,
		logger:    logger,
	}
}

// PublishPaymentEvent publishes a payment outcome to the events queue.
func (p *Publisher) PublishPaymentEvent(ctx context.Context, event models.PaymentEvent) error {
	ch, err := p.pool.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.ReturnChannel(ch)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Type:         event.Operation,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debugw("published payment event", "event_id", event.EventID, "result_code", event.ResultCode)
	return nil
}
