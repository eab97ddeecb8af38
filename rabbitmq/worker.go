package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"checkout-server/models"
)

// Worker consumes payment events from the queue into an OutcomeTracker.
type Worker struct {
	workerID  int
	channel   *amqp.Channel
	queueName string
	tracker   *OutcomeTracker
	logger    *zap.SugaredLogger
}

func NewWorker(workerID int, conn *amqp.Connection, queueName string, tracker *OutcomeTracker, logger *zap.SugaredLogger) (*Worker, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel for worker %d: %w", workerID, err)
	}

	if err := declareQueue(ch, queueName); err != nil {
		ch.Close()
		return nil, err
	}

	// one unacknowledged message per worker
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to set QoS for worker %d: %w", workerID, err)
	}

	return &Worker{
		workerID:  workerID,
		channel:   ch,
		queueName: queueName,
		tracker:   tracker,
		logger:    logger.With("worker", workerID),
	}, nil
}

// Start consumes until the channel or connection is closed.
func (w *Worker) Start(wg *sync.WaitGroup) {
	defer wg.Done()

	msgs, err := w.channel.Consume(
		w.queueName,                          // queue
		fmt.Sprintf("worker-%d", w.workerID), // consumer tag
		false,                                // auto-ack
		false,                                // exclusive
		false,                                // no-local
		false,                                // no-wait
		nil,                                  // args
	)
	if err != nil {
		w.logger.Errorw("failed to register consumer", "error", err)
		return
	}

	w.logger.Info("worker waiting for payment events")
	for msg := range msgs {
		w.processMessage(msg)
	}
	w.logger.Info("worker stopped")
}

func (w *Worker) processMessage(msg amqp.Delivery) {
	event, err := decodeEvent(msg.Body)
	if err != nil {
		w.logger.Warnw("dropping malformed payment event", "error", err)
		msg.Nack(false, false)
		return
	}

	w.tracker.Record(event)

	if err := msg.Ack(false); err != nil {
		w.logger.Errorw("failed to acknowledge message", "event_id", event.EventID, "error", err)
	}
}

// Stop closes the worker's channel, which ends its delivery loop.
func (w *Worker) Stop() error {
	if w.channel == nil || w.channel.IsClosed() {
		return nil
	}
	if err := w.channel.Close(); err != nil {
		return fmt.Errorf("failed to close channel for worker %d: %w", w.workerID, err)
	}
	return nil
}

func decodeEvent(body []byte) (models.PaymentEvent, error) {
	var event models.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return models.PaymentEvent{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.ResultCode == "" {
		return models.PaymentEvent{}, fmt.Errorf("event %q has no result code", event.EventID)
	}
	return event, nil
}
