package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"checkout-server/clients"
	"checkout-server/models"
)

const (
	operationPayments = "payments"
	operationDetails  = "payments/details"
)

// EventPublisher receives an event for every provider payment outcome.
type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, event models.PaymentEvent) error
}

// LogPublisher writes payment events to the log when no broker is configured.
type LogPublisher struct {
	logger *zap.SugaredLogger
}

func NewLogPublisher(logger *zap.SugaredLogger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishPaymentEvent(_ context.Context, event models.PaymentEvent) error {
	p.logger.Infow("payment event",
		"event_id", event.EventID,
		"operation", event.Operation,
		"reference", event.Reference,
		"method_type", event.MethodType,
		"result_code", event.ResultCode,
		"target", event.Target)
	return nil
}

func newPaymentEvent(operation, reference, methodType string, resp *clients.PaymentResponse, target string) models.PaymentEvent {
	if reference == "" {
		reference = resp.MerchantReference
	}
	return models.PaymentEvent{
		EventID:      uuid.NewString(),
		Operation:    operation,
		Reference:    reference,
		MethodType:   methodType,
		ResultCode:   resp.ResultCode,
		Target:       target,
		PspReference: resp.PspReference,
		OccurredAt:   time.Now().UTC(),
	}
}

// publishEvent never fails the request; a lost event is only logged.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *zap.SugaredLogger, event models.PaymentEvent) {
	if err := publisher.PublishPaymentEvent(context.WithoutCancel(ctx), event); err != nil {
		logger.Warnw("failed to publish payment event", "event_id", event.EventID, "error", err)
	}
}
