package models

import "time"

// PaymentEvent is emitted after every payments or payments/details call.
type PaymentEvent struct {
	EventID      string    `json:"event_id"`
	Operation    string    `json:"operation"`
	Reference    string    `json:"reference,omitempty"`
	MethodType   string    `json:"method_type,omitempty"`
	ResultCode   string    `json:"result_code"`
	Target       string    `json:"target"`
	PspReference string    `json:"psp_reference,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
