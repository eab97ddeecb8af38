package rabbitmq

import (
	"sync"

	"go.uber.org/zap"

	"checkout-server/models"
)

// OutcomeTracker counts consumed payment events by result code and target view.
type OutcomeTracker struct {
	mu          sync.Mutex
	total       int64
	resultCodes map[string]int64
	targets     map[string]int64
	logger      *zap.SugaredLogger
}

func NewOutcomeTracker(logger *zap.SugaredLogger) *OutcomeTracker {
	return &OutcomeTracker{
		resultCodes: make(map[string]int64),
		targets:     make(map[string]int64),
		logger:      logger,
	}
}

func (t *OutcomeTracker) Record(event models.PaymentEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.resultCodes[event.ResultCode]++
	t.targets[event.Target]++

	t.logger.Infow("recorded payment event",
		"event_id", event.EventID,
		"operation", event.Operation,
		"result_code", event.ResultCode,
		"target", event.Target,
		"total", t.total)
}

func (t *OutcomeTracker) Total() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

func (t *OutcomeTracker) ResultCodeCount(code string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resultCodes[code]
}

func (t *OutcomeTracker) TargetCount(target string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.targets[target]
}

// LogSummary logs the totals, typically on shutdown.
func (t *OutcomeTracker) LogSummary() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.logger.Infow("payment event summary",
		"total", t.total,
		"result_codes", copyCounts(t.resultCodes),
		"targets", copyCounts(t.targets))
}

func copyCounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
