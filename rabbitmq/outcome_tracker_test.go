package rabbitmq

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"checkout-server/models"
)

func TestOutcomeTracker_Record(t *testing.T) {
	tracker := NewOutcomeTracker(zap.NewNop().Sugar())

	tracker.Record(models.PaymentEvent{EventID: "1", ResultCode: "Authorised", Target: "success"})
	tracker.Record(models.PaymentEvent{EventID: "2", ResultCode: "Refused", Target: "failed"})
	tracker.Record(models.PaymentEvent{EventID: "3", ResultCode: "Authorised", Target: "success"})

	assert.Equal(t, int64(3), tracker.Total())
	assert.Equal(t, int64(2), tracker.ResultCodeCount("Authorised"))
	assert.Equal(t, int64(1), tracker.TargetCount("failed"))
	assert.Zero(t, tracker.ResultCodeCount("Pending"))
	tracker.LogSummary()
}

func TestOutcomeTracker_Concurrent(t *testing.T) {
	tracker := NewOutcomeTracker(zap.NewNop().Sugar())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record(models.PaymentEvent{ResultCode: "Pending", Target: "pending"})
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), tracker.Total())
	assert.Equal(t, int64(50), tracker.TargetCount("pending"))
}
