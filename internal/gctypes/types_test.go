package gctypes

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGCDecisionShouldGC(t *testing.T) {
	assert.False(t, GCDecision{Cause: CauseNoGC}.ShouldGC())
	assert.True(t, GCDecision{Cause: CauseTimer}.ShouldGC())
	assert.True(t, GCDecision{Cause: CauseWarmup}.ShouldGC())
	assert.True(t, GCDecision{Cause: CauseProactive}.ShouldGC())
	assert.True(t, GCDecision{Cause: CauseAllocationRate}.ShouldGC())
	assert.True(t, GCDecision{Cause: CauseHighUsage}.ShouldGC())
}

func TestDriverRequestCorrelationID(t *testing.T) {
	req := DriverRequest{CorrelationID: uuid.New(), Cause: CauseTimer}
	assert.NotEqual(t, uuid.Nil, req.CorrelationID)

	var zero DriverRequest
	assert.Equal(t, uuid.Nil, zero.CorrelationID)
}
