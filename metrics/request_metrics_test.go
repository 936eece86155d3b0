package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestMetrics(t *testing.T) {
	t.Run("InitialStats", func(t *testing.T) {
		m := NewRequestMetrics()

		stats := m.GetStats()
		assert.Equal(t, int64(0), stats["requests"])
		assert.Equal(t, int64(0), stats["failures"])
		assert.Equal(t, 0.0, stats["failure_ratio"])
	})

	t.Run("RecordSuccess", func(t *testing.T) {
		m := NewRequestMetrics()

		m.RecordSuccess("loc_search", 0.120)
		m.RecordSuccess("loc_search", 0.080)

		stats := m.GetStats()
		assert.Equal(t, int64(2), stats["requests"])
		assert.Equal(t, int64(0), stats["failures"])
	})

	t.Run("RecordFailure", func(t *testing.T) {
		m := NewRequestMetrics()

		m.RecordSuccess("currentconditions", 0.050)
		m.RecordFailure("currentconditions", "UNAUTHORISED_ERROR", 0.030)

		stats := m.GetStats()
		assert.Equal(t, int64(2), stats["requests"])
		assert.Equal(t, int64(1), stats["failures"])
		assert.Equal(t, 0.5, stats["failure_ratio"])
	})

	t.Run("SharedCollector", func(t *testing.T) {
		first := NewRequestMetrics()
		second := NewRequestMetrics()

		assert.Same(t, first.collector, second.collector)
	})
}
