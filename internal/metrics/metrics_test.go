package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordOrderOperationCountsByStatus(t *testing.T) {
	before := counterValue(t, orderOperations.WithLabelValues("create", "success"))
	RecordOrderOperation("create", true)
	RecordOrderOperation("create", false)
	assert.Equal(t, before+1, counterValue(t, orderOperations.WithLabelValues("create", "success")))
	assert.GreaterOrEqual(t, counterValue(t, orderOperations.WithLabelValues("create", "error")), 1.0)
}

func TestObserveHTTPAndCacheLookup(t *testing.T) {
	ObserveHTTP("GET", "/health", 200, 30*time.Millisecond)
	assert.GreaterOrEqual(t, counterValue(t, httpRequestsTotal.WithLabelValues("GET", "/health", "200")), 1.0)

	RecordCacheLookup("statistics", true)
	RecordCacheLookup("statistics", false)
	assert.GreaterOrEqual(t, counterValue(t, cacheLookups.WithLabelValues("statistics", "hit")), 1.0)
	assert.GreaterOrEqual(t, counterValue(t, cacheLookups.WithLabelValues("statistics", "miss")), 1.0)

	RecordPaymentReturn("")
	assert.GreaterOrEqual(t, counterValue(t, paymentResults.WithLabelValues("unknown")), 1.0)
}
