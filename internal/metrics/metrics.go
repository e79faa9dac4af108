package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shoe_store"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	orderOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_operations_total",
			Help:      "Total number of order operations",
		},
		[]string{"operation", "status"},
	)

	voucherOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voucher_operations_total",
			Help:      "Voucher validations and applications by result",
		},
		[]string{"operation", "result"},
	)

	paymentResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vnpay_returns_total",
			Help:      "VNPay return callbacks by response code",
		},
		[]string{"response_code"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)
)

// ObserveHTTP 记录 HTTP 请求指标
func ObserveHTTP(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOrderOperation 记录订单操作指标
func RecordOrderOperation(operation string, success bool) {
	orderOperations.WithLabelValues(operation, statusLabel(success)).Inc()
}

// RecordVoucherOperation 记录优惠券操作结果（result 为消息键或 error）
func RecordVoucherOperation(operation, result string) {
	voucherOperations.WithLabelValues(operation, result).Inc()
}

// RecordPaymentReturn 记录 VNPay 回调响应码
func RecordPaymentReturn(responseCode string) {
	if responseCode == "" {
		responseCode = "unknown"
	}
	paymentResults.WithLabelValues(responseCode).Inc()
}

// RecordCacheLookup 记录缓存命中情况
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(cache, result).Inc()
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
