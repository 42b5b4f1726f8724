// Package metrics Prometheus指标
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/iBreaker/baidu-trans/pkg/baidu"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 请求结果分类
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeVendor    = "vendor_error"
	OutcomeOther     = "error"
)

// Metrics 翻译网关的全部指标
type Metrics struct {
	// 上游百度接口
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	VendorErrors    *prometheus.CounterVec

	// 网关HTTP接口
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics 创建并注册指标，reg为nil时使用默认注册表
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "baidu_trans_requests_total",
			Help: "Total number of requests sent to the Baidu translation API",
		}, []string{"endpoint", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "baidu_trans_request_duration_seconds",
			Help:    "Latency of requests to the Baidu translation API",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		VendorErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "baidu_trans_vendor_errors_total",
			Help: "Business error codes returned by the Baidu translation API",
		}, []string{"endpoint", "code"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "baidu_trans_http_requests_total",
			Help: "Total number of HTTP requests handled by the gateway",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "baidu_trans_http_request_duration_seconds",
			Help:    "Latency of HTTP requests handled by the gateway",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Observe 实现baidu.Observer
func (m *Metrics) Observe(endpoint baidu.Endpoint, duration time.Duration, err error) {
	ep := string(endpoint)
	m.Requests.WithLabelValues(ep, Outcome(err)).Inc()
	m.RequestDuration.WithLabelValues(ep).Observe(duration.Seconds())

	var ve *baidu.VendorError
	if errors.As(err, &ve) {
		m.VendorErrors.WithLabelValues(ep, ve.Code.String()).Inc()
	}
}

// ObserveHTTP 记录一次网关HTTP请求
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Outcome 按错误类型分类
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}

	var (
		te *baidu.TransportError
		de *baidu.DeserializationError
		ve *baidu.VendorError
	)
	switch {
	case errors.As(err, &ve):
		return OutcomeVendor
	case errors.As(err, &de):
		return OutcomeDecode
	case errors.As(err, &te):
		return OutcomeTransport
	default:
		return OutcomeOther
	}
}
