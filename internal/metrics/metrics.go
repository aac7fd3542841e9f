// Package metrics 定义进程内的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests 按路由/方法/状态码统计请求数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vidverse",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	// HTTPDuration 请求耗时
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vidverse",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// ToggleOutcomes 点赞/订阅切换结果，outcome 为 created 或 removed
	ToggleOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vidverse",
		Name:      "toggle_outcomes_total",
		Help:      "Relationship toggles by kind and outcome.",
	}, []string{"kind", "outcome"})

	// ProbeResults 时长探测结果，status 为 ok 或 failed
	ProbeResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vidverse",
		Name:      "probe_results_total",
		Help:      "Duration probe results received from the media worker.",
	}, []string{"status"})
)

// ObserveToggle 记录一次切换
func ObserveToggle(kind string, created bool) {
	outcome := "removed"
	if created {
		outcome = "created"
	}
	ToggleOutcomes.WithLabelValues(kind, outcome).Inc()
}
