// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(method, path string, statusCode int)
	RecordCommentCreated()
	RecordCommentDeleted()
	RecordEventCreated()
	RecordUserInfoLatency(duration time.Duration)
	RecordUserInfoFailure()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	commentsCreated prometheus.Counter
	commentsDeleted prometheus.Counter
	eventsCreated   prometheus.Counter
	userinfoLatency prometheus.Histogram
	userinfoFail    prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mdblog_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"method", "path", "status_code"}),
		commentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mdblog_comments_created_total",
			Help: "作成されたコメントの合計数",
		}),
		commentsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mdblog_comments_deleted_total",
			Help: "削除されたコメントの合計数",
		}),
		eventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mdblog_events_created_total",
			Help: "作成されたイベントの合計数",
		}),
		userinfoLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mdblog_userinfo_latency_seconds",
			Help:    "IdP userinfoエンドポイント呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		userinfoFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mdblog_userinfo_fail_total",
			Help: "IdP userinfo呼び出し失敗の合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.commentsCreated,
		c.commentsDeleted,
		c.eventsCreated,
		c.userinfoLatency,
		c.userinfoFail,
	)

	return c
}

// RecordHTTPStatus はHTTPレスポンスのステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(method, path string, statusCode int) {
	c.httpStatus.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
}

// RecordCommentCreated はコメント作成を記録する。
func (c *Collector) RecordCommentCreated() {
	c.commentsCreated.Inc()
}

// RecordCommentDeleted はコメント削除を記録する。
func (c *Collector) RecordCommentDeleted() {
	c.commentsDeleted.Inc()
}

// RecordEventCreated はイベント作成を記録する。
func (c *Collector) RecordEventCreated() {
	c.eventsCreated.Inc()
}

// RecordUserInfoLatency はuserinfo呼び出しのレイテンシを記録する。
func (c *Collector) RecordUserInfoLatency(duration time.Duration) {
	c.userinfoLatency.Observe(duration.Seconds())
}

// RecordUserInfoFailure はuserinfo呼び出し失敗を記録する。
func (c *Collector) RecordUserInfoFailure() {
	c.userinfoFail.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
