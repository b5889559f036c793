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
// サービス層、ストアの診断シンク、HTTPミドルウェアから利用する。
type MetricsCollector interface {
	RecordStoreFault(op string)
	RecordLikeToggled(liked bool)
	RecordCommentAdded()
	RecordPostCreated()
	RecordDraftSaved()
	RecordHTTPStatus(statusCode int)
	RecordProjectionLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	storeFaults       *prometheus.CounterVec
	likes             *prometheus.CounterVec
	commentsAdded     prometheus.Counter
	postsCreated      prometheus.Counter
	draftsSaved       prometheus.Counter
	httpStatus        *prometheus.CounterVec
	projectionLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		storeFaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamfeed_store_faults_total",
			Help: "ストアアクセス障害の操作別件数",
		}, []string{"op"}),
		likes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamfeed_like_toggles_total",
			Help: "いいねトグルの件数（like / unlike）",
		}, []string{"action"}),
		commentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teamfeed_comments_added_total",
			Help: "追加されたコメントの合計数",
		}),
		postsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teamfeed_posts_created_total",
			Help: "作成された投稿の合計数",
		}),
		draftsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teamfeed_drafts_saved_total",
			Help: "保存された下書きの合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teamfeed_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		projectionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "teamfeed_projection_latency_seconds",
			Help:    "フィード射影のレイテンシ（秒）",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	reg.MustRegister(
		c.storeFaults,
		c.likes,
		c.commentsAdded,
		c.postsCreated,
		c.draftsSaved,
		c.httpStatus,
		c.projectionLatency,
	)

	return c
}

// RecordStoreFault はストアアクセス障害を記録する。
func (c *Collector) RecordStoreFault(op string) {
	c.storeFaults.WithLabelValues(op).Inc()
}

// RecordLikeToggled はいいねトグルを記録する。liked=trueはいいね、falseは取り消し。
func (c *Collector) RecordLikeToggled(liked bool) {
	action := "unlike"
	if liked {
		action = "like"
	}
	c.likes.WithLabelValues(action).Inc()
}

// RecordCommentAdded はコメント追加を記録する。
func (c *Collector) RecordCommentAdded() {
	c.commentsAdded.Inc()
}

// RecordPostCreated は投稿作成を記録する。
func (c *Collector) RecordPostCreated() {
	c.postsCreated.Inc()
}

// RecordDraftSaved は下書き保存を記録する。
func (c *Collector) RecordDraftSaved() {
	c.draftsSaved.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordProjectionLatency はフィード射影のレイテンシを記録する。
func (c *Collector) RecordProjectionLatency(duration time.Duration) {
	c.projectionLatency.Observe(duration.Seconds())
}

// Nop は何も記録しないMetricsCollector。テストやメトリクス無効時に使う。
type Nop struct{}

func (Nop) RecordStoreFault(string) {}
func (Nop) RecordLikeToggled(bool) {}
func (Nop) RecordCommentAdded() {}
func (Nop) RecordPostCreated() {}
func (Nop) RecordDraftSaved() {}
func (Nop) RecordHTTPStatus(int) {}
func (Nop) RecordProjectionLatency(time.Duration) {}

var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = Nop{}
)

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
