// Package metrics 提供基于Prometheus的指标收集
//
// 指标一览：
//   - http_requests_total{method,path,code}: HTTP请求总数
//   - http_request_duration_seconds{method,path}: HTTP请求耗时分布
//   - orders_created_total: 下单成功总数
//   - order_amount_fen: 订单金额分布(分)
//   - order_events_published_total{event,result}: 订单事件发布结果
//
// 指标通过 /metrics 端点暴露（promhttp.Handler），由Prometheus定期抓取。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时分布",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ordersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "下单成功总数",
		},
	)

	orderAmountFen = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_amount_fen",
			Help:    "订单金额分布(分)",
			Buckets: []float64{1000, 5000, 10000, 50000, 100000, 500000},
		},
	)

	orderEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "订单事件发布结果",
		},
		[]string{"event", "result"},
	)
)

// GinMiddleware 请求指标中间件
// 说明：path使用路由模板（c.FullPath）而非原始URL，
// 避免/orders/123这类路径导致标签基数爆炸
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未命中路由的请求
		}

		httpRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}

// ObserveOrderCreated 记录一次下单成功
func ObserveOrderCreated(totalFen int64) {
	ordersCreatedTotal.Inc()
	orderAmountFen.Observe(float64(totalFen))
}

// ObserveOrderEvent 记录订单事件发布结果
// result取值：ok | failed | skipped（熔断器打开时）
func ObserveOrderEvent(event, result string) {
	orderEventsPublishedTotal.WithLabelValues(event, result).Inc()
}
