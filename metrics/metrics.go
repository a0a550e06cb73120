// Package metrics 统计域名检查和阅读请求，可导出为prometheus文本格式文件
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ts_domains"

// Collector 基于独立registry的指标集合，nil Collector的所有方法均为空操作
type Collector struct {
	registry *prometheus.Registry

	Queries      *prometheus.CounterVec // 按结果统计的域名查询数
	InputDomains prometheus.Gauge       // 构造集合前的域名数
	SetSize      prometheus.Gauge       // 去重后保留的域名数
	Requests     *prometheus.CounterVec // 按类型统计的阅读请求数
}

// NewCollector 创建指标集合
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Collector{
		registry: registry,
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_queries_total",
			Help:      "Domain queries answered, by verdict.",
		}, []string{"verdict"}),
		InputDomains: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "blocklist_input_domains",
			Help:      "Forbidden domains read before deduplication.",
		}),
		SetSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "blocklist_retained_domains",
			Help:      "Forbidden domains retained after deduplication.",
		}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "motivator_requests_total",
			Help:      "Reading motivator requests, by kind.",
		}, []string{"kind"}),
	}
}

// ObserveSet 记录集合构造前后的大小
func (c *Collector) ObserveSet(input, retained int) {
	if c == nil {
		return
	}
	c.InputDomains.Set(float64(input))
	c.SetSize.Set(float64(retained))
}

// ObserveVerdict 记录一次域名查询结果
func (c *Collector) ObserveVerdict(blocked bool) {
	if c == nil {
		return
	}
	verdict := "allowed"
	if blocked {
		verdict = "blocked"
	}
	c.Queries.WithLabelValues(verdict).Inc()
}

// ObserveRequest 记录一次阅读请求，kind为read或cheer
func (c *Collector) ObserveRequest(kind string) {
	if c == nil {
		return
	}
	c.Requests.WithLabelValues(kind).Inc()
}

// WriteToTextfile 以node_exporter textfile格式写出当前指标
func (c *Collector) WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, c.registry)
}
