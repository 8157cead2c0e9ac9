package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registra as métricas da API e dos relatórios de vendas
type Collector interface {
	IncrementRequestCounter(method, route string, status int)
	RecordRequestLatency(method, route string, seconds float64)
	RecordBusinessMetric(metricName string, value float64)
	IncrementErrorCounter(errorType string)
}

// PrometheusCollector implementa Collector usando Prometheus
type PrometheusCollector struct {
	registry        *prometheus.Registry
	requestCounter  *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	businessMetrics *prometheus.GaugeVec
	errorCounter    *prometheus.CounterVec
}

// NewPrometheusCollector cria as métricas em um registry próprio, o que
// permite instanciar mais de um coletor (por exemplo, nos testes)
func NewPrometheusCollector() *PrometheusCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &PrometheusCollector{
		registry: registry,

		// Contador de requisições por rota e status
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms a ~32s
			},
			[]string{"method", "route"},
		),

		// Números do painel: receita, clientes ativos, VIPs etc.
		businessMetrics: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "toystore_business_metrics",
				Help: "Sales report figures from the latest snapshot",
			},
			[]string{"metric_name"},
		),

		errorCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"error_type"},
		),
	}
}

func (c *PrometheusCollector) IncrementRequestCounter(method, route string, status int) {
	c.requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (c *PrometheusCollector) RecordRequestLatency(method, route string, seconds float64) {
	c.requestLatency.WithLabelValues(method, route).Observe(seconds)
}

func (c *PrometheusCollector) RecordBusinessMetric(metricName string, value float64) {
	c.businessMetrics.WithLabelValues(metricName).Set(value)
}

func (c *PrometheusCollector) IncrementErrorCounter(errorType string) {
	c.errorCounter.WithLabelValues(errorType).Inc()
}

// GetRegistry retorna o registry onde as métricas foram registradas
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler expõe as métricas no formato do Prometheus
func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
