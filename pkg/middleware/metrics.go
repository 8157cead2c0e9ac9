package middleware

import (
	"net/http"
	"time"

	"github.com/vfg2006/toystore-admin-api/pkg/metrics"
)

// MetricsMiddleware registra contagem e duração das requisições de uma rota.
// Usa o padrão da rota (ex.: /v1/clients/:id) para não explodir a cardinalidade.
func MetricsMiddleware(collector metrics.Collector, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			collector.IncrementRequestCounter(r.Method, route, lrw.statusCode)
			collector.RecordRequestLatency(r.Method, route, time.Since(start).Seconds())
		})
	}
}
