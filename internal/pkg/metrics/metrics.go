// Package metrics expõe os contadores Prometheus da API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector agrega as métricas da aplicação.
type Collector struct {
	registry       *prometheus.Registry
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
	productsMade   prometheus.Counter
	enrichFail     prometheus.Counter
}

// NewCollector cria o coletor e registra as métricas em um registry próprio.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gocatalog_http_status_total",
			Help: "Total de respostas HTTP por status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gocatalog_request_latency_seconds",
			Help:    "Latência das requisições HTTP em segundos.",
			Buckets: prometheus.DefBuckets,
		}),
		productsMade: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gocatalog_products_created_total",
			Help: "Total de produtos criados com sucesso.",
		}),
		enrichFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gocatalog_enrichment_fail_total",
			Help: "Total de falhas do colaborador de geração de texto.",
		}),
	}

	reg.MustRegister(c.httpStatus, c.requestLatency, c.productsMade, c.enrichFail)
	return c
}

// RecordHTTPStatus incrementa o contador do status code informado.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency observa a duração de uma requisição.
func (c *Collector) RecordRequestLatency(d time.Duration) {
	c.requestLatency.Observe(d.Seconds())
}

// RecordProductCreated incrementa o contador de produtos criados.
func (c *Collector) RecordProductCreated() {
	c.productsMade.Inc()
}

// RecordEnrichmentFailure incrementa o contador de falhas de enriquecimento.
func (c *Collector) RecordEnrichmentFailure() {
	c.enrichFail.Inc()
}

// Handler devolve o handler HTTP do endpoint /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
