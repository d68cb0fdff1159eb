package middleware

import (
	"net/http"
	"time"

	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/metrics"
)

// statusRecorder envolve o http.ResponseWriter para capturar o status code
// escrito pelo handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// NewLoggingMiddleware loga cada requisição (método, rota, status, duração)
// e alimenta o coletor de métricas.
func NewLoggingMiddleware(log logger.Logger, collector *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			duration := time.Since(start)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.statusCode,
				"duration_ms": float64(duration.Nanoseconds()) / float64(time.Millisecond),
			}

			if rec.statusCode >= 500 {
				log.Warn("Requisição concluída com erro de servidor.", fields)
			} else {
				log.Info("Requisição concluída.", fields)
			}

			if collector != nil {
				collector.RecordHTTPStatus(rec.statusCode)
				collector.RecordRequestLatency(duration)
			}
		})
	}
}
