package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/TheusHen/kryptolang/kryptolang/cipher"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters exported on /metrics.
type Metrics struct {
	Requests      *prometheus.CounterVec
	CipherResults *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kryptolang_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		CipherResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kryptolang_cipher_results_total",
				Help: "Cipher results by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}
	reg.MustRegister(m.Requests, m.CipherResults)
	return m
}

// instrument counts every request under its chi route pattern.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	})
}

// observeCipher classifies a cipher result by its error prefix.
func (m *Metrics) observeCipher(operation, result string) {
	op, err := cipher.ParseOperation(operation)
	if err != nil {
		return
	}
	outcome := "ok"
	if strings.HasPrefix(result, op.ErrorPrefix()) {
		outcome = "error"
	}
	m.CipherResults.WithLabelValues(op.String(), outcome).Inc()
}
