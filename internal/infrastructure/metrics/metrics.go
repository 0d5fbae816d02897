package metrics

import (
	"strconv"
	"time"

	"github.com/jhoicas/invorya-admin/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics colectores Prometheus del servicio: HTTP, editor y caché de catálogo.
type Metrics struct {
	ReqTotal     *prometheus.CounterVec
	ReqDur       *prometheus.HistogramVec
	DraftsOpened *prometheus.CounterVec
	Submissions  *prometheus.CounterVec
	CacheLookups *prometheus.CounterVec
}

// New crea y registra los colectores. reg nil usa el registro por defecto.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "Latencia de peticiones HTTP en milisegundos.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		DraftsOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drafts_opened_total",
			Help:      "Borradores abiertos por tipo de documento.",
		}, []string{"kind"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_submissions_total",
			Help:      "Envíos de borradores por tipo y resultado.",
		}, []string{"kind", "result"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_lookups_total",
			Help:      "Consultas a la caché de catálogo por recurso y resultado (hit, miss, error).",
		}, []string{"resource", "result"}),
	}
	reg.MustRegister(m.ReqTotal, m.ReqDur, m.DraftsOpened, m.Submissions, m.CacheLookups)
	return m
}

func (m *Metrics) DraftOpened(kind entity.DocumentKind) {
	m.DraftsOpened.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) Submission(kind entity.DocumentKind, result string) {
	m.Submissions.WithLabelValues(string(kind), result).Inc()
}

func (m *Metrics) CacheLookup(resource, result string) {
	m.CacheLookups.WithLabelValues(resource, result).Inc()
}

// ObserveRequest registra una petición HTTP ya atendida.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.ReqTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.ReqDur.WithLabelValues(method, route).Observe(float64(elapsed.Microseconds()) / 1000)
}
