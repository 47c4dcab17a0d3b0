// Package metrics publica contadores Prometheus del motor de inventario y del servidor HTTP.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

var _ inventory.Metrics = (*Engine)(nil)

// Engine métricas del ciclo de vida, del ledger y de las operaciones rechazadas.
type Engine struct {
	transitions *prometheus.CounterVec
	movements   *prometheus.CounterVec
	rejections  *prometheus.CounterVec
}

// NewEngine registra las métricas del motor en reg con el prefijo dado.
func NewEngine(reg prometheus.Registerer, prefix string) *Engine {
	f := promauto.With(reg)
	return &Engine{
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_product_transitions_total",
			Help: "Total de transiciones de estado de productos",
		}, []string{"from", "to"}),
		movements: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_movements_total",
			Help: "Total de movimientos registrados en el ledger",
		}, []string{"type", "automatic"}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_operations_rejected_total",
			Help: "Total de operaciones rechazadas por tipo de error",
		}, []string{"operation", "kind"}),
	}
}

func (e *Engine) Transition(from, to entity.ProductStatus) {
	e.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (e *Engine) MovementRecorded(t entity.MovementType, automatic bool) {
	e.movements.WithLabelValues(string(t), strconv.FormatBool(automatic)).Inc()
}

func (e *Engine) Rejected(op string, err error) {
	e.rejections.WithLabelValues(op, ErrorKind(err)).Inc()
}

// ErrorKind etiqueta de baja cardinalidad para un error de dominio.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransactionAborted):
		return "transaction_aborted"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrInsufficientCapacity):
		return "capacity"
	case errors.Is(err, domain.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}

// HTTP métricas de requests del servidor.
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTP registra las métricas HTTP en reg.
func NewHTTP(reg prometheus.Registerer, prefix string) *HTTP {
	f := promauto.With(reg)
	return &HTTP{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total de requests HTTP",
		}, []string{"method", "path", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duración de los requests HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// Middleware registra cantidad y duración por ruta (el patrón, no la URL concreta).
func (h *HTTP) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		method := c.Method()
		path := c.Route().Path
		code := strconv.Itoa(status)
		h.requests.WithLabelValues(method, path, code).Inc()
		h.duration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		return err
	}
}
