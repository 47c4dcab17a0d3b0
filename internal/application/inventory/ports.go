package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/internal/domain/repository"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Products    repository.ProductRepository
	Locations   repository.LocationRepository
	Chambers    repository.ChamberRepository
	Movements   repository.MovementRepository
	Withdrawals repository.WithdrawalRequestRepository
	SeedTypes   repository.SeedTypeRepository
	Clients     repository.ClientRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
// Estado del producto, ledger y capacidad se escriben siempre en la misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Metrics observador de eventos del motor (Prometheus en producción).
type Metrics interface {
	Transition(from, to entity.ProductStatus)
	MovementRecorded(t entity.MovementType, automatic bool)
	Rejected(op string, err error)
}

// NopMetrics descarta todas las observaciones.
type NopMetrics struct{}

func (NopMetrics) Transition(entity.ProductStatus, entity.ProductStatus) {}
func (NopMetrics) MovementRecorded(entity.MovementType, bool)            {}
func (NopMetrics) Rejected(string, error)                                {}

// Config parámetros del motor.
type Config struct {
	MaxBatchSize    int
	DuplicateWindow time.Duration
	// Now reloj inyectable; nil usa time.Now.
	Now func() time.Time
}

// Valores por defecto.
const (
	DefaultMaxBatchSize    = 50
	DefaultDuplicateWindow = 5 * time.Minute
)

func (c Config) withDefaults() Config {
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = DefaultMaxBatchSize
	}
	if c.DuplicateWindow <= 0 {
		c.DuplicateWindow = DefaultDuplicateWindow
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Deps dependencias compartidas por los casos de uso del motor.
type Deps struct {
	Tx      TxRunner
	Log     *logger.Logger
	Metrics Metrics
	Config  Config
}

func (d Deps) normalize() Deps {
	d.Config = d.Config.withDefaults()
	if d.Metrics == nil {
		d.Metrics = NopMetrics{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}
