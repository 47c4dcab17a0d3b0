package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// MovementFilter filtros para consultas del ledger. Los vacíos no filtran.
type MovementFilter struct {
	ProductID  string
	LocationID string // origen o destino
	UserID     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// MovementRepository define el puerto de persistencia del ledger de movimientos (append-only).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// UpdateMetadata solo persiste los campos de verificación y cancelación.
	UpdateMetadata(ctx context.Context, movement *entity.Movement) error
	// LockProduct serializa los registros manuales de un producto hasta el fin de la transacción.
	LockProduct(ctx context.Context, productID string) error
	// FindRecentDuplicate busca un movimiento no cancelado con la misma clave desde since.
	FindRecentDuplicate(ctx context.Context, key entity.MovementKey, since time.Time) (*entity.Movement, error)
	// List devuelve la proyección de lectura, siempre del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*entity.MovementView, error)
}
