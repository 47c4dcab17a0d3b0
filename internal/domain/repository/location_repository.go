package repository

import (
	"context"

	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (ledger de capacidad).
type LocationRepository interface {
	// Create devuelve domain.ErrDuplicate si el código ya existe en la cámara.
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Location, error)
	// UpdateWeight persiste current_weight y occupied; rechaza pesos sobre la capacidad máxima.
	UpdateWeight(ctx context.Context, location *entity.Location) error
	ListByChamber(ctx context.Context, chamberID string, limit, offset int) ([]*entity.Location, error)
	ListCodesByChamber(ctx context.Context, chamberID string) ([]string, error)
}

// ChamberRepository define el puerto de persistencia para Chamber.
type ChamberRepository interface {
	Create(ctx context.Context, chamber *entity.Chamber) error
	GetByID(ctx context.Context, id string) (*entity.Chamber, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Chamber, error)
}
