package repository

import (
	"context"

	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update persiste el producto solo si la versión almacenada es expectedVersion
	// (bloqueo optimista); si no, devuelve domain.ErrConflict.
	Update(ctx context.Context, product *entity.Product, expectedVersion int) error
	// FindActiveByLocation devuelve el producto STORED o PENDING_WITHDRAWAL en la ubicación.
	FindActiveByLocation(ctx context.Context, locationID string) (*entity.Product, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.Product, error)
}
