package repository

import (
	"context"

	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// WithdrawalRequestRepository define el puerto de persistencia para solicitudes de retiro.
type WithdrawalRequestRepository interface {
	// Create devuelve domain.ErrConflict si ya hay una solicitud PENDENTE para el producto.
	Create(ctx context.Context, req *entity.WithdrawalRequest) error
	GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error)
	GetForUpdate(ctx context.Context, id string) (*entity.WithdrawalRequest, error)
	Update(ctx context.Context, req *entity.WithdrawalRequest) error
	FindPendingByProduct(ctx context.Context, productID string) (*entity.WithdrawalRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]*entity.WithdrawalRequest, error)
}
