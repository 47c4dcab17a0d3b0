package repository

import (
	"context"

	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// SeedTypeRepository catálogo de tipos de semilla.
type SeedTypeRepository interface {
	Create(ctx context.Context, seedType *entity.SeedType) error
	GetByID(ctx context.Context, id string) (*entity.SeedType, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SeedType, error)
}

// ClientRepository depositantes.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
}
