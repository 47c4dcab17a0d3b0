package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/internal/domain/repository"
)

var (
	_ repository.SeedTypeRepository = (*SeedTypeRepo)(nil)
	_ repository.ClientRepository   = (*ClientRepo)(nil)
)

// SeedTypeRepo catálogo de tipos de semilla.
type SeedTypeRepo struct {
	q Querier
}

func NewSeedTypeRepository(q Querier) *SeedTypeRepo {
	return &SeedTypeRepo{q: q}
}

func (r *SeedTypeRepo) Create(ctx context.Context, s *entity.SeedType) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO seed_types (id, name, max_storage_days, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.MaxStorageDays, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tipo de semilla %s", domain.ErrDuplicate, s.Name)
		}
		return fmt.Errorf("insert seed type: %w", err)
	}
	return nil
}

func (r *SeedTypeRepo) GetByID(ctx context.Context, id string) (*entity.SeedType, error) {
	var s entity.SeedType
	err := r.q.QueryRow(ctx, `SELECT id, name, max_storage_days, created_at FROM seed_types WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.MaxStorageDays, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seed type: %w", err)
	}
	return &s, nil
}

func (r *SeedTypeRepo) List(ctx context.Context, limit, offset int) ([]*entity.SeedType, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, max_storage_days, created_at FROM seed_types ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list seed types: %w", err)
	}
	defer rows.Close()
	var list []*entity.SeedType
	for rows.Next() {
		var s entity.SeedType
		if err := rows.Scan(&s.ID, &s.Name, &s.MaxStorageDays, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan seed type: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ClientRepo depositantes.
type ClientRepo struct {
	q Querier
}

func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO clients (id, name, document, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Document, c.Email, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cliente %s", domain.ErrDuplicate, c.ID)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, `SELECT id, name, document, email, created_at, updated_at FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Document, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, document, email, created_at, updated_at FROM clients ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Document, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
