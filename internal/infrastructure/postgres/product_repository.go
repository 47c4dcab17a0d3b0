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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, lot_code, seed_type_id, client_id, quantity, weight_per_unit, total_weight,
	location_id, status, version, entry_date, expiration_date, batch_id, batch_name, created_by, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.LotCode, p.SeedTypeID, p.ClientID, p.Quantity, p.WeightPerUnit, p.TotalWeight,
		p.LocationID, string(p.Status), p.Version, p.EntryDate, p.ExpirationDate, p.BatchID, p.BatchName,
		p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError("insert product", p, err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update persiste el estado con bloqueo optimista sobre version.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product, expectedVersion int) error {
	query := `
		UPDATE products SET quantity = $3, total_weight = $4, location_id = $5, status = $6,
			version = $7, updated_at = $8
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, expectedVersion, p.Quantity, p.TotalWeight, p.LocationID, string(p.Status), p.Version, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError("update product", p, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Conflictf("producto %s modificado concurrentemente (versión esperada %d)", p.ID, expectedVersion)
	}
	return nil
}

// FindActiveByLocation devuelve el producto STORED o PENDING_WITHDRAWAL que ocupa la ubicación.
func (r *ProductRepo) FindActiveByLocation(ctx context.Context, locationID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE location_id = $1 AND status IN ('STORED', 'PENDING_WITHDRAWAL')`
	p, err := scanProduct(r.q.QueryRow(ctx, query, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active product: %w", err)
	}
	return p, nil
}

// ListByBatch productos de un lote en orden de registro.
func (r *ProductRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE batch_id = $1 ORDER BY created_at, id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p      entity.Product
		status string
	)
	err := row.Scan(&p.ID, &p.Name, &p.LotCode, &p.SeedTypeID, &p.ClientID, &p.Quantity, &p.WeightPerUnit, &p.TotalWeight,
		&p.LocationID, &status, &p.Version, &p.EntryDate, &p.ExpirationDate, &p.BatchID, &p.BatchName,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = entity.ProductStatus(status)
	return &p, nil
}

// productWriteError traduce la violación del índice de ocupación única a ErrConflict.
func productWriteError(op string, p *entity.Product, err error) error {
	if isUniqueViolation(err) {
		if constraintName(err) == constraintActiveLocation && p.LocationID != nil {
			return domain.Conflictf("la ubicación %s ya está ocupada", *p.LocationID)
		}
		return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.ID)
	}
	return fmt.Errorf("%s: %w", op, err)
}
