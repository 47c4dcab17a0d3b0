package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.ChamberRepository  = (*ChamberRepo)(nil)
)

const locationColumns = `id, chamber_id, code, quadra, lado, fila, andar, max_capacity, current_weight, occupied, created_at, updated_at`

// LocationRepo adaptador de ubicaciones (ledger de capacidad).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ChamberID, l.Code, l.Coordinates.Quadra, l.Coordinates.Lado, l.Coordinates.Fila, l.Coordinates.Andar,
		l.MaxCapacity, l.CurrentWeight, l.Occupied, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s ya existe en la cámara", domain.ErrDuplicate, l.Code)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return r.get(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *LocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Location, error) {
	return r.get(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1 FOR UPDATE`, id)
}

func (r *LocationRepo) get(ctx context.Context, query, id string) (*entity.Location, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// UpdateWeight persiste current_weight y occupied. El UPDATE solo aplica dentro de [0, max_capacity];
// si no aplica se relee la fila para informar la holgura real. El CHECK de la tabla queda como respaldo.
func (r *LocationRepo) UpdateWeight(ctx context.Context, l *entity.Location) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE locations SET current_weight = $2, occupied = $3, updated_at = now()
		 WHERE id = $1 AND $2 >= 0 AND $2 <= max_capacity`,
		l.ID, l.CurrentWeight, l.Occupied,
	)
	if err != nil {
		if isCheckViolation(err) && constraintName(err) == constraintLocationCapacity {
			return fmt.Errorf("%w: ubicación %s", domain.ErrInsufficientCapacity, l.ID)
		}
		return fmt.Errorf("update location weight: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	var stored, max decimal.Decimal
	err = r.q.QueryRow(ctx, `SELECT current_weight, max_capacity FROM locations WHERE id = $1`, l.ID).Scan(&stored, &max)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFoundf("ubicación %s", l.ID)
		}
		return fmt.Errorf("get location weight: %w", err)
	}
	return capacityExceeded(l.ID, l.CurrentWeight, stored, max)
}

// capacityExceeded arma el CapacityError a partir del peso almacenado antes de la escritura.
func capacityExceeded(id string, next, stored, max decimal.Decimal) error {
	available := max.Sub(stored)
	if available.IsNegative() {
		available = decimal.Zero
	}
	return &domain.CapacityError{LocationID: id, Requested: next.Sub(stored), Available: available}
}

func (r *LocationRepo) ListByChamber(ctx context.Context, chamberID string, limit, offset int) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE chamber_id = $1 ORDER BY code LIMIT $2 OFFSET $3`,
		chamberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *LocationRepo) ListCodesByChamber(ctx context.Context, chamberID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT code FROM locations WHERE chamber_id = $1`, chamberID)
	if err != nil {
		return nil, fmt.Errorf("list location codes: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan location code: %w", err)
	}
	return codes, nil
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	c := &l.Coordinates
	err := row.Scan(&l.ID, &l.ChamberID, &l.Code, &c.Quadra, &c.Lado, &c.Fila, &c.Andar,
		&l.MaxCapacity, &l.CurrentWeight, &l.Occupied, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ChamberRepo adaptador de cámaras.
type ChamberRepo struct {
	q Querier
}

// NewChamberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChamberRepository(q Querier) *ChamberRepo {
	return &ChamberRepo{q: q}
}

const chamberColumns = `id, name, description, quadras, lados, filas, andares, default_capacity, created_at, updated_at`

func (r *ChamberRepo) Create(ctx context.Context, c *entity.Chamber) error {
	_, err := r.q.Exec(ctx, `INSERT INTO chambers (`+chamberColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Description, c.Quadras, c.Lados, c.Filas, c.Andares, c.DefaultCapacity, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cámara %s", domain.ErrDuplicate, c.Name)
		}
		return fmt.Errorf("insert chamber: %w", err)
	}
	return nil
}

func (r *ChamberRepo) GetByID(ctx context.Context, id string) (*entity.Chamber, error) {
	c, err := scanChamber(r.q.QueryRow(ctx, `SELECT `+chamberColumns+` FROM chambers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chamber: %w", err)
	}
	return c, nil
}

func (r *ChamberRepo) List(ctx context.Context, limit, offset int) ([]*entity.Chamber, error) {
	rows, err := r.q.Query(ctx, `SELECT `+chamberColumns+` FROM chambers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chambers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Chamber
	for rows.Next() {
		c, err := scanChamber(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chamber: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanChamber(row pgx.Row) (*entity.Chamber, error) {
	var c entity.Chamber
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Quadras, &c.Lados, &c.Filas, &c.Andares,
		&c.DefaultCapacity, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
