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

var _ repository.WithdrawalRequestRepository = (*WithdrawalRequestRepo)(nil)

const withdrawalColumns = `id, product_id, requested_by, type, status, quantity_requested, reason,
	snapshot_name, snapshot_lot_code, snapshot_quantity, snapshot_weight, snapshot_location_id, snapshot_location,
	resolved_by, resolved_at, resolution_notes, created_at, updated_at`

// WithdrawalRequestRepo adaptador de solicitudes de retiro.
type WithdrawalRequestRepo struct {
	q Querier
}

// NewWithdrawalRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWithdrawalRequestRepository(q Querier) *WithdrawalRequestRepo {
	return &WithdrawalRequestRepo{q: q}
}

// Create devuelve ErrConflict si el índice parcial detecta otra solicitud PENDENTE del producto.
func (r *WithdrawalRequestRepo) Create(ctx context.Context, w *entity.WithdrawalRequest) error {
	query := `INSERT INTO withdrawal_requests (` + withdrawalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	s := w.Snapshot
	_, err := r.q.Exec(ctx, query,
		w.ID, w.ProductID, w.RequestedBy, string(w.Type), string(w.Status), w.QuantityRequested, w.Reason,
		s.ProductName, s.LotCode, s.Quantity, s.TotalWeight, s.LocationID, s.LocationCode,
		w.ResolvedBy, w.ResolvedAt, w.ResolutionNotes, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == constraintPendingWithdrawal {
			return domain.Conflictf("el producto %s ya tiene una solicitud de retiro pendiente", w.ProductID)
		}
		return fmt.Errorf("insert withdrawal request: %w", err)
	}
	return nil
}

func (r *WithdrawalRequestRepo) GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error) {
	return r.get(ctx, `SELECT `+withdrawalColumns+` FROM withdrawal_requests WHERE id = $1`, id)
}

func (r *WithdrawalRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.WithdrawalRequest, error) {
	return r.get(ctx, `SELECT `+withdrawalColumns+` FROM withdrawal_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *WithdrawalRequestRepo) FindPendingByProduct(ctx context.Context, productID string) (*entity.WithdrawalRequest, error) {
	return r.get(ctx, `SELECT `+withdrawalColumns+` FROM withdrawal_requests WHERE product_id = $1 AND status = 'PENDENTE'`, productID)
}

func (r *WithdrawalRequestRepo) get(ctx context.Context, query, arg string) (*entity.WithdrawalRequest, error) {
	w, err := scanWithdrawal(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal request: %w", err)
	}
	return w, nil
}

// Update persiste la resolución de la solicitud.
func (r *WithdrawalRequestRepo) Update(ctx context.Context, w *entity.WithdrawalRequest) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE withdrawal_requests SET status = $2, resolved_by = $3, resolved_at = $4, resolution_notes = $5, updated_at = $6
		WHERE id = $1`,
		w.ID, string(w.Status), w.ResolvedBy, w.ResolvedAt, w.ResolutionNotes, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update withdrawal request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("solicitud de retiro %s", w.ID)
	}
	return nil
}

// ListPending solicitudes PENDENTE, más antiguas primero.
func (r *WithdrawalRequestRepo) ListPending(ctx context.Context, limit, offset int) ([]*entity.WithdrawalRequest, error) {
	rows, err := r.q.Query(ctx, `SELECT `+withdrawalColumns+` FROM withdrawal_requests
		WHERE status = 'PENDENTE' ORDER BY created_at, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list withdrawal requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal request: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func scanWithdrawal(row pgx.Row) (*entity.WithdrawalRequest, error) {
	var (
		w           entity.WithdrawalRequest
		typ, status string
	)
	s := &w.Snapshot
	err := row.Scan(&w.ID, &w.ProductID, &w.RequestedBy, &typ, &status, &w.QuantityRequested, &w.Reason,
		&s.ProductName, &s.LotCode, &s.Quantity, &s.TotalWeight, &s.LocationID, &s.LocationCode,
		&w.ResolvedBy, &w.ResolvedAt, &w.ResolutionNotes, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	w.Type = entity.WithdrawalType(typ)
	w.Status = entity.WithdrawalStatus(status)
	return &w, nil
}
