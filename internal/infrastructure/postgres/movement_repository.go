package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// movementColumns en una sola línea: List la reescribe con el prefijo m.
const movementColumns = `id, product_id, type, from_location_id, to_location_id, quantity, weight, user_id, reason, status, is_automatic, verified, verified_by, verified_at, verification_notes, cancelled_by, cancelled_at, cancellation_reason, timestamp`

// MovementRepo adaptador del ledger de movimientos (append-only salvo metadatos).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Type), m.FromLocationID, m.ToLocationID, m.Quantity, m.Weight, m.UserID, m.Reason,
		string(m.Status), m.IsAutomatic, m.Verified, m.VerifiedBy, m.VerifiedAt, m.VerificationNotes,
		m.CancelledBy, m.CancelledAt, m.CancellationReason, m.Timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: movimiento %s", domain.ErrDuplicate, m.ID)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// UpdateMetadata solo toca verificación, cancelación y estado.
func (r *MovementRepo) UpdateMetadata(ctx context.Context, m *entity.Movement) error {
	query := `
		UPDATE movements SET status = $2, verified = $3, verified_by = $4, verified_at = $5, verification_notes = $6,
			cancelled_by = $7, cancelled_at = $8, cancellation_reason = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, m.ID, string(m.Status), m.Verified, m.VerifiedBy, m.VerifiedAt, m.VerificationNotes,
		m.CancelledBy, m.CancelledAt, m.CancellationReason)
	if err != nil {
		return fmt.Errorf("update movement metadata: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("movimiento %s", m.ID)
	}
	return nil
}

// LockProduct toma un advisory lock de transacción por producto.
func (r *MovementRepo) LockProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, productID); err != nil {
		return fmt.Errorf("lock product movements: %w", err)
	}
	return nil
}

func (r *MovementRepo) FindRecentDuplicate(ctx context.Context, k entity.MovementKey, since time.Time) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE product_id = $1 AND type = $2 AND quantity = $3 AND weight = $4 AND user_id = $5
			AND status <> 'cancelled' AND timestamp >= $6
		ORDER BY timestamp DESC LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, k.ProductID, string(k.Type), k.Quantity, k.Weight, k.UserID, since))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find duplicate movement: %w", err)
	}
	return m, nil
}

// List proyección con nombres de producto, usuario y códigos de ubicación, más reciente primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementView, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("m.product_id = $%d", f.ProductID)
	}
	if f.LocationID != "" {
		args = append(args, f.LocationID)
		n := len(args)
		where = append(where, fmt.Sprintf("(m.from_location_id = $%d OR m.to_location_id = $%d)", n, n))
	}
	if f.UserID != "" {
		add("m.user_id = $%d", f.UserID)
	}
	if f.From != nil {
		add("m.timestamp >= $%d", *f.From)
	}
	if f.To != nil {
		add("m.timestamp <= $%d", *f.To)
	}

	var sb strings.Builder
	sb.WriteString(`SELECT m.` + strings.ReplaceAll(movementColumns, ", ", ", m.") + `,
		COALESCE(p.name, ''), COALESCE(u.name, ''), COALESCE(lf.code, ''), COALESCE(lt.code, '')
		FROM movements m
		LEFT JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.user_id
		LEFT JOIN locations lf ON lf.id = m.from_location_id
		LEFT JOIN locations lt ON lt.id = m.to_location_id`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	args = append(args, f.Limit, f.Offset)
	sb.WriteString(fmt.Sprintf(" ORDER BY m.timestamp DESC, m.id LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementView
	for rows.Next() {
		var v entity.MovementView
		if err := scanMovementInto(rows, &v.Movement, &v.ProductName, &v.UserName, &v.FromLocationCode, &v.ToLocationCode); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	if err := scanMovementInto(row, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMovementInto(row pgx.Row, m *entity.Movement, extra ...any) error {
	var typ, status string
	dest := []any{&m.ID, &m.ProductID, &typ, &m.FromLocationID, &m.ToLocationID, &m.Quantity, &m.Weight, &m.UserID,
		&m.Reason, &status, &m.IsAutomatic, &m.Verified, &m.VerifiedBy, &m.VerifiedAt, &m.VerificationNotes,
		&m.CancelledBy, &m.CancelledAt, &m.CancellationReason, &m.Timestamp}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	m.Type = entity.MovementType(typ)
	m.Status = entity.MovementStatus(status)
	return nil
}
