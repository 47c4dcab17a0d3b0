package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RecordInput datos de un movimiento a registrar en el ledger.
type RecordInput struct {
	ProductID      string
	Type           entity.MovementType
	FromLocationID *string
	ToLocationID   *string
	Quantity       int
	Weight         decimal.Decimal
	ActorID        string
	Reason         string
	Status         entity.MovementStatus
	IsAutomatic    bool
}

// movementLedger escribe movimientos dentro de una transacción ya abierta.
type movementLedger struct {
	window  time.Duration
	now     func() time.Time
	metrics Metrics
}

func newMovementLedger(d Deps) *movementLedger {
	return &movementLedger{window: d.Config.DuplicateWindow, now: d.Config.Now, metrics: d.Metrics}
}

// record valida, redondea y persiste. Los manuales pasan antes por la ventana de duplicados.
func (l *movementLedger) record(ctx context.Context, movs repository.MovementRepository, in RecordInput) (*entity.Movement, error) {
	now := l.now()
	m := &entity.Movement{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		Type:           in.Type,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Weight:         in.Weight,
		UserID:         in.ActorID,
		Reason:         in.Reason,
		Status:         in.Status,
		IsAutomatic:    in.IsAutomatic,
		Timestamp:      now,
	}
	if err := m.Normalize(); err != nil {
		return nil, err
	}
	if !m.IsAutomatic {
		if err := movs.LockProduct(ctx, m.ProductID); err != nil {
			return nil, err
		}
		dup, err := movs.FindRecentDuplicate(ctx, m.Key(), now.Add(-l.window))
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, fmt.Errorf("%w: movimiento igual a %s registrado el %s",
				domain.ErrDuplicate, dup.ID, dup.Timestamp.Format(time.RFC3339))
		}
	}
	if err := movs.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// MovementUseCase operaciones públicas del ledger: registro manual, verificación, cancelación y consultas.
type MovementUseCase struct {
	deps   Deps
	ledger *movementLedger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(d Deps) *MovementUseCase {
	d = d.normalize()
	return &MovementUseCase{deps: d, ledger: newMovementLedger(d)}
}

// RecordManual registra un movimiento enviado por un usuario. Solo auditoría:
// no modifica producto ni capacidad (esas mutaciones pasan por el ciclo de vida).
func (uc *MovementUseCase) RecordManual(ctx context.Context, in RecordInput) (*entity.Movement, error) {
	in.IsAutomatic = false
	var out *entity.Movement
	err := uc.deps.Tx.Run(ctx, func(r Repos) error {
		p, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFoundf("producto %s", in.ProductID)
		}
		for _, locID := range []*string{in.FromLocationID, in.ToLocationID} {
			if locID == nil || *locID == "" {
				continue
			}
			loc, err := r.Locations.GetByID(ctx, *locID)
			if err != nil {
				return err
			}
			if loc == nil {
				return domain.NotFoundf("ubicación %s", *locID)
			}
		}
		m, err := uc.ledger.record(ctx, r.Movements, in)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		uc.deps.Metrics.Rejected("record_movement", err)
		uc.deps.Log.Warn().Err(err).Str("product_id", in.ProductID).Str("type", string(in.Type)).Msg("movimiento rechazado")
		return nil, err
	}
	uc.deps.Metrics.MovementRecorded(out.Type, false)
	return out, nil
}

// Verify agrega la verificación; el estado no cambia.
func (uc *MovementUseCase) Verify(ctx context.Context, id, verifier, notes string) (*entity.Movement, error) {
	return uc.updateMetadata(ctx, id, func(m *entity.Movement, now time.Time) error {
		return m.Verify(verifier, notes, now)
	})
}

// Cancel marca el movimiento como cancelado. No compensa capacidad ni cantidad:
// una reversión se registra explícitamente con un ajuste o una operación del ciclo de vida.
func (uc *MovementUseCase) Cancel(ctx context.Context, id, actor, reason string) (*entity.Movement, error) {
	return uc.updateMetadata(ctx, id, func(m *entity.Movement, now time.Time) error {
		return m.Cancel(actor, reason, now)
	})
}

func (uc *MovementUseCase) updateMetadata(ctx context.Context, id string, fn func(*entity.Movement, time.Time) error) (*entity.Movement, error) {
	var out *entity.Movement
	err := uc.deps.Tx.Run(ctx, func(r Repos) error {
		m, err := r.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NotFoundf("movimiento %s", id)
		}
		if err := fn(m, uc.deps.Config.Now()); err != nil {
			return err
		}
		if err := r.Movements.UpdateMetadata(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List consulta el ledger (más reciente primero) con los campos de presentación.
func (uc *MovementUseCase) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementView, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, domain.NewValidationError("from", "debe ser anterior a to")
	}
	var out []*entity.MovementView
	err := uc.deps.Tx.Run(ctx, func(r Repos) error {
		list, err := r.Movements.List(ctx, f)
		out = list
		return err
	})
	return out, err
}

// ListByProduct movimientos de un producto.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.MovementView, error) {
	return uc.List(ctx, repository.MovementFilter{ProductID: productID, Limit: limit, Offset: offset})
}

// ListByLocation movimientos con origen o destino en la ubicación.
func (uc *MovementUseCase) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.MovementView, error) {
	return uc.List(ctx, repository.MovementFilter{LocationID: locationID, Limit: limit, Offset: offset})
}

// ListByUser movimientos registrados por un usuario.
func (uc *MovementUseCase) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.MovementView, error) {
	return uc.List(ctx, repository.MovementFilter{UserID: userID, Limit: limit, Offset: offset})
}

// ListByDateRange movimientos en [from, to].
func (uc *MovementUseCase) ListByDateRange(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.MovementView, error) {
	return uc.List(ctx, repository.MovementFilter{From: from, To: to, Limit: limit, Offset: offset})
}
