package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// CreateWithdrawalInput solicitud de retiro creada por un admin.
type CreateWithdrawalInput struct {
	ProductID   string
	RequestedBy string
	Type        entity.WithdrawalType
	Quantity    *int
	Reason      string
}

// WithdrawalUseCase flujo admin-solicita / operador-confirma sobre el estado PENDING_WITHDRAWAL.
type WithdrawalUseCase struct {
	lc *LifecycleUseCase
}

// NewWithdrawalUseCase construye el caso de uso sobre el mismo ciclo de vida.
func NewWithdrawalUseCase(lc *LifecycleUseCase) *WithdrawalUseCase {
	return &WithdrawalUseCase{lc: lc}
}

// Create valida contra el producto STORED, guarda la foto del producto y lo pasa a PENDING_WITHDRAWAL.
func (uc *WithdrawalUseCase) Create(ctx context.Context, in CreateWithdrawalInput) (*entity.WithdrawalRequest, error) {
	var out *entity.WithdrawalRequest
	_, err := uc.lc.transition(ctx, "create_withdrawal", TransitionRequest{
		ProductID: in.ProductID,
		ActorID:   in.RequestedBy,
		Reason:    in.Reason,
	}, func(s *txScope, p *entity.Product) error {
		var code string
		if p.LocationID != nil {
			loc, err := s.r.Locations.GetByID(s.ctx, *p.LocationID)
			if err != nil {
				return err
			}
			if loc != nil {
				code = loc.Code
			}
		}
		req, err := entity.NewWithdrawalRequest(uuid.New().String(), p, code, in.RequestedBy, in.Type, in.Quantity, in.Reason, s.now)
		if err != nil {
			return err
		}
		if err := p.RequestWithdrawal(s.now); err != nil {
			return err
		}
		if err := s.r.Withdrawals.Create(s.ctx, req); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Confirm PENDENTE -> CONFIRMADO; confirma el retiro del producto con la cantidad solicitada.
func (uc *WithdrawalUseCase) Confirm(ctx context.Context, id, actor, notes string) (*entity.WithdrawalRequest, error) {
	return uc.resolve(ctx, "confirm_withdrawal_request", id, actor, notes, func(s *txScope, req *entity.WithdrawalRequest, p *entity.Product) error {
		if err := req.Confirm(actor, notes, s.now); err != nil {
			return err
		}
		if p.Status != entity.ProductStatusPendingWithdrawal {
			return domain.Conflictf("el producto %s está en %s, se requiere PENDING_WITHDRAWAL", p.ID, p.Status)
		}
		return s.confirmWithdrawal(p, req.QuantityToWithdraw())
	})
}

// Cancel PENDENTE -> CANCELADO; si el producto sigue PENDING_WITHDRAWAL vuelve a STORED.
func (uc *WithdrawalUseCase) Cancel(ctx context.Context, id, actor, reason string) (*entity.WithdrawalRequest, error) {
	return uc.resolve(ctx, "cancel_withdrawal_request", id, actor, reason, func(s *txScope, req *entity.WithdrawalRequest, p *entity.Product) error {
		if err := req.Cancel(actor, reason, s.now); err != nil {
			return err
		}
		if p.Status == entity.ProductStatusPendingWithdrawal {
			return p.CancelWithdrawal(s.now)
		}
		return nil
	})
}

func (uc *WithdrawalUseCase) resolve(ctx context.Context, op, id, actor, notes string, fn func(*txScope, *entity.WithdrawalRequest, *entity.Product) error) (*entity.WithdrawalRequest, error) {
	if actor == "" {
		return nil, domain.NewValidationError("actor", "es requerido")
	}
	var (
		out     *entity.WithdrawalRequest
		from    entity.ProductStatus
		product *entity.Product
		scope   *txScope
	)
	err := uc.lc.deps.Tx.Run(ctx, func(r Repos) error {
		s := uc.lc.newScope(ctx, r, actor, notes)
		scope = s
		req, err := r.Withdrawals.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.NotFoundf("solicitud de retiro %s", id)
		}
		p, err := s.loadProduct(TransitionRequest{ProductID: req.ProductID})
		if err != nil {
			return err
		}
		from = p.Status
		prevVersion := p.Version
		if err := fn(s, req, p); err != nil {
			return err
		}
		if p.Version != prevVersion {
			if err := r.Products.Update(ctx, p, prevVersion); err != nil {
				return err
			}
		}
		if err := r.Withdrawals.Update(ctx, req); err != nil {
			return err
		}
		out = req
		product = p
		return nil
	})
	if err != nil {
		uc.lc.reject(op, id, err)
		return nil, err
	}
	if product.Status != from {
		uc.lc.committed(scope, product.ID, from, product)
	}
	return out, nil
}

// GetByID lectura de una solicitud.
func (uc *WithdrawalUseCase) GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error) {
	var out *entity.WithdrawalRequest
	err := uc.lc.deps.Tx.Run(ctx, func(r Repos) error {
		req, err := r.Withdrawals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.NotFoundf("solicitud de retiro %s", id)
		}
		out = req
		return nil
	})
	return out, err
}

// ListPending solicitudes PENDENTE, más antiguas primero.
func (uc *WithdrawalUseCase) ListPending(ctx context.Context, limit, offset int) ([]*entity.WithdrawalRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []*entity.WithdrawalRequest
	err := uc.lc.deps.Tx.Run(ctx, func(r Repos) error {
		list, err := r.Withdrawals.ListPending(ctx, limit, offset)
		out = list
		return err
	})
	return out, err
}
