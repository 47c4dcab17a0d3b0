package inventory

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/pkg/codes"
	"github.com/shopspring/decimal"
)

// TransitionRequest datos comunes a toda transición de producto.
// ExpectedVersion = 0 omite la verificación de versión del llamador.
type TransitionRequest struct {
	ProductID       string
	ActorID         string
	ExpectedVersion int
	Reason          string
}

// ProductInput datos de un producto a registrar.
type ProductInput struct {
	Name           string
	LotCode        string
	SeedTypeID     string
	ClientID       string
	Quantity       int
	WeightPerUnit  decimal.Decimal
	EntryDate      *time.Time
	ExpirationDate *time.Time
}

// RegisterInput registro individual; con LocationID el producto queda STORED.
type RegisterInput struct {
	ProductInput
	LocationID string
	ActorID    string
	Reason     string
}

// LifecycleUseCase orquesta las transiciones del producto. Cada operación es una transacción
// que escribe estado, capacidad de la ubicación y ledger de movimientos en un orden fijo.
type LifecycleUseCase struct {
	deps   Deps
	ledger *movementLedger
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(d Deps) *LifecycleUseCase {
	d = d.normalize()
	return &LifecycleUseCase{deps: d, ledger: newMovementLedger(d)}
}

// Register crea un producto (REGISTERED) y lo resuelve a STORED o PENDING_LOCATION.
func (uc *LifecycleUseCase) Register(ctx context.Context, in RegisterInput) (*entity.Product, error) {
	if in.ActorID == "" {
		return nil, domain.NewValidationError("actor", "es requerido")
	}
	var out *entity.Product
	var scope *txScope
	err := uc.deps.Tx.Run(ctx, func(r Repos) error {
		s := uc.newScope(ctx, r, in.ActorID, in.Reason)
		scope = s
		p, err := s.buildProduct(in.ProductInput, "", "")
		if err != nil {
			return err
		}
		var locID *string
		if in.LocationID != "" {
			locID = &in.LocationID
		}
		if err := p.Place(locID, s.now); err != nil {
			return err
		}
		var loc *entity.Location
		if p.Status == entity.ProductStatusStored {
			if loc, err = s.occupy(in.LocationID, p); err != nil {
				return err
			}
		}
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		if loc != nil {
			if err := s.record(RecordInput{
				ProductID:    p.ID,
				Type:         entity.MovementEntry,
				ToLocationID: &loc.ID,
				Quantity:     p.Quantity,
				Weight:       p.TotalWeight,
			}, "registro con ubicación"); err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	if err != nil {
		uc.reject("register", "", err)
		return nil, err
	}
	uc.committed(scope, out.ID, entity.ProductStatusRegistered, out)
	return out, nil
}

// Locate PENDING_LOCATION -> STORED: ocupa la ubicación y registra una entrada.
func (uc *LifecycleUseCase) Locate(ctx context.Context, req TransitionRequest, locationID string) (*entity.Product, error) {
	return uc.transition(ctx, "locate", req, func(s *txScope, p *entity.Product) error {
		if err := p.Locate(locationID, s.now); err != nil {
			return err
		}
		loc, err := s.occupy(locationID, p)
		if err != nil {
			return err
		}
		return s.record(RecordInput{
			ProductID:    p.ID,
			Type:         entity.MovementEntry,
			ToLocationID: &loc.ID,
			Quantity:     p.Quantity,
			Weight:       p.TotalWeight,
		}, "ubicación asignada")
	})
}

// MoveTo STORED -> STORED en otra ubicación: libera el origen, ocupa el destino y registra un traslado.
func (uc *LifecycleUseCase) MoveTo(ctx context.Context, req TransitionRequest, newLocationID string) (*entity.Product, error) {
	return uc.transition(ctx, "move", req, func(s *txScope, p *entity.Product) error {
		if p.LocationID == nil && p.Status == entity.ProductStatusStored {
			return domain.Conflictf("producto %s almacenado sin ubicación", p.ID)
		}
		var originID string
		if p.LocationID != nil {
			originID = *p.LocationID
		}
		if err := p.MoveTo(newLocationID, s.now); err != nil {
			return err
		}
		origin, dest, err := s.lockPair(originID, newLocationID)
		if err != nil {
			return err
		}
		if err := s.ensureFree(dest, p.ID); err != nil {
			return err
		}
		if err := s.addWeight(dest, p.TotalWeight); err != nil {
			return err
		}
		if err := s.releaseWeight(origin, p.TotalWeight); err != nil {
			return err
		}
		return s.record(RecordInput{
			ProductID:      p.ID,
			Type:           entity.MovementTransfer,
			FromLocationID: &origin.ID,
			ToLocationID:   &dest.ID,
			Quantity:       p.Quantity,
			Weight:         p.TotalWeight,
		}, "traslado")
	})
}

// RequestWithdrawal STORED -> PENDING_WITHDRAWAL. Sin efectos en capacidad ni ledger.
func (uc *LifecycleUseCase) RequestWithdrawal(ctx context.Context, req TransitionRequest) (*entity.Product, error) {
	return uc.transition(ctx, "request_withdrawal", req, func(s *txScope, p *entity.Product) error {
		return p.RequestWithdrawal(s.now)
	})
}

// CancelWithdrawal PENDING_WITHDRAWAL -> STORED; cierra la solicitud pendiente si existe.
func (uc *LifecycleUseCase) CancelWithdrawal(ctx context.Context, req TransitionRequest) (*entity.Product, error) {
	return uc.transition(ctx, "cancel_withdrawal", req, func(s *txScope, p *entity.Product) error {
		if err := p.CancelWithdrawal(s.now); err != nil {
			return err
		}
		return s.closePendingRequest(p.ID, entity.WithdrawalCancelled)
	})
}

// ConfirmWithdrawal confirma el retiro: quantity nil = total (WITHDRAWN), si no parcial (STORED).
// Con una solicitud PENDENTE la cantidad debe coincidir con la solicitada; si no, ConflictError.
func (uc *LifecycleUseCase) ConfirmWithdrawal(ctx context.Context, req TransitionRequest, quantity *int) (*entity.Product, error) {
	return uc.transition(ctx, "confirm_withdrawal", req, func(s *txScope, p *entity.Product) error {
		pending, err := s.r.Withdrawals.FindPendingByProduct(s.ctx, p.ID)
		if err != nil {
			return err
		}
		if pending != nil && !sameQuantity(pending.QuantityToWithdraw(), quantity) {
			return domain.Conflictf("la solicitud %s pide %s y se confirmó %s; confírmela desde la solicitud",
				pending.ID, describeQuantity(pending.QuantityToWithdraw()), describeQuantity(quantity))
		}
		if err := s.confirmWithdrawal(p, quantity); err != nil {
			return err
		}
		return s.closePendingRequest(p.ID, entity.WithdrawalConfirmed)
	})
}

func sameQuantity(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func describeQuantity(q *int) string {
	if q == nil {
		return "el total"
	}
	return strconv.Itoa(*q) + " unidades"
}

// Remove baja administrativa desde STORED o PENDING_WITHDRAWAL. Libera la capacidad de la
// ubicación en la misma transacción y registra una salida.
func (uc *LifecycleUseCase) Remove(ctx context.Context, req TransitionRequest) (*entity.Product, error) {
	return uc.transition(ctx, "remove", req, func(s *txScope, p *entity.Product) error {
		prev, err := p.Remove(s.now)
		if err != nil {
			return err
		}
		in := RecordInput{
			ProductID: p.ID,
			Type:      entity.MovementExit,
			Quantity:  p.Quantity,
			Weight:    p.TotalWeight,
		}
		if prev != nil {
			loc, err := s.lock(*prev)
			if err != nil {
				return err
			}
			if err := s.releaseWeight(loc, p.TotalWeight); err != nil {
				return err
			}
			in.FromLocationID = &loc.ID
		}
		if err := s.record(in, "baja administrativa"); err != nil {
			return err
		}
		return s.closePendingRequest(p.ID, entity.WithdrawalCancelled)
	})
}

// GetProduct lectura simple.
func (uc *LifecycleUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := uc.deps.Tx.Run(ctx, func(r Repos) error {
		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFoundf("producto %s", id)
		}
		out = p
		return nil
	})
	return out, err
}

// transition carga el producto, aplica fn y persiste con bloqueo optimista, todo en una transacción.
func (uc *LifecycleUseCase) transition(ctx context.Context, op string, req TransitionRequest, fn func(s *txScope, p *entity.Product) error) (*entity.Product, error) {
	if req.ProductID == "" {
		return nil, domain.NewValidationError("product_id", "es requerido")
	}
	if req.ActorID == "" {
		return nil, domain.NewValidationError("actor", "es requerido")
	}
	var (
		out   *entity.Product
		from  entity.ProductStatus
		scope *txScope
	)
	err := uc.deps.Tx.Run(ctx, func(r Repos) error {
		s := uc.newScope(ctx, r, req.ActorID, req.Reason)
		scope = s
		p, err := s.loadProduct(req)
		if err != nil {
			return err
		}
		from = p.Status
		prevVersion := p.Version
		if err := fn(s, p); err != nil {
			return err
		}
		if err := r.Products.Update(ctx, p, prevVersion); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		uc.reject(op, req.ProductID, err)
		return nil, err
	}
	uc.committed(scope, out.ID, from, out)
	return out, nil
}

func (uc *LifecycleUseCase) newScope(ctx context.Context, r Repos, actor, reason string) *txScope {
	return &txScope{ctx: ctx, r: r, now: uc.deps.Config.Now(), actor: actor, reason: reason, ledger: uc.ledger}
}

func (uc *LifecycleUseCase) committed(s *txScope, productID string, from entity.ProductStatus, p *entity.Product) {
	uc.deps.Metrics.Transition(from, p.Status)
	if s != nil {
		for _, m := range s.movements {
			uc.deps.Metrics.MovementRecorded(m.Type, m.IsAutomatic)
		}
	}
	uc.deps.Log.Debug().
		Str("product_id", productID).
		Str("from", string(from)).
		Str("to", string(p.Status)).
		Int("version", p.Version).
		Msg("transición de producto")
}

func (uc *LifecycleUseCase) reject(op, productID string, err error) {
	uc.deps.Metrics.Rejected(op, err)
	uc.deps.Log.Warn().Err(err).Str("op", op).Str("product_id", productID).Msg("operación rechazada")
}

// txScope estado de una transacción en curso: repos, reloj, actor y movimientos escritos.
type txScope struct {
	ctx       context.Context
	r         Repos
	now       time.Time
	actor     string
	reason    string
	ledger    *movementLedger
	movements []*entity.Movement
}

func (s *txScope) loadProduct(req TransitionRequest) (*entity.Product, error) {
	p, err := s.r.Products.GetByID(s.ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFoundf("producto %s", req.ProductID)
	}
	if err := p.CheckVersion(req.ExpectedVersion); err != nil {
		return nil, err
	}
	return p, nil
}

// buildProduct valida datos y referencias (tipo de semilla, cliente) y deriva el vencimiento.
func (s *txScope) buildProduct(in ProductInput, batchID, batchName string) (*entity.Product, error) {
	params := entity.NewProductParams{
		ID:             uuid.New().String(),
		Name:           in.Name,
		LotCode:        codes.Normalize(in.LotCode),
		SeedTypeID:     in.SeedTypeID,
		ClientID:       in.ClientID,
		Quantity:       in.Quantity,
		WeightPerUnit:  in.WeightPerUnit,
		ExpirationDate: in.ExpirationDate,
		BatchID:        batchID,
		BatchName:      batchName,
		CreatedBy:      s.actor,
	}
	if in.EntryDate != nil {
		params.EntryDate = *in.EntryDate
	}
	p, err := entity.NewProduct(params, s.now)
	if err != nil {
		return nil, err
	}
	st, err := s.r.SeedTypes.GetByID(s.ctx, in.SeedTypeID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, &fieldError{field: "seed_type_id", err: domain.NotFoundf("tipo de semilla %s", in.SeedTypeID)}
	}
	if in.ClientID != "" {
		c, err := s.r.Clients.GetByID(s.ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, &fieldError{field: "client_id", err: domain.NotFoundf("cliente %s", in.ClientID)}
		}
	}
	if p.ExpirationDate == nil {
		if exp, ok := st.ExpirationFrom(p.EntryDate); ok {
			p.ExpirationDate = &exp
		}
	}
	return p, nil
}

// lock bloquea la ubicación hasta el fin de la transacción.
func (s *txScope) lock(id string) (*entity.Location, error) {
	loc, err := s.r.Locations.GetForUpdate(s.ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.NotFoundf("ubicación %s", id)
	}
	return loc, nil
}

// lockPair bloquea dos ubicaciones en orden estable de ID para evitar deadlocks.
func (s *txScope) lockPair(a, b string) (*entity.Location, *entity.Location, error) {
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	l1, err := s.lock(first)
	if err != nil {
		return nil, nil, err
	}
	l2, err := s.lock(second)
	if err != nil {
		return nil, nil, err
	}
	if first == a {
		return l1, l2, nil
	}
	return l2, l1, nil
}

// ensureFree verifica que ningún otro producto activo ocupe la ubicación.
func (s *txScope) ensureFree(loc *entity.Location, productID string) error {
	active, err := s.r.Products.FindActiveByLocation(s.ctx, loc.ID)
	if err != nil {
		return err
	}
	if active != nil && active.ID != productID {
		return domain.Conflictf("ubicación %s ocupada por el producto %s", loc.Code, active.ID)
	}
	return nil
}

// occupy bloquea, verifica ocupación y suma el peso del producto a la ubicación.
func (s *txScope) occupy(locationID string, p *entity.Product) (*entity.Location, error) {
	loc, err := s.lock(locationID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFree(loc, p.ID); err != nil {
		return nil, err
	}
	if err := s.addWeight(loc, p.TotalWeight); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *txScope) addWeight(loc *entity.Location, w decimal.Decimal) error {
	if err := loc.AddWeight(w); err != nil {
		return err
	}
	loc.UpdatedAt = s.now
	return s.r.Locations.UpdateWeight(s.ctx, loc)
}

func (s *txScope) releaseWeight(loc *entity.Location, w decimal.Decimal) error {
	if err := loc.ReleaseProduct(w); err != nil {
		return err
	}
	loc.UpdatedAt = s.now
	return s.r.Locations.UpdateWeight(s.ctx, loc)
}

// record escribe un movimiento automático con el actor de la transacción.
func (s *txScope) record(in RecordInput, defaultReason string) error {
	in.ActorID = s.actor
	in.IsAutomatic = true
	in.Reason = s.reason
	if in.Reason == "" {
		in.Reason = defaultReason
	}
	m, err := s.ledger.record(s.ctx, s.r.Movements, in)
	if err != nil {
		return err
	}
	s.movements = append(s.movements, m)
	return nil
}

// confirmWithdrawal aplica la confirmación sobre un producto PENDING_WITHDRAWAL.
func (s *txScope) confirmWithdrawal(p *entity.Product, quantity *int) error {
	if quantity != nil {
		withdrawn, err := p.ConfirmPartialWithdrawal(*quantity, s.now)
		if err != nil {
			return err
		}
		if p.LocationID == nil {
			return domain.Conflictf("producto %s sin ubicación", p.ID)
		}
		loc, err := s.lock(*p.LocationID)
		if err != nil {
			return err
		}
		if err := s.releaseWeight(loc, withdrawn); err != nil {
			return err
		}
		return s.record(RecordInput{
			ProductID:      p.ID,
			Type:           entity.MovementExit,
			FromLocationID: &loc.ID,
			Quantity:       *quantity,
			Weight:         withdrawn,
		}, "retiro parcial")
	}
	prev, err := p.ConfirmTotalWithdrawal(s.now)
	if err != nil {
		return err
	}
	in := RecordInput{
		ProductID: p.ID,
		Type:      entity.MovementExit,
		Quantity:  p.Quantity,
		Weight:    p.TotalWeight,
	}
	if prev != nil {
		loc, err := s.lock(*prev)
		if err != nil {
			return err
		}
		if err := s.releaseWeight(loc, p.TotalWeight); err != nil {
			return err
		}
		in.FromLocationID = &loc.ID
	}
	return s.record(in, "retiro total")
}

// closePendingRequest resuelve la solicitud PENDENTE del producto, si la hay.
func (s *txScope) closePendingRequest(productID string, to entity.WithdrawalStatus) error {
	req, err := s.r.Withdrawals.FindPendingByProduct(s.ctx, productID)
	if err != nil || req == nil {
		return err
	}
	if to == entity.WithdrawalConfirmed {
		err = req.Confirm(s.actor, s.reason, s.now)
	} else {
		err = req.Cancel(s.actor, s.reason, s.now)
	}
	if err != nil {
		return err
	}
	return s.r.Withdrawals.Update(s.ctx, req)
}

// fieldError asocia un error de referencia al campo de entrada que lo causó.
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string { return e.field + ": " + e.err.Error() }
func (e *fieldError) Unwrap() error { return e.err }
