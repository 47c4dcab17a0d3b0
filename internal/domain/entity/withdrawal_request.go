package entity

import (
	"time"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// WithdrawalStatus estado de una solicitud de retiro.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "PENDENTE"
	WithdrawalConfirmed WithdrawalStatus = "CONFIRMADO"
	WithdrawalCancelled WithdrawalStatus = "CANCELADO"
)

// WithdrawalType retiro total o parcial.
type WithdrawalType string

const (
	WithdrawalTotal   WithdrawalType = "TOTAL"
	WithdrawalPartial WithdrawalType = "PARCIAL"
)

// Valid indica si el tipo pertenece al enum.
func (t WithdrawalType) Valid() bool {
	return t == WithdrawalTotal || t == WithdrawalPartial
}

// WithdrawalSnapshot datos del producto al momento de la solicitud (auditoría).
type WithdrawalSnapshot struct {
	ProductName  string
	LotCode      string
	Quantity     int
	TotalWeight  decimal.Decimal
	LocationID   *string
	LocationCode string
}

// WithdrawalRequest solicitud de retiro: la crea un admin y la confirma un operador.
type WithdrawalRequest struct {
	ID                string
	ProductID         string
	RequestedBy       string
	Type              WithdrawalType
	Status            WithdrawalStatus
	QuantityRequested *int
	Reason            string
	Snapshot          WithdrawalSnapshot
	ResolvedBy        *string
	ResolvedAt        *time.Time
	ResolutionNotes   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewWithdrawalRequest valida contra el producto (debe estar STORED) y toma la foto del mismo.
func NewWithdrawalRequest(id string, p *Product, locationCode, requester string, typ WithdrawalType, qty *int, reason string, now time.Time) (*WithdrawalRequest, error) {
	if requester == "" {
		return nil, domain.NewValidationError("requested_by", "es requerido")
	}
	if !typ.Valid() {
		return nil, domain.NewValidationError("type", "debe ser TOTAL o PARCIAL")
	}
	if p.Status != ProductStatusStored {
		return nil, domain.Conflictf("el producto %s está en %s, se requiere STORED", p.ID, p.Status)
	}
	var requested *int
	if typ == WithdrawalPartial {
		if qty == nil {
			return nil, domain.NewValidationError("quantity", "requerida para retiro PARCIAL")
		}
		if *qty <= 0 || *qty >= p.Quantity {
			return nil, domain.NewValidationError("quantity", "debe ser mayor a 0 y menor que la cantidad del producto")
		}
		q := *qty
		requested = &q
	}
	return &WithdrawalRequest{
		ID:                id,
		ProductID:         p.ID,
		RequestedBy:       requester,
		Type:              typ,
		Status:            WithdrawalPending,
		QuantityRequested: requested,
		Reason:            reason,
		Snapshot: WithdrawalSnapshot{
			ProductName:  p.Name,
			LotCode:      p.LotCode,
			Quantity:     p.Quantity,
			TotalWeight:  p.TotalWeight,
			LocationID:   cloneStr(p.LocationID),
			LocationCode: locationCode,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (w *WithdrawalRequest) resolve(to WithdrawalStatus, actor, notes string, now time.Time) error {
	if w.Status != WithdrawalPending {
		return &domain.TransitionError{From: string(w.Status), Event: string(to)}
	}
	if actor == "" {
		return domain.NewValidationError("actor", "es requerido")
	}
	w.Status = to
	w.ResolvedBy = &actor
	w.ResolvedAt = &now
	w.ResolutionNotes = notes
	w.UpdatedAt = now
	return nil
}

// Confirm PENDENTE -> CONFIRMADO.
func (w *WithdrawalRequest) Confirm(actor, notes string, now time.Time) error {
	return w.resolve(WithdrawalConfirmed, actor, notes, now)
}

// Cancel PENDENTE -> CANCELADO.
func (w *WithdrawalRequest) Cancel(actor, reason string, now time.Time) error {
	return w.resolve(WithdrawalCancelled, actor, reason, now)
}

// QuantityToWithdraw cantidad a pasar a la confirmación del producto (nil = total).
func (w *WithdrawalRequest) QuantityToWithdraw() *int {
	if w.Type == WithdrawalTotal {
		return nil
	}
	return w.QuantityRequested
}

// Clone copia profunda.
func (w *WithdrawalRequest) Clone() *WithdrawalRequest {
	c := *w
	if w.QuantityRequested != nil {
		q := *w.QuantityRequested
		c.QuantityRequested = &q
	}
	c.Snapshot.LocationID = cloneStr(w.Snapshot.LocationID)
	c.ResolvedBy = cloneStr(w.ResolvedBy)
	if w.ResolvedAt != nil {
		t := *w.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}
