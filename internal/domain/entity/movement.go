package entity

import (
	"time"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del ledger.
type MovementType string

const (
	MovementEntry      MovementType = "entry"      // entrada a una ubicación
	MovementExit       MovementType = "exit"       // salida (retiro o baja)
	MovementTransfer   MovementType = "transfer"   // traslado entre ubicaciones
	MovementAdjustment MovementType = "adjustment" // ajuste
)

// Valid indica si el tipo pertenece al enum.
func (t MovementType) Valid() bool {
	switch t {
	case MovementEntry, MovementExit, MovementTransfer, MovementAdjustment:
		return true
	}
	return false
}

// MovementStatus estado de un movimiento.
type MovementStatus string

const (
	MovementPending   MovementStatus = "pending"
	MovementCompleted MovementStatus = "completed"
	MovementFailed    MovementStatus = "failed"
	MovementCancelled MovementStatus = "cancelled"
)

// Valid indica si el estado pertenece al enum.
func (s MovementStatus) Valid() bool {
	switch s {
	case MovementPending, MovementCompleted, MovementFailed, MovementCancelled:
		return true
	}
	return false
}

// Movement registro de auditoría inmutable; solo admite agregar verificación o cancelación.
type Movement struct {
	ID                 string
	ProductID          string
	Type               MovementType
	FromLocationID     *string
	ToLocationID       *string
	Quantity           int
	Weight             decimal.Decimal
	UserID             string
	Reason             string
	Status             MovementStatus
	IsAutomatic        bool
	Verified           bool
	VerifiedBy         *string
	VerifiedAt         *time.Time
	VerificationNotes  string
	CancelledBy        *string
	CancelledAt        *time.Time
	CancellationReason string
	Timestamp          time.Time
}

// Normalize aplica las reglas por tipo y redondea el peso:
// transfer exige origen; entry/transfer/adjustment exigen destino; exit nunca lleva destino.
func (m *Movement) Normalize() error {
	if m.ProductID == "" {
		return domain.NewValidationError("product_id", "es requerido")
	}
	if !m.Type.Valid() {
		return domain.NewValidationError("type", "tipo de movimiento desconocido")
	}
	if m.Status == "" {
		m.Status = MovementCompleted
	}
	if !m.Status.Valid() {
		return domain.NewValidationError("status", "estado desconocido")
	}
	if m.Quantity < 0 {
		return domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if m.Weight.IsNegative() {
		return domain.NewValidationError("weight", "no puede ser negativo")
	}
	if m.UserID == "" {
		return domain.NewValidationError("user_id", "es requerido")
	}
	if m.FromLocationID != nil && *m.FromLocationID == "" {
		m.FromLocationID = nil
	}
	if m.ToLocationID != nil && *m.ToLocationID == "" {
		m.ToLocationID = nil
	}
	switch m.Type {
	case MovementTransfer:
		if m.FromLocationID == nil {
			return domain.NewValidationError("from_location_id", "requerido para transfer")
		}
		if m.ToLocationID == nil {
			return domain.NewValidationError("to_location_id", "requerido para transfer")
		}
	case MovementEntry, MovementAdjustment:
		if m.ToLocationID == nil {
			return domain.NewValidationError("to_location_id", "requerido para "+string(m.Type))
		}
	case MovementExit:
		m.ToLocationID = nil
	}
	m.Weight = inventory.RoundWeight(m.Weight)
	return nil
}

// MovementKey campos que identifican un envío duplicado.
type MovementKey struct {
	ProductID string
	Type      MovementType
	Quantity  int
	Weight    decimal.Decimal
	UserID    string
}

// Key devuelve la clave de duplicado del movimiento.
func (m *Movement) Key() MovementKey {
	return MovementKey{
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Weight:    m.Weight,
		UserID:    m.UserID,
	}
}

// Matches compara por clave de duplicado (peso por valor, no por representación).
func (m *Movement) Matches(k MovementKey) bool {
	return m.ProductID == k.ProductID && m.Type == k.Type && m.Quantity == k.Quantity &&
		m.Weight.Equal(k.Weight) && m.UserID == k.UserID
}

// Verify registra la verificación; no altera Status.
func (m *Movement) Verify(verifier, notes string, now time.Time) error {
	if verifier == "" {
		return domain.NewValidationError("verified_by", "es requerido")
	}
	m.Verified = true
	m.VerifiedBy = &verifier
	m.VerifiedAt = &now
	m.VerificationNotes = notes
	return nil
}

// Cancel marca el movimiento como cancelado. No revierte efectos de capacidad ni cantidad.
func (m *Movement) Cancel(actor, reason string, now time.Time) error {
	if actor == "" {
		return domain.NewValidationError("cancelled_by", "es requerido")
	}
	if m.Status == MovementCancelled {
		return domain.Conflictf("movimiento %s ya cancelado", m.ID)
	}
	m.Status = MovementCancelled
	m.CancelledBy = &actor
	m.CancelledAt = &now
	m.CancellationReason = reason
	return nil
}

// Clone copia profunda.
func (m *Movement) Clone() *Movement {
	c := *m
	c.FromLocationID = cloneStr(m.FromLocationID)
	c.ToLocationID = cloneStr(m.ToLocationID)
	c.VerifiedBy = cloneStr(m.VerifiedBy)
	c.CancelledBy = cloneStr(m.CancelledBy)
	if m.VerifiedAt != nil {
		t := *m.VerifiedAt
		c.VerifiedAt = &t
	}
	if m.CancelledAt != nil {
		t := *m.CancelledAt
		c.CancelledAt = &t
	}
	return &c
}

// MovementView proyección de lectura con campos de presentación.
type MovementView struct {
	Movement
	ProductName      string
	UserName         string
	FromLocationCode string
	ToLocationCode   string
}
