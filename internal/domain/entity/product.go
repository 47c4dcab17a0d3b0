package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// Product representa un lote de semillas almacenado (producto).
// TotalWeight = Quantity * WeightPerUnit (kg, 3 decimales); Version se incrementa en cada transición.
type Product struct {
	ID             string
	Name           string
	LotCode        string
	SeedTypeID     string
	ClientID       *string
	Quantity       int
	WeightPerUnit  decimal.Decimal
	TotalWeight    decimal.Decimal
	LocationID     *string
	Status         ProductStatus
	Version        int
	EntryDate      time.Time
	ExpirationDate *time.Time
	BatchID        *string
	BatchName      *string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProductParams datos de registro de un producto.
type NewProductParams struct {
	ID             string
	Name           string
	LotCode        string
	SeedTypeID     string
	ClientID       string
	Quantity       int
	WeightPerUnit  decimal.Decimal
	EntryDate      time.Time
	ExpirationDate *time.Time
	BatchID        string
	BatchName      string
	CreatedBy      string
}

// NewProduct valida los datos y devuelve el producto en estado REGISTERED.
// WeightPerUnit no puede tener más de WeightScale decimales: el peso total se reconstruye igual tras persistirlo.
// La fecha de vencimiento, si viene, debe ser estrictamente posterior a la de entrada.
func NewProduct(p NewProductParams, now time.Time) (*Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if strings.TrimSpace(p.LotCode) == "" {
		return nil, domain.NewValidationError("lot_code", "es requerido")
	}
	if p.SeedTypeID == "" {
		return nil, domain.NewValidationError("seed_type_id", "es requerido")
	}
	if p.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor a 0")
	}
	if !p.WeightPerUnit.IsPositive() {
		return nil, domain.NewValidationError("weight_per_unit", "debe ser mayor a 0")
	}
	if !p.WeightPerUnit.Equal(inventory.RoundWeight(p.WeightPerUnit)) {
		return nil, domain.NewValidationError("weight_per_unit", fmt.Sprintf("admite como máximo %d decimales", inventory.WeightScale))
	}
	total := inventory.TotalWeight(p.Quantity, p.WeightPerUnit)
	if !total.IsPositive() {
		return nil, domain.NewValidationError("weight_per_unit", "el peso total debe ser mayor a 0")
	}
	entry := p.EntryDate
	if entry.IsZero() {
		entry = now
	}
	if p.ExpirationDate != nil && !p.ExpirationDate.After(entry) {
		return nil, domain.NewValidationError("expiration_date", "debe ser posterior a la fecha de entrada")
	}
	prod := &Product{
		ID:             p.ID,
		Name:           strings.TrimSpace(p.Name),
		LotCode:        p.LotCode,
		SeedTypeID:     p.SeedTypeID,
		Quantity:       p.Quantity,
		WeightPerUnit:  p.WeightPerUnit,
		TotalWeight:    total,
		Status:         ProductStatusRegistered,
		EntryDate:      entry,
		ExpirationDate: p.ExpirationDate,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.ClientID != "" {
		prod.ClientID = &p.ClientID
	}
	if p.BatchID != "" {
		prod.BatchID = &p.BatchID
	}
	if p.BatchName != "" {
		prod.BatchName = &p.BatchName
	}
	return prod, nil
}

func (p *Product) apply(ev ProductEvent, now time.Time) error {
	next, err := NextProductStatus(p.Status, ev)
	if err != nil {
		return err
	}
	p.Status = next
	p.Version++
	p.UpdatedAt = now
	return nil
}

func (p *Product) can(ev ProductEvent) error {
	_, err := NextProductStatus(p.Status, ev)
	return err
}

// Place resuelve el estado transitorio REGISTERED: con ubicación queda STORED, sin ella PENDING_LOCATION.
func (p *Product) Place(locationID *string, now time.Time) error {
	if locationID == nil || *locationID == "" {
		return p.apply(EventAwaitLocation, now)
	}
	if err := p.apply(EventPlace, now); err != nil {
		return err
	}
	loc := *locationID
	p.LocationID = &loc
	return nil
}

// Locate asigna la ubicación a un producto pendiente.
func (p *Product) Locate(locationID string, now time.Time) error {
	if locationID == "" {
		return domain.NewValidationError("location_id", "es requerido")
	}
	if err := p.apply(EventLocate, now); err != nil {
		return err
	}
	p.LocationID = &locationID
	return nil
}

// MoveTo cambia la ubicación de un producto almacenado.
func (p *Product) MoveTo(locationID string, now time.Time) error {
	if err := p.can(EventMove); err != nil {
		return err
	}
	if locationID == "" {
		return domain.NewValidationError("location_id", "es requerido")
	}
	if p.LocationID != nil && *p.LocationID == locationID {
		return domain.NewValidationError("location_id", "el producto ya está en esa ubicación")
	}
	if err := p.apply(EventMove, now); err != nil {
		return err
	}
	p.LocationID = &locationID
	return nil
}

// RequestWithdrawal marca el producto como pendiente de retiro.
func (p *Product) RequestWithdrawal(now time.Time) error {
	return p.apply(EventRequestWithdrawal, now)
}

// CancelWithdrawal revierte el producto a STORED.
func (p *Product) CancelWithdrawal(now time.Time) error {
	return p.apply(EventCancelWithdrawal, now)
}

// ConfirmPartialWithdrawal descuenta qty unidades y vuelve a STORED en la misma ubicación.
// Devuelve el peso retirado (diferencia entre el total anterior y el nuevo).
func (p *Product) ConfirmPartialWithdrawal(qty int, now time.Time) (decimal.Decimal, error) {
	if err := p.can(EventConfirmPartial); err != nil {
		return decimal.Zero, err
	}
	if qty <= 0 || qty >= p.Quantity {
		return decimal.Zero, domain.NewValidationError("quantity",
			"el retiro parcial debe ser mayor a 0 y menor que la cantidad actual")
	}
	before := p.TotalWeight
	p.Quantity -= qty
	p.TotalWeight = inventory.TotalWeight(p.Quantity, p.WeightPerUnit)
	if err := p.apply(EventConfirmPartial, now); err != nil {
		return decimal.Zero, err
	}
	return before.Sub(p.TotalWeight), nil
}

// ConfirmTotalWithdrawal retira el lote completo y libera su ubicación.
// Devuelve la ubicación que ocupaba (nil si no tenía).
func (p *Product) ConfirmTotalWithdrawal(now time.Time) (*string, error) {
	if err := p.apply(EventConfirmTotal, now); err != nil {
		return nil, err
	}
	prev := p.LocationID
	p.LocationID = nil
	return prev, nil
}

// Remove baja administrativa. La ubicación queda libre.
func (p *Product) Remove(now time.Time) (*string, error) {
	if err := p.apply(EventRemove, now); err != nil {
		return nil, err
	}
	prev := p.LocationID
	p.LocationID = nil
	return prev, nil
}

// CheckVersion compara la versión esperada por el llamador (0 = sin verificación).
func (p *Product) CheckVersion(expected int) error {
	if expected != 0 && expected != p.Version {
		return domain.Conflictf("versión %d obsoleta, actual %d", expected, p.Version)
	}
	return nil
}

// Clone copia profunda (punteros incluidos).
func (p *Product) Clone() *Product {
	c := *p
	c.ClientID = cloneStr(p.ClientID)
	c.LocationID = cloneStr(p.LocationID)
	c.BatchID = cloneStr(p.BatchID)
	c.BatchName = cloneStr(p.BatchName)
	if p.ExpirationDate != nil {
		t := *p.ExpirationDate
		c.ExpirationDate = &t
	}
	return &c
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
