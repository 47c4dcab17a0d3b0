package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CapacityStatus clasificación de ocupación de una ubicación.
type CapacityStatus string

const (
	CapacityEmpty  CapacityStatus = "empty"  // < 1%
	CapacityLow    CapacityStatus = "low"    // < 50%
	CapacityMedium CapacityStatus = "medium" // < 80%
	CapacityHigh   CapacityStatus = "high"   // < 100%
	CapacityFull   CapacityStatus = "full"   // = 100%
)

// Coordinates dirección física de la celda dentro de la cámara.
type Coordinates struct {
	Quadra int
	Lado   int
	Fila   int
	Andar  int
}

// Code código generado, ej. Q01-L1-F03-A2.
func (c Coordinates) Code() string {
	return fmt.Sprintf("Q%02d-L%d-F%02d-A%d", c.Quadra, c.Lado, c.Fila, c.Andar)
}

// Location celda de almacenamiento con capacidad en kg (ledger de capacidad).
// Occupied siempre es CurrentWeight > 0 y se recalcula en cada mutación.
type Location struct {
	ID            string
	ChamberID     string
	Code          string
	Coordinates   Coordinates
	MaxCapacity   decimal.Decimal
	CurrentWeight decimal.Decimal
	Occupied      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanAccommodate current + w <= max.
func (l *Location) CanAccommodate(w decimal.Decimal) bool {
	return l.CurrentWeight.Add(w).LessThanOrEqual(l.MaxCapacity)
}

// AvailableCapacity capacidad libre en kg (nunca negativa).
func (l *Location) AvailableCapacity() decimal.Decimal {
	free := l.MaxCapacity.Sub(l.CurrentWeight)
	if free.IsNegative() {
		return decimal.Zero
	}
	return free
}

// AddWeight suma peso si cabe; si no, *domain.CapacityError con la capacidad disponible.
func (l *Location) AddWeight(w decimal.Decimal) error {
	w = inventory.RoundWeight(w)
	if !w.IsPositive() {
		return domain.NewValidationError("weight", "debe ser mayor a 0")
	}
	if !l.CanAccommodate(w) {
		return &domain.CapacityError{LocationID: l.ID, Requested: w, Available: l.AvailableCapacity()}
	}
	l.CurrentWeight = l.CurrentWeight.Add(w)
	l.touch()
	return nil
}

// RemoveWeight resta peso; no se puede retirar más de lo que hay.
func (l *Location) RemoveWeight(w decimal.Decimal) error {
	w = inventory.RoundWeight(w)
	if w.IsNegative() {
		return domain.NewValidationError("weight", "no puede ser negativo")
	}
	if w.GreaterThan(l.CurrentWeight) {
		return domain.NewValidationError("weight",
			fmt.Sprintf("%s kg excede el peso actual %s kg", w.StringFixed(3), l.CurrentWeight.StringFixed(3)))
	}
	l.CurrentWeight = l.CurrentWeight.Sub(w)
	l.touch()
	return nil
}

// Release deja la ubicación vacía.
func (l *Location) Release() {
	l.CurrentWeight = decimal.Zero
	l.touch()
}

// ReleaseProduct retira el aporte de un producto; si es todo lo que hay, libera.
func (l *Location) ReleaseProduct(w decimal.Decimal) error {
	if inventory.RoundWeight(w).GreaterThanOrEqual(l.CurrentWeight) {
		l.Release()
		return nil
	}
	return l.RemoveWeight(w)
}

func (l *Location) touch() {
	l.Occupied = l.CurrentWeight.IsPositive()
}

// OccupancyPercent porcentaje de ocupación redondeado.
func (l *Location) OccupancyPercent() int {
	return inventory.OccupancyPercent(l.CurrentWeight, l.MaxCapacity)
}

// CapacityStatus categoría según el porcentaje exacto (sin redondear).
func (l *Location) CapacityStatus() CapacityStatus {
	if !l.MaxCapacity.IsPositive() {
		if l.CurrentWeight.IsPositive() {
			return CapacityFull
		}
		return CapacityEmpty
	}
	pct := l.CurrentWeight.Div(l.MaxCapacity).Mul(decimal.NewFromInt(100))
	switch {
	case pct.LessThan(decimal.NewFromInt(1)):
		return CapacityEmpty
	case pct.LessThan(decimal.NewFromInt(50)):
		return CapacityLow
	case pct.LessThan(decimal.NewFromInt(80)):
		return CapacityMedium
	case pct.LessThan(decimal.NewFromInt(100)):
		return CapacityHigh
	default:
		return CapacityFull
	}
}

// Clone copia de valor.
func (l *Location) Clone() *Location {
	c := *l
	return &c
}
