package entity

import "github.com/jhoicas/bancosemillas-api/internal/domain"

// ProductStatus estado del ciclo de vida de un lote almacenado.
type ProductStatus string

const (
	ProductStatusRegistered        ProductStatus = "REGISTERED" // transitorio, se resuelve al crear
	ProductStatusPendingLocation   ProductStatus = "PENDING_LOCATION"
	ProductStatusStored            ProductStatus = "STORED"
	ProductStatusPendingWithdrawal ProductStatus = "PENDING_WITHDRAWAL"
	ProductStatusWithdrawn         ProductStatus = "WITHDRAWN"
	ProductStatusRemoved           ProductStatus = "REMOVED"
)

// ProductEvent evento que dispara una transición del producto.
type ProductEvent string

const (
	EventPlace             ProductEvent = "place"          // registro con ubicación
	EventAwaitLocation     ProductEvent = "await_location" // registro sin ubicación
	EventLocate            ProductEvent = "locate"
	EventMove              ProductEvent = "move"
	EventRequestWithdrawal ProductEvent = "request_withdrawal"
	EventCancelWithdrawal  ProductEvent = "cancel_withdrawal"
	EventConfirmPartial    ProductEvent = "confirm_partial_withdrawal"
	EventConfirmTotal      ProductEvent = "confirm_total_withdrawal"
	EventRemove            ProductEvent = "remove"
)

// ProductStatuses lista cerrada de estados.
func ProductStatuses() []ProductStatus {
	return []ProductStatus{
		ProductStatusRegistered,
		ProductStatusPendingLocation,
		ProductStatusStored,
		ProductStatusPendingWithdrawal,
		ProductStatusWithdrawn,
		ProductStatusRemoved,
	}
}

// ProductEvents lista cerrada de eventos.
func ProductEvents() []ProductEvent {
	return []ProductEvent{
		EventPlace, EventAwaitLocation, EventLocate, EventMove,
		EventRequestWithdrawal, EventCancelWithdrawal,
		EventConfirmPartial, EventConfirmTotal, EventRemove,
	}
}

// productTransitions tabla completa: todo estado tiene fila, aunque sea vacía (terminales).
var productTransitions = map[ProductStatus]map[ProductEvent]ProductStatus{
	ProductStatusRegistered: {
		EventPlace:         ProductStatusStored,
		EventAwaitLocation: ProductStatusPendingLocation,
	},
	ProductStatusPendingLocation: {
		EventLocate: ProductStatusStored,
	},
	ProductStatusStored: {
		EventMove:              ProductStatusStored,
		EventRequestWithdrawal: ProductStatusPendingWithdrawal,
		EventRemove:            ProductStatusRemoved,
	},
	ProductStatusPendingWithdrawal: {
		EventCancelWithdrawal: ProductStatusStored,
		EventConfirmPartial:   ProductStatusStored,
		EventConfirmTotal:     ProductStatusWithdrawn,
		EventRemove:           ProductStatusRemoved,
	},
	ProductStatusWithdrawn: {},
	ProductStatusRemoved:   {},
}

// Valid indica si el estado pertenece al enum.
func (s ProductStatus) Valid() bool {
	_, ok := productTransitions[s]
	return ok
}

// Terminal indica si el estado no admite más transiciones.
func (s ProductStatus) Terminal() bool {
	return len(productTransitions[s]) == 0
}

// Active indica si el producto ocupa físicamente su ubicación.
func (s ProductStatus) Active() bool {
	return s == ProductStatusStored || s == ProductStatusPendingWithdrawal
}

// NextProductStatus resuelve la transición o devuelve *domain.TransitionError.
func NextProductStatus(from ProductStatus, ev ProductEvent) (ProductStatus, error) {
	next, ok := productTransitions[from][ev]
	if !ok {
		return from, &domain.TransitionError{From: string(from), Event: string(ev)}
	}
	return next, nil
}
