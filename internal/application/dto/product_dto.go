package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// ProductInputRequest datos de un producto a registrar (individual o dentro de un lote).
type ProductInputRequest struct {
	Name           string          `json:"name" validate:"required"`
	LotCode        string          `json:"lot_code" validate:"required"`
	SeedTypeID     string          `json:"seed_type_id" validate:"required"`
	ClientID       string          `json:"client_id"`
	Quantity       int             `json:"quantity" validate:"min=1"`
	WeightPerUnit  decimal.Decimal `json:"weight_per_unit" swaggertype:"string" example:"25.5"`
	EntryDate      *time.Time      `json:"entry_date"`
	ExpirationDate *time.Time      `json:"expiration_date"`
}

// RegisterProductRequest alta de producto; sin location_id queda en PENDING_LOCATION.
type RegisterProductRequest struct {
	ProductInputRequest
	LocationID *string `json:"location_id"`
	Reason     string  `json:"reason"`
}

// BatchRequest alta atómica de varios productos de un mismo cliente.
type BatchRequest struct {
	ClientID  string                `json:"client_id" validate:"required"`
	BatchName string                `json:"batch_name"`
	Products  []ProductInputRequest `json:"products" validate:"required,min=1"`
}

// TransitionRequest campos comunes de las operaciones del ciclo de vida.
// expected_version es opcional; si se envía se valida contra la versión actual.
type TransitionRequest struct {
	ExpectedVersion int    `json:"expected_version"`
	Reason          string `json:"reason"`
}

// LocateRequest ubica un producto pendiente o lo traslada.
type LocateRequest struct {
	TransitionRequest
	LocationID string `json:"location_id" validate:"required"`
}

// ConfirmWithdrawalRequest sin quantity el retiro es total.
type ConfirmWithdrawalRequest struct {
	TransitionRequest
	Quantity *int `json:"quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	LotCode        string          `json:"lot_code"`
	SeedTypeID     string          `json:"seed_type_id"`
	ClientID       *string         `json:"client_id"`
	Quantity       int             `json:"quantity"`
	WeightPerUnit  decimal.Decimal `json:"weight_per_unit" swaggertype:"string"`
	TotalWeight    decimal.Decimal `json:"total_weight" swaggertype:"string"`
	LocationID     *string         `json:"location_id"`
	Status         string          `json:"status"`
	Version        int             `json:"version"`
	EntryDate      time.Time       `json:"entry_date"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	BatchID        *string         `json:"batch_id,omitempty"`
	BatchName      *string         `json:"batch_name,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BatchResponse resultado del alta por lote.
type BatchResponse struct {
	BatchID   string            `json:"batch_id"`
	BatchName string            `json:"batch_name"`
	Count     int               `json:"count"`
	Products  []ProductResponse `json:"products"`
}

// ToProductResponse mapea la entidad a la salida HTTP.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		LotCode:        p.LotCode,
		SeedTypeID:     p.SeedTypeID,
		ClientID:       p.ClientID,
		Quantity:       p.Quantity,
		WeightPerUnit:  p.WeightPerUnit,
		TotalWeight:    p.TotalWeight,
		LocationID:     p.LocationID,
		Status:         string(p.Status),
		Version:        p.Version,
		EntryDate:      p.EntryDate,
		ExpirationDate: p.ExpirationDate,
		BatchID:        p.BatchID,
		BatchName:      p.BatchName,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
