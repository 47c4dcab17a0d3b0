package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// RecordMovementRequest movimiento manual (solo auditoría).
type RecordMovementRequest struct {
	ProductID      string          `json:"product_id" validate:"required"`
	Type           string          `json:"type" validate:"required,oneof=entry exit transfer adjustment"`
	FromLocationID *string         `json:"from_location_id"`
	ToLocationID   *string         `json:"to_location_id"`
	Quantity       int             `json:"quantity"`
	Weight         decimal.Decimal `json:"weight" swaggertype:"string"`
	Reason         string          `json:"reason"`
	Status         string          `json:"status"`
}

// VerifyMovementRequest notas de verificación.
type VerifyMovementRequest struct {
	Notes string `json:"notes"`
}

// CancelMovementRequest motivo de cancelación.
type CancelMovementRequest struct {
	Reason string `json:"reason"`
}

// MovementResponse salida de un movimiento con los campos de presentación.
type MovementResponse struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name,omitempty"`
	Type               string          `json:"type"`
	FromLocationID     *string         `json:"from_location_id"`
	FromLocationCode   string          `json:"from_location_code,omitempty"`
	ToLocationID       *string         `json:"to_location_id"`
	ToLocationCode     string          `json:"to_location_code,omitempty"`
	Quantity           int             `json:"quantity"`
	Weight             decimal.Decimal `json:"weight" swaggertype:"string"`
	UserID             string          `json:"user_id"`
	UserName           string          `json:"user_name,omitempty"`
	Reason             string          `json:"reason"`
	Status             string          `json:"status"`
	IsAutomatic        bool            `json:"is_automatic"`
	Verified           bool            `json:"verified"`
	VerifiedBy         *string         `json:"verified_by,omitempty"`
	VerifiedAt         *time.Time      `json:"verified_at,omitempty"`
	VerificationNotes  string          `json:"verification_notes,omitempty"`
	CancelledBy        *string         `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	Timestamp          time.Time       `json:"timestamp"`
}

// MovementListResponse lista paginada del ledger.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToMovementResponse mapea un movimiento sin campos de presentación.
func ToMovementResponse(m *entity.Movement) *MovementResponse {
	return ToMovementViewResponse(&entity.MovementView{Movement: *m})
}

// ToMovementViewResponse mapea la proyección de lectura.
func ToMovementViewResponse(v *entity.MovementView) *MovementResponse {
	return &MovementResponse{
		ID:                 v.ID,
		ProductID:          v.ProductID,
		ProductName:        v.ProductName,
		Type:               string(v.Type),
		FromLocationID:     v.FromLocationID,
		FromLocationCode:   v.FromLocationCode,
		ToLocationID:       v.ToLocationID,
		ToLocationCode:     v.ToLocationCode,
		Quantity:           v.Quantity,
		Weight:             v.Weight,
		UserID:             v.UserID,
		UserName:           v.UserName,
		Reason:             v.Reason,
		Status:             string(v.Status),
		IsAutomatic:        v.IsAutomatic,
		Verified:           v.Verified,
		VerifiedBy:         v.VerifiedBy,
		VerifiedAt:         v.VerifiedAt,
		VerificationNotes:  v.VerificationNotes,
		CancelledBy:        v.CancelledBy,
		CancelledAt:        v.CancelledAt,
		CancellationReason: v.CancellationReason,
		Timestamp:          v.Timestamp,
	}
}

// ToMovementListResponse arma la página de movimientos.
func ToMovementListResponse(list []*entity.MovementView, page PageRequest) *MovementListResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *ToMovementViewResponse(v))
	}
	return &MovementListResponse{Items: items, Page: PageResponse{Limit: page.Limit, Offset: page.Offset}}
}
