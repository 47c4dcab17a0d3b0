package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// CreateWithdrawalRequest solicitud de retiro (admin).
type CreateWithdrawalRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=TOTAL PARCIAL"`
	Quantity  *int   `json:"quantity"`
	Reason    string `json:"reason"`
}

// ResolveWithdrawalRequest notas de confirmación o motivo de cancelación.
type ResolveWithdrawalRequest struct {
	Notes string `json:"notes"`
}

// WithdrawalSnapshotResponse foto del producto al crear la solicitud.
type WithdrawalSnapshotResponse struct {
	ProductName  string          `json:"product_name"`
	LotCode      string          `json:"lot_code"`
	Quantity     int             `json:"quantity"`
	TotalWeight  decimal.Decimal `json:"total_weight" swaggertype:"string"`
	LocationID   *string         `json:"location_id"`
	LocationCode string          `json:"location_code"`
}

// WithdrawalResponse salida de una solicitud de retiro.
type WithdrawalResponse struct {
	ID                string                     `json:"id"`
	ProductID         string                     `json:"product_id"`
	RequestedBy       string                     `json:"requested_by"`
	Type              string                     `json:"type"`
	Status            string                     `json:"status"`
	QuantityRequested *int                       `json:"quantity_requested"`
	Reason            string                     `json:"reason"`
	Snapshot          WithdrawalSnapshotResponse `json:"snapshot"`
	ResolvedBy        *string                    `json:"resolved_by,omitempty"`
	ResolvedAt        *time.Time                 `json:"resolved_at,omitempty"`
	ResolutionNotes   string                     `json:"resolution_notes,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

// WithdrawalListResponse lista paginada de solicitudes.
type WithdrawalListResponse struct {
	Items []WithdrawalResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ToWithdrawalResponse mapea la entidad a la salida HTTP.
func ToWithdrawalResponse(w *entity.WithdrawalRequest) *WithdrawalResponse {
	s := w.Snapshot
	return &WithdrawalResponse{
		ID:                w.ID,
		ProductID:         w.ProductID,
		RequestedBy:       w.RequestedBy,
		Type:              string(w.Type),
		Status:            string(w.Status),
		QuantityRequested: w.QuantityRequested,
		Reason:            w.Reason,
		Snapshot: WithdrawalSnapshotResponse{
			ProductName:  s.ProductName,
			LotCode:      s.LotCode,
			Quantity:     s.Quantity,
			TotalWeight:  s.TotalWeight,
			LocationID:   s.LocationID,
			LocationCode: s.LocationCode,
		},
		ResolvedBy:      w.ResolvedBy,
		ResolvedAt:      w.ResolvedAt,
		ResolutionNotes: w.ResolutionNotes,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}
