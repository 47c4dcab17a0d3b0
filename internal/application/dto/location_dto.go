package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateChamberRequest entrada para crear una cámara fría con su grilla.
type CreateChamberRequest struct {
	Name            string           `json:"name" validate:"required,min=1,max=200"`
	Description     string           `json:"description"`
	Quadras         int              `json:"quadras" validate:"min=1"`
	Lados           int              `json:"lados" validate:"min=1"`
	Filas           int              `json:"filas" validate:"min=1"`
	Andares         int              `json:"andares" validate:"min=1"`
	DefaultCapacity *decimal.Decimal `json:"default_capacity" swaggertype:"string"`
}

// ChamberResponse salida de una cámara.
type ChamberResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Quadras         int             `json:"quadras"`
	Lados           int             `json:"lados"`
	Filas           int             `json:"filas"`
	Andares         int             `json:"andares"`
	DefaultCapacity decimal.Decimal `json:"default_capacity" swaggertype:"string"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ChamberListResponse lista paginada de cámaras.
type ChamberListResponse struct {
	Items []ChamberResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateLocationRequest ubicación individual; code vacío usa el código de las coordenadas.
type CreateLocationRequest struct {
	Code        string           `json:"code"`
	Quadra      int              `json:"quadra" validate:"min=1"`
	Lado        int              `json:"lado" validate:"min=1"`
	Fila        int              `json:"fila" validate:"min=1"`
	Andar       int              `json:"andar" validate:"min=1"`
	MaxCapacity *decimal.Decimal `json:"max_capacity" swaggertype:"string"`
}

// GenerateLocationsRequest generación masiva sobre toda la grilla de la cámara.
type GenerateLocationsRequest struct {
	MaxCapacity *decimal.Decimal `json:"max_capacity" swaggertype:"string"`
}

// GenerateLocationsResponse resultado de la generación masiva.
type GenerateLocationsResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// LocationResponse ubicación con sus vistas de capacidad.
type LocationResponse struct {
	ID                string          `json:"id"`
	ChamberID         string          `json:"chamber_id"`
	Code              string          `json:"code"`
	Quadra            int             `json:"quadra"`
	Lado              int             `json:"lado"`
	Fila              int             `json:"fila"`
	Andar             int             `json:"andar"`
	MaxCapacity       decimal.Decimal `json:"max_capacity" swaggertype:"string"`
	CurrentWeight     decimal.Decimal `json:"current_weight" swaggertype:"string"`
	AvailableCapacity decimal.Decimal `json:"available_capacity" swaggertype:"string"`
	OccupancyPercent  int             `json:"occupancy_percent"`
	CapacityStatus    string          `json:"capacity_status"`
	Occupied          bool            `json:"occupied"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
