package dto

import "time"

// CreateSeedTypeRequest alta de un tipo de semilla; max_storage_days = 0 no deriva vencimiento.
type CreateSeedTypeRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	MaxStorageDays int    `json:"max_storage_days" validate:"min=0"`
}

// SeedTypeResponse salida de un tipo de semilla.
type SeedTypeResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	MaxStorageDays int       `json:"max_storage_days"`
	CreatedAt      time.Time `json:"created_at"`
}

// SeedTypeListResponse lista paginada de tipos de semilla.
type SeedTypeListResponse struct {
	Items []SeedTypeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateClientRequest alta de un depositante.
type CreateClientRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Document string `json:"document"`
	Email    string `json:"email"`
}

// ClientResponse salida de un depositante.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientListResponse lista paginada de depositantes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
