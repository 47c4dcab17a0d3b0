package entity

import "time"

// Client depositante dueño de los lotes.
type Client struct {
	ID        string
	Name      string
	Document  string // CPF/CNPJ u otro documento
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
