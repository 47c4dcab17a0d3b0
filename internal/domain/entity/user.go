package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User usuario que actúa sobre el inventario (directorio de solo lectura para el motor).
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string // admin, operador
	CreatedAt time.Time
}
