package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chamber cámara refrigerada con una grilla de 4 dimensiones (quadra/lado/fila/andar).
type Chamber struct {
	ID              string
	Name            string
	Description     string
	Quadras         int
	Lados           int
	Filas           int
	Andares         int
	DefaultCapacity decimal.Decimal // kg por celda al generar ubicaciones en lote
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Contains indica si la coordenada está dentro de los rangos de la cámara (base 1).
func (c *Chamber) Contains(co Coordinates) bool {
	return co.Quadra >= 1 && co.Quadra <= c.Quadras &&
		co.Lado >= 1 && co.Lado <= c.Lados &&
		co.Fila >= 1 && co.Fila <= c.Filas &&
		co.Andar >= 1 && co.Andar <= c.Andares
}

// Grid recorre todas las coordenadas de la cámara en orden quadra, lado, fila, andar.
func (c *Chamber) Grid() []Coordinates {
	if c.Quadras <= 0 || c.Lados <= 0 || c.Filas <= 0 || c.Andares <= 0 {
		return nil
	}
	out := make([]Coordinates, 0, c.Quadras*c.Lados*c.Filas*c.Andares)
	for q := 1; q <= c.Quadras; q++ {
		for l := 1; l <= c.Lados; l++ {
			for f := 1; f <= c.Filas; f++ {
				for a := 1; a <= c.Andares; a++ {
					out = append(out, Coordinates{Quadra: q, Lado: l, Fila: f, Andar: a})
				}
			}
		}
	}
	return out
}
