package inventory

import "github.com/shopspring/decimal"

// WeightScale número de decimales con que se persisten los pesos (kg).
const WeightScale = 3

// RoundWeight redondea un peso en kg a WeightScale decimales.
func RoundWeight(w decimal.Decimal) decimal.Decimal {
	return w.Round(WeightScale)
}

// TotalWeight calcula PesoTotal = Cantidad * PesoPorUnidad, redondeado a 3 decimales.
func TotalWeight(quantity int, weightPerUnit decimal.Decimal) decimal.Decimal {
	return RoundWeight(decimal.NewFromInt(int64(quantity)).Mul(weightPerUnit))
}

// OccupancyPercent devuelve el porcentaje de ocupación redondeado al entero más cercano.
// Una capacidad máxima no positiva se considera llena si hay peso y vacía si no.
func OccupancyPercent(current, max decimal.Decimal) int {
	if !max.IsPositive() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	pct := current.Div(max).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}
