package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalWeight_RedondeaATresDecimales(t *testing.T) {
	w := TotalWeight(3, decimal.RequireFromString("0.3333"))
	assert.True(t, w.Equal(decimal.RequireFromString("1")), "3 x 0.3333 = 0.9999 -> 1.000, obtuvo %s", w)

	w = TotalWeight(20, decimal.NewFromInt(25))
	assert.True(t, w.Equal(decimal.NewFromInt(500)))

	w = TotalWeight(7, decimal.RequireFromString("1.23456"))
	assert.Equal(t, "8.642", w.StringFixed(3))
}

func TestOccupancyPercent(t *testing.T) {
	max := decimal.NewFromInt(1000)
	assert.Equal(t, 0, OccupancyPercent(decimal.Zero, max))
	assert.Equal(t, 50, OccupancyPercent(decimal.NewFromInt(500), max))
	assert.Equal(t, 100, OccupancyPercent(max, max))
	assert.Equal(t, 1, OccupancyPercent(decimal.RequireFromString("5"), max), "0.5% redondea a 1")
	assert.Equal(t, 0, OccupancyPercent(decimal.Zero, decimal.Zero))
}
