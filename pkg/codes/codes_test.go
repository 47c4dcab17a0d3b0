package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  lote ação 12 ": "LOTE-ACAO-12",
		"Q01-L1-F01-A1":   "Q01-L1-F01-A1",
		"feijão   preto":  "FEIJAO-PRETO",
		"":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "entrada %q", in)
	}
}
