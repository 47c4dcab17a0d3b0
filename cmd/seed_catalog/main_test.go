package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParseCatalog_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("nombre;dias\nFeijão;365\nmilho  safrinha;180\nFEIJÃO;400\n;10\n")
	require.NoError(t, err)

	types, err := parseCatalog(transform.NewReader(strings.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "FEIJÃO", types[0].name, "el repetido conserva la última fila")
	assert.Equal(t, 400, types[0].maxDays)
	assert.Equal(t, "milho safrinha", types[1].name)
}

func TestParseCatalog_IdEstable(t *testing.T) {
	a, err := parseCatalog(strings.NewReader("h\nSoja;90\n"))
	require.NoError(t, err)
	b, err := parseCatalog(strings.NewReader("h\nsoja;120\n"))
	require.NoError(t, err)
	assert.Equal(t, a[0].id, b[0].id)
}

func TestParseCatalog_DiasInvalidos(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("h\nSoja;noventa\n"))
	assert.ErrorContains(t, err, "línea 2")
}

func TestWriteSQL(t *testing.T) {
	types, err := parseCatalog(strings.NewReader("h\nTrigo d'água;30\nArroz;\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, types))
	sql := buf.String()
	assert.Contains(t, sql, "'Arroz', 0),")
	assert.Contains(t, sql, "'Trigo d''água', 30)\n")
	assert.Contains(t, sql, "ON CONFLICT (name) DO UPDATE")
}
