package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	rows := Parse("sku,name\nABC-1,Filtro de Oleo\nABC-2,Pastilha de Freio")

	require.Len(t, rows, 2)
	assert.Equal(t, "ABC-1", rows[0]["sku"])
	assert.Equal(t, "Filtro de Oleo", rows[0]["name"])
	assert.Equal(t, "ABC-2", rows[1]["sku"])
}

func TestParseQuotedFields(t *testing.T) {
	rows := Parse("sku,description\nABC-1,\"com virgula, no meio\"\nABC-2,\"aspas \"\"duplas\"\" aqui\"")

	require.Len(t, rows, 2)
	assert.Equal(t, "com virgula, no meio", rows[0]["description"])
	assert.Equal(t, `aspas "duplas" aqui`, rows[1]["description"])
}

func TestParseSkipsBlankLines(t *testing.T) {
	rows := Parse("sku,name\n\nABC-1,Filtro\n   \nABC-2,Pastilha\n")

	require.Len(t, rows, 2)
	assert.Equal(t, "ABC-1", rows[0]["sku"])
	assert.Equal(t, "ABC-2", rows[1]["sku"])
}

func TestParseHeaderOnly(t *testing.T) {
	assert.Empty(t, Parse("sku,name\n"))
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("   \n  \n"))
}

func TestParseShortRowFillsEmpty(t *testing.T) {
	rows := Parse("sku,name,price\nABC-1,Filtro")

	require.Len(t, rows, 1)
	assert.Equal(t, "ABC-1", rows[0]["sku"])
	assert.Equal(t, "", rows[0]["price"])
}

// An unterminated quote is treated permissively: the field runs to the end of
// the line, commas included.
func TestParseUnterminatedQuote(t *testing.T) {
	rows := Parse("sku,name\nABC-1,\"sem fechar, a virgula fica")

	require.Len(t, rows, 1)
	assert.Equal(t, "sem fechar, a virgula fica", rows[0]["name"])
}

func TestSerializeEscaping(t *testing.T) {
	rows := []Row{
		{"sku": "ABC-1", "name": `tem "aspas" e, virgula`},
		{"sku": "ABC-2", "name": "linha\nquebrada"},
	}

	out := Serialize(rows, []string{"sku", "name"})

	assert.Equal(t, "sku,name\nABC-1,\"tem \"\"aspas\"\" e, virgula\"\nABC-2,\"linha\nquebrada\"", out)
}

// A value like "a,b","c" must survive one full serialize -> parse cycle.
func TestQuotingRoundTrip(t *testing.T) {
	original := `"a,b","c"`
	rows := []Row{{"sku": "X", "value": original}}

	parsed := Parse(Serialize(rows, []string{"sku", "value"}))

	require.Len(t, parsed, 1)
	assert.Equal(t, original, parsed[0]["value"])
}

func TestRoundTripPlainValues(t *testing.T) {
	rows := []Row{
		{"sku": "ABC-1", "price": "129.90", "active": "true"},
		{"sku": "ABC-2", "price": "0", "active": "false"},
	}
	headers := []string{"sku", "price", "active"}

	parsed := Parse(Serialize(rows, headers))

	require.Len(t, parsed, 2)
	assert.Equal(t, rows[0], parsed[0])
	assert.Equal(t, rows[1], parsed[1])
}
