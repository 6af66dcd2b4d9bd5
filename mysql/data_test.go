package mysql

import (
	"testing"

	"github.com/joshnies/turring-eve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerTable() *idms.Table {
	return &idms.Table{
		Name: "customer_record",
		Columns: []idms.Column{
			idms.IDColumn(),
			{Name: "cust_name", Type: idms.ColumnType{Kind: idms.Char, ByteLength: 9}},
		},
	}
}

func TestParseDataFileS2DuplicateAdjacentSkipped(t *testing.T) {
	content := "000000001JANE     \n" +
		"000000001JANE     \n" +
		"000000002JOHN     \n"

	insert, err := ParseDataFile(customerTable(), []byte(content), "utf-8", 2)
	require.NoError(t, err)

	assert.Contains(t, insert, "('000000001', 'JANE')")
	assert.Contains(t, insert, "('000000002', 'JOHN')")
	assert.Equal(t, 1, countOccurrences(insert, "000000001"), "duplicate adjacent primary key row is skipped, not just its key")
}

func TestParseDataFileSkipsUnloadLines(t *testing.T) {
	content := "UNLOAD SOME HEADER\n000000001JANE     \n"

	insert, err := ParseDataFile(customerTable(), []byte(content), "utf-8", 1)
	require.NoError(t, err)
	assert.Contains(t, insert, "000000001")
	assert.NotContains(t, insert, "UNLOAD")
}

func TestParseDataFileLatin1EncodingDecodesHighBytes(t *testing.T) {
	table := customerTable()
	content := []byte("000000001" + string([]byte{0xE9, ' ', ' ', ' ', ' ', ' ', ' ', ' '}))

	insert, err := ParseDataFile(table, content, "latin1", 1)
	require.NoError(t, err)
	assert.Contains(t, insert, "'é'")
}

func TestTransformValueNumeric(t *testing.T) {
	numeric := idms.ColumnType{Kind: idms.Numeric, ByteLength: 5}
	assert.Equal(t, "NULL", transformValue(numeric, "     "))
	assert.Equal(t, "0", transformValue(numeric, "00000"))
	assert.Equal(t, "42", transformValue(numeric, "00042"))
}

func TestTransformValueDecimal(t *testing.T) {
	decimal := idms.ColumnType{Kind: idms.Decimal, ByteLength: 5, Length1: 3, Length2: 2}
	assert.Equal(t, "1.23", transformValue(decimal, "00123"))
}

func TestTransformValueDecimalShorterThanLength1(t *testing.T) {
	decimal := idms.ColumnType{Kind: idms.Decimal, ByteLength: 5, Length1: 3, Length2: 2}
	assert.Equal(t, "12.0", transformValue(decimal, "12"))
}

func TestTransformValueCharEscapesQuote(t *testing.T) {
	char := idms.ColumnType{Kind: idms.Char, ByteLength: 4}
	assert.Equal(t, "''", transformValue(char, "    "))
	assert.Equal(t, `'it\'s'`, transformValue(char, "it's"))
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}
	return count
}
