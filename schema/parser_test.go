package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS1SimpleRecord(t *testing.T) {
	text := "RECORD NAME.    CUSTOMER-RECORD\n" +
		"05  CUST-ID        X(9)    1   9\n"

	res, err := Parse(text)
	require.NoError(t, err)

	require.Equal(t, "customer_record", res.Table.Name)
	require.Len(t, res.Table.Columns, 2)
	assert.Equal(t, "id", res.Table.Columns[0].Name)
	assert.Equal(t, "cust_id", res.Table.Columns[1].Name)
	assert.Equal(t, "CHAR(9)", res.Table.Columns[1].Type.SQLDef())

	assert.Contains(t, res.CreateTableSQL, "CREATE TABLE customer_record(")
	assert.Contains(t, res.CreateTableSQL, "id CHAR(9) NOT NULL DEFAULT '',")
	assert.Contains(t, res.CreateTableSQL, "cust_id CHAR(9),")
	assert.Contains(t, res.CreateTableSQL, "PRIMARY KEY (id)")
}

func TestParseS3DecimalWithZeroDefault(t *testing.T) {
	text := "RECORD NAME.    ACCOUNT-RECORD\n" +
		"05  BALANCE   PIC 'ZERO' S9(5)V99   1   7\n"

	res, err := Parse(text)
	require.NoError(t, err)

	col := res.Table.Columns[1]
	assert.Equal(t, "balance", col.Name)
	assert.Equal(t, "DECIMAL(5, 2)", col.Type.SQLDef())
	assert.Equal(t, 7, col.Type.ByteLength)
	assert.Equal(t, " DEFAULT 0", col.DefaultLiteral)
}

func TestParseS6FillerExcludedFromTableButKeptInCopybook(t *testing.T) {
	text := "RECORD NAME.    CUSTOMER-RECORD\n" +
		"05  CUST-ID        X(9)    1   9\n" +
		"05  FILLER         X(2)    10  11\n"

	res, err := Parse(text)
	require.NoError(t, err)

	require.Len(t, res.Table.Columns, 2, "FILLER is not a real column")
	assert.Contains(t, res.Copybook, "FILLER", "but it still appears in the copybook")
}

func TestParseNoRecordNameIsFatal(t *testing.T) {
	_, err := Parse("05  CUST-ID  X(9)  1  9\n")
	require.Error(t, err)
}
