package set

import (
	"testing"

	idms "github.com/joshnies/turring-eve"
	"github.com/joshnies/turring-eve/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.NewLogger(logger.Config{Level: logger.FATAL + 1})
}

func tableWith(name string, columns ...string) *idms.Table {
	t := &idms.Table{Name: name, Columns: []idms.Column{idms.IDColumn()}}
	for _, c := range columns {
		t.Columns = append(t.Columns, idms.Column{Name: c, Type: idms.ColumnType{Kind: idms.Char, ByteLength: 9}})
	}
	return t
}

func TestParseUnknownModeIsFatal(t *testing.T) {
	text := "SET............ S-CUSTOMER-ORDER     MODE IS NETWORK\n"
	_, err := Parse(text, idms.NewCatalog(), Options{}, testLogger())
	require.Error(t, err)
}

func TestParseMissingHeaderIsFatal(t *testing.T) {
	_, err := Parse("no header here at all", idms.NewCatalog(), Options{}, testLogger())
	require.Error(t, err)
}

func TestChainS4ForeignKeyEmitted(t *testing.T) {
	catalog := idms.NewCatalog()
	catalog.Register(tableWith("customer_record", "cust_id"))
	catalog.Register(tableWith("order_record", "cust_id"))

	text := `SET............ S-CUSTOMER-ORDER     MODE IS CHAIN
OWNER........... CUSTOMER-RECORD
MEMBER.......... ORDER-RECORD      INDEX IS X
                  SORT KEY CUST-ID ASC
`
	out, err := Parse(text, catalog, Options{MigrateFKs: true}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE order_record ADD FOREIGN KEY (cust_id) REFERENCES customer_record(cust_id);\n", out)
}

func TestChainMigrateFKsDisabledProducesNoOutput(t *testing.T) {
	catalog := idms.NewCatalog()
	catalog.Register(tableWith("customer_record", "cust_id"))
	catalog.Register(tableWith("order_record", "cust_id"))

	text := `SET............ S-CUSTOMER-ORDER     MODE IS CHAIN
OWNER........... CUSTOMER-RECORD
MEMBER.......... ORDER-RECORD      INDEX IS X
                  SORT KEY CUST-ID ASC
`
	out, err := Parse(text, catalog, Options{MigrateFKs: false}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestChainMissingOwnerSkipsSet(t *testing.T) {
	catalog := idms.NewCatalog()
	text := `SET............ S-CUSTOMER-ORDER     MODE IS CHAIN
MEMBER.......... ORDER-RECORD      INDEX IS X
                  SORT KEY CUST-ID ASC
`
	out, err := Parse(text, catalog, Options{MigrateFKs: true}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestChainUnknownOwnerSkipsSet(t *testing.T) {
	catalog := idms.NewCatalog()
	catalog.Register(tableWith("order_record", "cust_id"))
	text := `SET............ S-CUSTOMER-ORDER     MODE IS CHAIN
OWNER........... CUSTOMER-RECORD
MEMBER.......... ORDER-RECORD      INDEX IS X
                  SORT KEY CUST-ID ASC
`
	out, err := Parse(text, catalog, Options{MigrateFKs: true}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestChainUnknownMemberIsSkippedNotFatal(t *testing.T) {
	catalog := idms.NewCatalog()
	catalog.Register(tableWith("customer_record", "cust_id"))
	text := `SET............ S-CUSTOMER-ORDER     MODE IS CHAIN
OWNER........... CUSTOMER-RECORD
MEMBER.......... ORDER-RECORD      INDEX IS X
                  SORT KEY CUST-ID ASC
`
	out, err := Parse(text, catalog, Options{MigrateFKs: true}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRewriteKeyPrefixIdentityWhenPrefixAlreadyMatches(t *testing.T) {
	got := rewriteKeyPrefix("empl_id", "employee")
	assert.Equal(t, "empl_id", got)
}

func TestRewriteKeyPrefixRewritesMismatchedPrefix(t *testing.T) {
	got := rewriteKeyPrefix("zzzz_id", "employee")
	assert.Equal(t, "empl_id", got)
}

func TestIndexS5ViewEmitted(t *testing.T) {
	catalog := idms.NewCatalog()
	catalog.Register(tableWith("customer_record", "cust_id", "last_name"))
	catalog.Register(tableWith("order_record", "cust_id", "order_date"))

	text := `SET............ IX-CUST-BY-NAME      MODE IS INDEX
MEMBER.......... CUSTOMER-RECORD   INDEX IS X
                  SORT KEY LAST-NAME ASC
MEMBER.......... ORDER-RECORD      INDEX IS Y
                  SORT KEY ORDER-DATE DESC
`
	out, err := Parse(text, catalog, Options{}, testLogger())
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE VIEW cust_by_name_view AS")
	assert.Contains(t, out, "customer_record.last_name")
	assert.Contains(t, out, "order_record.order_date")
	assert.Contains(t, out, "FROM\n\tcustomer_record,\n\torder_record\n")
	assert.Contains(t, out, "ORDER BY\n\tcustomer_record.last_name ASC,\n\torder_record.order_date DESC")
}

func TestIndexDuplicateQualifiedColumnKeepsFirstOccurrence(t *testing.T) {
	catalog := idms.NewCatalog()
	catalog.Register(tableWith("customer_record", "last_name"))

	text := `SET............ IX-CUST-BY-NAME      MODE IS INDEX
MEMBER.......... CUSTOMER-RECORD   INDEX IS X
                  SORT KEY LAST-NAME ASC
LAST-NAME DESC
MEMBER.......... CUSTOMER-RECORD   INDEX IS X
                  SORT KEY LAST-NAME ASC
`
	out, err := Parse(text, catalog, Options{}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, countOccurrences(out, "customer_record.last_name"), "once in SELECT, once in ORDER BY")
	assert.Contains(t, out, "customer_record.last_name ASC")
	assert.NotContains(t, out, "customer_record.last_name DESC")
}

func TestIndexUnknownMemberTableLogsAndContinues(t *testing.T) {
	catalog := idms.NewCatalog()
	catalog.Register(tableWith("order_record", "order_date"))

	text := `SET............ IX-CUST-BY-NAME      MODE IS INDEX
MEMBER.......... CUSTOMER-RECORD   INDEX IS X
                  SORT KEY LAST-NAME ASC
MEMBER.......... ORDER-RECORD      INDEX IS Y
                  SORT KEY ORDER-DATE DESC
`
	out, err := Parse(text, catalog, Options{}, testLogger())
	require.NoError(t, err)
	assert.NotContains(t, out, "customer_record.last_name")
	assert.Contains(t, out, "order_record.order_date")
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
			i += len(substr) - 1
		}
	}
	return count
}
