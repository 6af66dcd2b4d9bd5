package textprep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	in := "RECORD NAME.    CUSTOMER-RECORD\n" +
		"      * this is a comment\n" +
		"\n" +
		"05  CUST-ID        X(9)    1   9\n"

	got := Clean(in)

	assert.NotContains(t, got, "this is a comment")
	assert.Contains(t, got, "RECORD NAME. CUSTOMER-RECORD")
	assert.Contains(t, got, "05 CUST-ID X(9) 1 9")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", got)
}
