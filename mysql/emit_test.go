package mysql

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterWritesFragmentsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sql")

	e, err := NewFileEmitter(path)
	require.NoError(t, err)

	require.NoError(t, e.WriteFragment("CREATE TABLE t();"))
	require.NoError(t, e.WriteFragment("INSERT INTO t VALUES ();"))
	require.NoError(t, e.WriteFragment(""))
	require.NoError(t, e.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t();\nINSERT INTO t VALUES ();\n", string(content))
}
