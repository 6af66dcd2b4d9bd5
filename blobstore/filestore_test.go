package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileStore(map[string]string{"primary": filepath.Join(dir, "primary")})
	require.NoError(t, err)

	src := filepath.Join(dir, "local.sql")
	require.NoError(t, os.WriteFile(src, []byte("CREATE TABLE t();"), 0o644))

	require.NoError(t, store.Upload(ctx, "primary", src, "outputs/base/idms_migration.sql"))

	keys, err := store.List(ctx, "primary", "outputs/base")
	require.NoError(t, err)
	require.Equal(t, []string{"outputs/base/idms_migration.sql"}, keys)

	dst := filepath.Join(dir, "downloaded.sql")
	require.NoError(t, store.Download(ctx, "primary", "outputs/base/idms_migration.sql", dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE t();", string(got))
}

func TestKeyBase(t *testing.T) {
	require.Equal(t, "CUSTOMER.cpy", keyBase("inputs/base/copybooks/CUSTOMER.cpy"))
}
