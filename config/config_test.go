package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	doc := `
[buckets]
primary = "my-eve-bucket"
secondary = "my-theory-bucket"

[defaults]
migrate_fks = true

[concurrency]
workers = 8
`
	cfg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "my-eve-bucket", cfg.Buckets.Primary)
	assert.True(t, cfg.Defaults.MigrateFKs)
	assert.Equal(t, "_SCHEMA.txt", cfg.Defaults.SchemasSuffix, "unset fields keep the built-in default")
	assert.Equal(t, 8, cfg.Concurrency.Workers)
}

func TestParseRejectsEmptyBucket(t *testing.T) {
	_, err := Parse(strings.NewReader(`[buckets]
primary = ""
secondary = "theory"
`))
	require.Error(t, err)
}
