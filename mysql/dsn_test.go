package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN("root", "secret", "127.0.0.1", 3306, "idms_migration")
	assert.Contains(t, dsn, "root:secret@tcp(127.0.0.1:3306)/idms_migration")
}
