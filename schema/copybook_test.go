package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCopybookHeaderAndItem(t *testing.T) {
	lines := strings.Split("05  CUST-ID  PIC  X(9)   1   9\n88  IS-VIP  VALUE  'Y'   1   1\n", "\n")

	cb := buildCopybook("CUSTOMER-RECORD", lines)

	assert.True(t, strings.HasPrefix(cb, "       01 CUSTOMER-RECORD.\n"))
	assert.Contains(t, cb, "CUST-ID PIC X(9).")
	assert.Contains(t, cb, "IS-VIP VALUE 'Y'.", "condition items still render, unlike in the CREATE TABLE pass")
}
