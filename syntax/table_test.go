package syntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPriorities(t *testing.T) {
	tbl := Default()
	p, ok := tbl.InfixPriority("*")
	require.True(t, ok)
	assert.Greater(t, p, mustPriority(t, tbl, "+"))
}

func mustPriority(t *testing.T, tbl *Table, op string) int {
	p, ok := tbl.InfixPriority(op)
	require.True(t, ok)
	return p
}

func TestUnknownInfixReturnsSentinel(t *testing.T) {
	tbl := New()
	p, ok := tbl.InfixPriority("~~~")
	assert.False(t, ok)
	assert.Equal(t, NoPriority, p)
}

func TestLoadSyntaxFile(t *testing.T) {
	src := `INFIX
  200 / "+" / "-"
  300 / "*" / "/"
BLOCK
  "(" -> ")"
COMMENT
  "//" -> "\n"
`
	tbl, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	p, ok := tbl.InfixPriority("+")
	require.True(t, ok)
	assert.Equal(t, 200, p)

	close, ok := tbl.IsBlock("(")
	require.True(t, ok)
	assert.Equal(t, ")", close)
}
