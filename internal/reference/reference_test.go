package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	gen, err := NewGenerator("BC", "test-salt")
	require.NoError(t, err)

	ref, err := gen.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "BC-"))

	code := strings.TrimPrefix(ref, "BC-")
	assert.GreaterOrEqual(t, len(code), 8)
	for _, c := range code {
		assert.Contains(t, alphabet, string(c), "unexpected character %q in %s", c, ref)
	}
}

func TestGenerateUnique(t *testing.T) {
	gen, err := NewGenerator("BC", "test-salt")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref, err := gen.Generate()
		require.NoError(t, err)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
