package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.Len(t, code, Length)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "otp must be numeric, got %q", code)
		}
		seen[code] = true
	}

	// 100 draws from a million-value space should not all collide.
	assert.Greater(t, len(seen), 1)
}
