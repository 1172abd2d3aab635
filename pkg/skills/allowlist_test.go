package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(names ...string) *Registry {
	records := make(map[string]*Skill, len(names))
	for _, name := range names {
		records[name] = &Skill{Name: name, Description: "Skill " + name}
	}
	return &Registry{records: records}
}

func TestFilterByAllowlist(t *testing.T) {
	registry := testRegistry("crypto-balance", "crypto-price", "upload-file")

	t.Run("empty allowlist returns all", func(t *testing.T) {
		filtered, err := FilterByAllowlist(registry, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, filtered.Len())
	})

	t.Run("exact names", func(t *testing.T) {
		filtered, err := FilterByAllowlist(registry, []string{"upload-file"})
		require.NoError(t, err)
		assert.Equal(t, []string{"upload-file"}, filtered.Names())
	})

	t.Run("glob patterns", func(t *testing.T) {
		filtered, err := FilterByAllowlist(registry, []string{"crypto-*"})
		require.NoError(t, err)
		assert.Equal(t, []string{"crypto-balance", "crypto-price"}, filtered.Names())
	})

	t.Run("unknown names filtered out", func(t *testing.T) {
		filtered, err := FilterByAllowlist(registry, []string{"does-not-exist"})
		require.NoError(t, err)
		assert.Equal(t, 0, filtered.Len())
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := FilterByAllowlist(registry, []string{"[unclosed"})
		assert.Error(t, err)
	})
}
