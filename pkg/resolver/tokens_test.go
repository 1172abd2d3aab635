package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "check bitcoin balance", normalize("  Check   Bitcoin\tBalance "))
	assert.Equal(t, "", normalize("   "))
	assert.Equal(t, "qr-code", normalize("QR-Code"))
}

func TestTokenize(t *testing.T) {
	t.Run("splits on punctuation and lowercases", func(t *testing.T) {
		assert.Equal(t, []string{"balance", "btc", "value", "wallet"},
			tokenize("what's the value in this BTC wallet? balance"))
	})

	t.Run("drops stopwords and single characters", func(t *testing.T) {
		assert.Empty(t, tokenize("what is a i to the"))
	})

	t.Run("deduplicates", func(t *testing.T) {
		assert.Equal(t, []string{"balance"}, tokenize("balance balance BALANCE"))
	})

	t.Run("hyphenated names split into segments", func(t *testing.T) {
		assert.Equal(t, []string{"address", "balance", "check", "crypto"},
			tokenize("check-crypto-address-balance"))
	})
}

func TestOverlap(t *testing.T) {
	assert.Equal(t, []string{"btc", "wallet"},
		overlap([]string{"btc", "value", "wallet"}, []string{"balance", "btc", "crypto", "wallet"}))
	assert.Empty(t, overlap([]string{"alpha"}, []string{"beta"}))
	assert.Empty(t, overlap(nil, []string{"beta"}))
}
