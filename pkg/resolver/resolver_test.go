package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillroute/pkg/skills"
)

func writeSkill(t *testing.T, root, dirName, content string) {
	t.Helper()
	skillDir := filepath.Join(root, dirName)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, skills.SkillFileName), []byte(content), 0o644))
}

func loadTestRegistry(t *testing.T) *skills.Registry {
	t.Helper()
	tmpDir := t.TempDir()

	writeSkill(t, tmpDir, "check-crypto-address-balance", `---
name: check-crypto-address-balance
description: Check the balance of a crypto address on a public block explorer
category: crypto
aliases:
  - check bitcoin balance
  - btc balance
  - wallet balance
---

Query the explorer API for the address.
`)

	writeSkill(t, tmpDir, "upload-file-ipfs", `---
name: upload-file-ipfs
description: Upload a file to an IPFS gateway and return the content hash
category: files
aliases:
  - upload file
  - pin file
---

POST the file to the gateway.
`)

	writeSkill(t, tmpDir, "generate-qr-code", `---
name: generate-qr-code
description: Generate a QR code image from text or a URL
category: utilities
aliases:
  - qr code
---

Use the QR endpoint.
`)

	registry, err := skills.Load([]string{tmpDir})
	require.NoError(t, err)
	return registry
}

func TestResolveExactTier(t *testing.T) {
	registry := loadTestRegistry(t)
	res := New()

	t.Run("skill name", func(t *testing.T) {
		match := res.Resolve(registry, "check-crypto-address-balance")
		assert.Equal(t, TierExact, match.Tier)
		assert.Equal(t, "check-crypto-address-balance", match.MatchedID)
		assert.Equal(t, 1.0, match.Confidence)
	})

	t.Run("alias", func(t *testing.T) {
		match := res.Resolve(registry, "check bitcoin balance")
		assert.Equal(t, TierExact, match.Tier)
		assert.Equal(t, "check-crypto-address-balance", match.MatchedID)
	})

	t.Run("case insensitive", func(t *testing.T) {
		match := res.Resolve(registry, "Check Bitcoin Balance")
		assert.Equal(t, TierExact, match.Tier)
		assert.Equal(t, "check-crypto-address-balance", match.MatchedID)
	})

	t.Run("whitespace normalized", func(t *testing.T) {
		match := res.Resolve(registry, "  check   bitcoin\tbalance ")
		assert.Equal(t, TierExact, match.Tier)
		assert.Equal(t, "check-crypto-address-balance", match.MatchedID)
	})

	t.Run("every name resolves to itself", func(t *testing.T) {
		for _, name := range registry.Names() {
			match := res.Resolve(registry, name)
			assert.Equal(t, TierExact, match.Tier)
			assert.Equal(t, name, match.MatchedID)
		}
	})
}

func TestResolveSemanticTier(t *testing.T) {
	registry := loadTestRegistry(t)
	res := New()

	t.Run("btc wallet request", func(t *testing.T) {
		match := res.Resolve(registry, "what's the value in this BTC wallet?")
		assert.Equal(t, TierSemantic, match.Tier)
		assert.Equal(t, "check-crypto-address-balance", match.MatchedID)
		assert.Greater(t, match.Confidence, 0.0)
		assert.LessOrEqual(t, match.Confidence, 1.0)
		assert.Contains(t, match.MatchedTokens, "btc")
		assert.Contains(t, match.MatchedTokens, "wallet")
	})

	t.Run("description overlap", func(t *testing.T) {
		match := res.Resolve(registry, "upload my file to ipfs")
		assert.Equal(t, TierSemantic, match.Tier)
		assert.Equal(t, "upload-file-ipfs", match.MatchedID)
	})

	t.Run("single overlapping token not enough", func(t *testing.T) {
		match := res.Resolve(registry, "balance my chakras with meditation music playlists")
		assert.NotEqual(t, TierSemantic, match.Tier)
	})

	t.Run("high threshold suppresses weak matches", func(t *testing.T) {
		strict := New(WithSemanticThreshold(0.99))
		match := strict.Resolve(registry, "upload my file somewhere on the internet for me")
		assert.Equal(t, TierNone, match.Tier)
	})
}

func TestResolveCategoryTier(t *testing.T) {
	registry := loadTestRegistry(t)
	res := New()

	// "crypto" is a category keyword; nothing matches exactly or
	// semantically with two tokens, so the category tier kicks in.
	match := res.Resolve(registry, "something crypto related")
	assert.Equal(t, TierCategory, match.Tier)
	assert.Equal(t, "check-crypto-address-balance", match.MatchedID)
}

func TestResolveCategoryTieBreak(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, tmpDir, "zeta-files", `---
name: zeta-files
description: Archive maintenance
category: files
---

Content.
`)
	writeSkill(t, tmpDir, "alpha-files", `---
name: alpha-files
description: Directory housekeeping
category: files
---

Content.
`)

	registry, err := skills.Load([]string{tmpDir})
	require.NoError(t, err)

	match := New().Resolve(registry, "anything files please")
	assert.Equal(t, TierCategory, match.Tier)
	assert.Equal(t, "alpha-files", match.MatchedID, "category ties break to the smallest name")
}

func TestResolveFallback(t *testing.T) {
	registry := loadTestRegistry(t)
	res := New()

	match := res.Resolve(registry, "translate this document to French")
	assert.Equal(t, TierNone, match.Tier)
	assert.Empty(t, match.MatchedID)
	assert.False(t, match.Matched())
	assert.Equal(t, "none", match.TierName)
}

func TestResolveIdempotent(t *testing.T) {
	registry := loadTestRegistry(t)
	res := New()

	requests := []string{
		"check-crypto-address-balance",
		"what's the value in this BTC wallet?",
		"something crypto related",
		"translate this document to French",
	}

	for _, request := range requests {
		first := res.Resolve(registry, request)
		second := res.Resolve(registry, request)
		assert.Equal(t, first, second, "resolve %q twice", request)
	}
}

func TestResolveDegenerateInputs(t *testing.T) {
	registry := loadTestRegistry(t)
	res := New()

	t.Run("empty request", func(t *testing.T) {
		match := res.Resolve(registry, "")
		assert.Equal(t, TierNone, match.Tier)
	})

	t.Run("whitespace request", func(t *testing.T) {
		match := res.Resolve(registry, "   \t  ")
		assert.Equal(t, TierNone, match.Tier)
	})

	t.Run("nil registry", func(t *testing.T) {
		match := res.Resolve(nil, "check bitcoin balance")
		assert.Equal(t, TierNone, match.Tier)
	})
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "exact", TierExact.String())
	assert.Equal(t, "semantic", TierSemantic.String())
	assert.Equal(t, "category", TierCategory.String())
	assert.Equal(t, "none", TierNone.String())
}
