package respond

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillroute/pkg/resolver"
	"github.com/jingkaihe/skillroute/pkg/skills"
)

func loadTestRegistry(t *testing.T) *skills.Registry {
	t.Helper()
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, "check-crypto-address-balance")
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	content := `---
name: check-crypto-address-balance
description: Check the balance of a crypto address
category: crypto
---

Content.
`
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, skills.SkillFileName), []byte(content), 0o644))

	registry, err := skills.Load([]string{tmpDir})
	require.NoError(t, err)
	return registry
}

func TestFromMatchAndRender(t *testing.T) {
	registry := loadTestRegistry(t)
	res := resolver.New()

	t.Run("matched", func(t *testing.T) {
		match := res.Resolve(registry, "check-crypto-address-balance")
		rendered, err := Render(FromMatch(registry, "check-crypto-address-balance", match))
		require.NoError(t, err)

		assert.Contains(t, rendered, "Skill(s) used: check-crypto-address-balance")
		assert.Contains(t, rendered, "Result: Check the balance of a crypto address (matched at the exact tier)")
		assert.Contains(t, rendered, "Next step: follow the instructions in the skill document")
	})

	t.Run("no match states no skill found", func(t *testing.T) {
		match := res.Resolve(registry, "translate this document to French")
		rendered, err := Render(FromMatch(registry, "translate this document to French", match))
		require.NoError(t, err)

		assert.Contains(t, rendered, "Skill(s) used: none")
		assert.Contains(t, rendered, "no skill found")
		assert.Contains(t, rendered, "best-effort general handling")
	})
}

func TestRenderShape(t *testing.T) {
	rendered, err := Render(Response{
		SkillsUsed: []string{"a-skill", "b-skill"},
		Result:     "did the thing",
		NextStep:   "verify the output",
	})
	require.NoError(t, err)

	assert.Equal(t, "Skill(s) used: a-skill, b-skill\nResult: did the thing\nNext step: verify the output\n", rendered)
}
