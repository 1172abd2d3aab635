package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillroute/pkg/version"
)

func runVersionCmd(t *testing.T, jsonFlag bool) string {
	t.Helper()

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() {
		versionCmd.SetOut(nil)
		require.NoError(t, versionCmd.Flags().Set("json", "false"))
	})

	if jsonFlag {
		require.NoError(t, versionCmd.Flags().Set("json", "true"))
	}

	versionCmd.Run(versionCmd, nil)
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	t.Run("human readable by default", func(t *testing.T) {
		out := runVersionCmd(t, false)
		assert.Contains(t, out, "Version: "+version.Version)
		assert.Contains(t, out, "GitCommit: "+version.GitCommit)
	})

	t.Run("json flag", func(t *testing.T) {
		out := runVersionCmd(t, true)

		var info version.Info
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, version.Version, info.Version)
		assert.Equal(t, version.GitCommit, info.GitCommit)
	})
}
