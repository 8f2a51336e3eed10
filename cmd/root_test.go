package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootRejectsMissingConfig(t *testing.T) {
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		configPath = ""
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.json"), "runs"})

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "read config file")
	assert.Contains(t, out.String(), "read config file")
}
