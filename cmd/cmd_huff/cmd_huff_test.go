package cmd_huff

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rskv-p/huff/cmd/cmd_app"
	"github.com/rskv-p/huff/config"
	"github.com/rskv-p/huff/constant"
	"github.com/rskv-p/huff/pkg/x_huff"
	"github.com/rskv-p/huff/pkg/x_report"
	"github.com/rskv-p/huff/servs/s_huff/huff_rest"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DB.DSN = filepath.Join(t.TempDir(), "runs.db")
	cfg.DB.LogLevel = "silent"
	cmd_app.Set(cfg)
	t.Cleanup(func() { cmd_app.Set(nil) })
	return cfg
}

func execute(t *testing.T, c *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetArgs(args)
	c.SetIn(strings.NewReader(stdin))
	c.SetOut(&out)
	c.SetErr(&out)
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEncodeText(t *testing.T) {
	useConfig(t)

	out, err := execute(t, EncodeCmd(), "", "--text", "aa b", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "Character Codes:")
	assert.Contains(t, out, "[Space]: 10")
	assert.Contains(t, out, "Encoded size: 6 bits (1 bytes)")
	assert.Contains(t, out, "Compression ratio: 0.1875")
	assert.NotContains(t, out, "Run:")
}

func TestEncodeTree(t *testing.T) {
	useConfig(t)

	out, err := execute(t, EncodeCmd(), "", "--text", "aaab", "--tree", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "Tree:\n-- NODE Weight: 4 Seq: 2\n")
}

func TestEncodeStdinJSON(t *testing.T) {
	useConfig(t)

	out, err := execute(t, EncodeCmd(), "aaab", "--format", "json")
	require.NoError(t, err)

	var rep x_report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, uint64(4), rep.Stats.EncodedBits)
	assert.Equal(t, "11100000", rep.Dump)
}

func TestEncodeFileAndStore(t *testing.T) {
	useConfig(t)
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("zzzz"), 0o644))

	out, err := execute(t, EncodeCmd(), "", path, "--store", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "Encoded size: 4 bits (1 bytes)")
	assert.Contains(t, out, "Run: ")

	out, err = execute(t, RunsCmd, "")
	require.NoError(t, err)
	assert.Contains(t, out, "RATIO")
	assert.Contains(t, out, "0.125")
}

func TestEncodeErrors(t *testing.T) {
	useConfig(t)

	_, err := execute(t, EncodeCmd(), "")
	assert.Error(t, err)

	_, err = execute(t, EncodeCmd(), "", "--text", "x", "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, EncodeCmd(), "", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestEncodeEmptyText(t *testing.T) {
	useConfig(t)

	out, err := execute(t, EncodeCmd(), "piped input", "--text", "", "--color", "never")
	require.Error(t, err)
	assert.ErrorIs(t, err, x_huff.ErrEmptyInput)
	assert.ErrorIs(t, err, constant.ErrBadRequest)
	assert.NotContains(t, out, "Character Codes:")
}

func TestReadInputExplicitEmptyText(t *testing.T) {
	data, source, err := readInput(strings.NewReader("ignored"), encodeOptions{textSet: true, sample: true})
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, "cli:text", source)
}

func TestReadInputSample(t *testing.T) {
	data, source, err := readInput(strings.NewReader("ignored"), encodeOptions{sample: true})
	require.NoError(t, err)
	assert.Equal(t, SampleText, string(data))
	assert.Equal(t, "cli:sample", source)
}

func TestBatch(t *testing.T) {
	useConfig(t)
	script := strings.Join([]string{
		"# codes for two inputs",
		"",
		`encode --text "aa b" --color never`,
		`--text zzzz --format json`,
	}, "\n")

	out, err := execute(t, BatchCmd, script, "-")
	require.NoError(t, err)
	assert.Contains(t, out, `==> encode --text "aa b" --color never`)
	assert.Contains(t, out, "Encoded size: 6 bits (1 bytes)")
	assert.Contains(t, out, `"encoded_bits": 4`)
}

func TestBatchStopsOnError(t *testing.T) {
	useConfig(t)

	out, err := execute(t, BatchCmd, "--text \"unterminated\n--text ok --color never\n", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.NotContains(t, out, "==> --text ok")
}

func TestBatchRecoversPanickingLine(t *testing.T) {
	useConfig(t)
	prev := lineCmd
	t.Cleanup(func() {
		lineCmd = prev
		keepGoing = false
	})
	lineCmd = func() *cobra.Command {
		c := EncodeCmd()
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] == "boom" {
				panic("line exploded")
			}
			return run(cmd, args)
		}
		return c
	}

	out, err := execute(t, BatchCmd, "boom\n--text zzzz --color never\n", "-k", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 batch line(s) failed")
	assert.Contains(t, out, "==> --text zzzz --color never")
	assert.Contains(t, out, "Encoded size: 4 bits (1 bytes)")
}

func TestToken(t *testing.T) {
	cfg := useConfig(t)
	cfg.JWTSecret = "cli-secret"

	out, err := execute(t, TokenCmd, "", "--subject", "ops", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := huff_rest.ParseToken([]byte("cli-secret"), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}
