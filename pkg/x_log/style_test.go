package x_log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStylesCheck(t *testing.T) {
	for _, name := range []string{"dark", "light", "unknown"} {
		styles := DefaultStylesByName(name)
		for _, lvl := range []zerolog.Level{zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel, zerolog.FatalLevel} {
			_, ok := styles.Levels[lvl]
			assert.True(t, ok, "%s: level %s", name, lvl)
		}
	}
}

func TestLogLevelMapping(t *testing.T) {
	keepLevel(t)
	InitWithConfig(&Config{Level: "error"}, "testModule")
	defer Close()
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestApplyDefaultConfig(t *testing.T) {
	assert.Equal(t, "logs/huff.log", defaultConfig.LogFile)
	assert.Equal(t, "dark", defaultConfig.Style)
	assert.Equal(t, 10, defaultConfig.MaxSize)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestConsoleWriterPlainForBuffers(t *testing.T) {
	keepLevel(t)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	var buf bytes.Buffer
	w := ConsoleWriterWithStyles(&Styles{Out: &buf, Levels: DefaultStylesDark().Levels})
	assert.True(t, w.NoColor)

	logger := zerolog.New(w)
	logger.Warn().Msg("plain")
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "WAR plain")

	forced := ConsoleWriterWithStyles(&Styles{Out: &buf, ForceColor: true})
	assert.False(t, forced.NoColor)
}

func TestLevelRestoredAfterInit(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Run("init", func(t *testing.T) {
		keepLevel(t)
		InitWithConfig(&Config{Level: "error"}, "")
		defer Close()
		assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	})
	assert.Equal(t, prev, zerolog.GlobalLevel())
}
