package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]string{
		"trace":    "trace",
		"DEBUG":    "debug",
		"Info":     "info",
		"warning":  "warn",
		"error":    "error",
		"critical": "crit",
	} {
		lvl, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, LevelString(lvl))
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestTerminalHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandlerWithLevel(&buf, LevelInfo, false))

	l.Debug(TimingMonitoring, "hidden")
	l.Info(TimingMonitoring, "checkpoint", "name", "unroll_2", "note", "two words")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "INFO  ["), out)
	assert.Contains(t, out, "module=timing_mod")
	assert.Contains(t, out, "name=unroll_2")
	assert.Contains(t, out, `note="two words"`)
}

func TestTerminalHandlerMultiline(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandler(&buf, false))

	l.Info("", "---title---\n| a | b |\n")
	assert.Contains(t, buf.String(), "---title---\n| a | b |\n")
}

func TestModuleFiltering(t *testing.T) {
	var buf bytes.Buffer
	prev := Root()
	SetDefault(NewLogger(NewTerminalHandler(&buf, false)))
	defer SetDefault(prev)

	Debug(BenchMonitoring, "filtered")
	assert.Empty(t, buf.String())

	EnableModules(" bench_mod ,")
	defer DisableModule(BenchMonitoring)
	Debug(BenchMonitoring, "visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestCritExits(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	l := NewLogger(NewTerminalHandler(&buf, false))
	l.Crit(BenchMonitoring, "sum mismatch", "variant", "final")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "CRIT ")
	assert.Contains(t, buf.String(), "variant=final")
}
