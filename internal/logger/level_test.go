package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected string
	}{
		{name: "empty string defaults to info", level: "", expected: "info"},
		{name: "unknown level defaults to info", level: "verbose", expected: "info"},
		{name: "uppercase level normalized", level: "DEBUG", expected: "debug"},
		{name: "mixed case normalized", level: "WaRn", expected: "warn"},
		{name: "surrounding whitespace", level: " error ", expected: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeLogLevel(tt.level))
		})
	}
}

func TestLogLevelOrdering(t *testing.T) {
	levels := []string{"trace", "debug", "info", "warn", "error"}
	for i := 1; i < len(levels); i++ {
		assert.Less(t, logLevelToInt(levels[i-1]), logLevelToInt(levels[i]))
	}
	assert.Equal(t, levelInfo, logLevelToInt("bogus"))
}

func TestLevelFilteringBothLoggers(t *testing.T) {
	emit := func(l Logger) {
		l.LogTrace("trace message")
		l.LogDebug("debug message")
		l.LogInfo("info message")
		l.LogWarn("warn message")
		l.LogError("error message")
	}

	var buf bytes.Buffer
	console := NewConsoleLogger(&buf, "warn")

	fileLog, err := NewFileLogger(t.TempDir(), "warn")
	require.NoError(t, err)

	emit(NewMultiLogger(console, fileLog))
	require.NoError(t, fileLog.Close())

	data, err := os.ReadFile(fileLog.Path())
	require.NoError(t, err)

	for _, out := range []string{buf.String(), string(data)} {
		assert.NotContains(t, out, "trace message")
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.Contains(t, out, "[WARN] warn message")
		assert.Contains(t, out, "[ERROR] error message")
	}
}
