package core

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	tests := []struct {
		name     string
		level    VerboseLevel
		expected string
	}{
		{"off", VerboseOff, "warning: careful\n"},
		{"info", VerboseInfo, "warning: careful\ninfo\n"},
		{"debug", VerboseDebug, "warning: careful\ninfo\ndebug 1\n"},
		{"trace", VerboseTrace, "warning: careful\ninfo\ndebug 1\ntrace\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			logger := NewLogger().SetOutput(&out).SetFlags(0).SetVerboseLevel(tt.level)
			logger.Warnf("careful")
			logger.Info("info")
			logger.Debugf("debug %d", 1)
			logger.Trace("trace")
			assert.Equal(t, tt.expected, out.String())
		})
	}
}
