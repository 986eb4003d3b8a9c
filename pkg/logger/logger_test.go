package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"Info console", Options{Level: "info"}, zapcore.InfoLevel, zapcore.DebugLevel},
		{"Debug json", Options{Level: "debug", Format: "json", Service: "duelhub"}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"Warn", Options{Level: "warn", Format: "console"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"Error", Options{Level: "error"}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(zap.ReplaceGlobals(zap.NewNop()))

			require.NoError(t, InitLogger(tt.opts))
			assert.True(t, zap.L().Core().Enabled(tt.enabled))
			assert.False(t, zap.L().Core().Enabled(tt.muted))
		})
	}
}

func TestInitLogger_Rejects(t *testing.T) {
	assert.Error(t, InitLogger(Options{Level: "verbose"}))
	assert.Error(t, InitLogger(Options{Level: "info", Format: "xml"}))
}
