package logger

import (
	"testing"

	"video-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGet_BeforeInitialize(t *testing.T) {
	log = nil
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestInitialize_Levels(t *testing.T) {
	t.Cleanup(func() { log = nil })

	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			require.NoError(t, Initialize(config.LoggerConfig{Env: "production", Level: tt.level, Output: "stderr"}))
			assert.True(t, Get().Core().Enabled(tt.want))
			assert.False(t, Get().Core().Enabled(tt.want-1))
		})
	}
}
