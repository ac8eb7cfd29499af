package logger

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			logger, err := New(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	logger.Info("session bootstrap started", "identity_id", "user-1")

	output := buf.String()
	assert.Contains(t, output, "session bootstrap started")
	assert.Contains(t, output, "identity_id")
	assert.Contains(t, output, "user-1")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "trace", wantErr: true},
	}

	for _, tt := range tests {
		level, err := parseLogLevel(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, level, tt.input)
	}
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		envValue string
		want     bool
	}{
		{"production", true},
		{"prod", true},
		{"PRODUCTION", true},
		{"development", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("GO_ENV="+tt.envValue, func(t *testing.T) {
			t.Setenv("GO_ENV", tt.envValue)
			assert.Equal(t, tt.want, isProduction())
		})
	}
}

func TestContextHelpers(t *testing.T) {
	tests := []struct {
		name  string
		log   func(*slog.Logger)
		wants []string
	}{
		{
			name:  "WithComponent",
			log:   func(l *slog.Logger) { WithComponent(l, "session_store").Info("replace") },
			wants: []string{"component", "session_store"},
		},
		{
			name:  "WithIdentity",
			log:   func(l *slog.Logger) { WithIdentity(l, "identity-456").Info("resolved") },
			wants: []string{"identity_id", "identity-456"},
		},
		{
			name: "WithRequest",
			log: func(l *slog.Logger) {
				WithRequest(l, "req-789", "GET", "/v1/user/profile").Info("served")
			},
			wants: []string{"request_id", "req-789", "method", "GET", "path", "/v1/user/profile"},
		},
		{
			name:  "DatabaseLogger",
			log:   func(l *slog.Logger) { DatabaseLogger(l).Info("profile query") },
			wants: []string{"component", "database"},
		},
		{
			name:  "IdentityServiceLogger",
			log:   func(l *slog.Logger) { IdentityServiceLogger(l).Info("token verified") },
			wants: []string{"component", "identity_service"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base, err := NewWithWriter("info", &buf)
			require.NoError(t, err)

			tt.log(base)

			for _, want := range tt.wants {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	LogError(logger, assert.AnError, "profile resolve failed", "role", "doctor")

	output := buf.String()
	assert.Contains(t, output, "profile resolve failed")
	assert.Contains(t, output, "error")
	assert.Contains(t, output, "role")
	assert.Contains(t, output, "doctor")
}

func TestLogDuration(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	start := time.Now().Add(-100 * time.Millisecond)
	LogDuration(logger, start, "bootstrap", "state", "authenticated")

	output := buf.String()
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "bootstrap")
	assert.Contains(t, output, "duration_ms")
	assert.Contains(t, output, "authenticated")
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		emit     func(*slog.Logger)
		want     bool
	}{
		{"debug shown at debug", "debug", func(l *slog.Logger) { l.Debug("m") }, true},
		{"debug hidden at info", "info", func(l *slog.Logger) { l.Debug("m") }, false},
		{"info shown at info", "info", func(l *slog.Logger) { l.Info("m") }, true},
		{"warn hidden at error", "error", func(l *slog.Logger) { l.Warn("m") }, false},
		{"error shown at error", "error", func(l *slog.Logger) { l.Error("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewWithWriter(tt.logLevel, &buf)
			require.NoError(t, err)

			tt.emit(logger)

			if tt.want {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
