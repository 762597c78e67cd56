package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_NotNil verifies that NewLogger returns a non-nil *Logger.
func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	require.NotNil(t, l)
}

// TestNewWithWriter_RoleField verifies that every log entry produced by the
// logger contains the expected "role" field.
func TestNewWithWriter_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test-role", &buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
}

// TestNewWithWriter_ContainsTimestamp verifies that log entries contain a
// timestamp field.
func TestNewWithWriter_ContainsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("ts-role", &buf)

	l.Info().Msg("ts check")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNewWithWriter_CallerFieldName verifies that the caller field is named "func".
func TestNewWithWriter_CallerFieldName(t *testing.T) {
	NewWithWriter("caller-role", &bytes.Buffer{}) // sets zerolog.CallerFieldName as a side-effect
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestSetGlobalLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "info", level: "info", want: zerolog.InfoLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "error", level: "error", want: zerolog.ErrorLevel},
		{name: "empty keeps current", level: "", want: zerolog.ErrorLevel},
		{name: "unknown level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetGlobalLevel(tt.level)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}

	// restore for other tests
	require.NoError(t, SetGlobalLevel("debug"))
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

// TestGetChildLogger_InheritsFields verifies that the child logger inherits
// context fields (e.g. "role") from the parent.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithWriter("inherited-role", &buf)

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)

	child.Info().Msg("child message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "inherited-role", entry["role"])
}

// TestWithContext_RoundTrip verifies that a logger attached via WithContext is
// returned by FromContext with its fields intact.
func TestWithContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("ctx-role", &buf)

	ctx := l.WithContext(context.Background())
	got := FromContext(ctx)
	require.NotNil(t, got)

	got.Info().Msg("round trip")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ctx-role", entry["role"])
}

// TestFromContext_NotNil verifies that FromContext never returns nil, even
// when no logger has been explicitly attached to the context.
func TestFromContext_NotNil(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
}

// TestFromRequest_ReturnsAttachedLogger verifies that FromRequest returns the
// logger attached to the request's context.
func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()
	ctx := zl.WithContext(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ctx)

	l := FromRequest(req)
	require.NotNil(t, l)

	l.Info().Msg("from request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-value", entry["req-key"])
}
