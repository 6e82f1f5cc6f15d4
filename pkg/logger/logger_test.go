package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), "logger output should be valid JSON")
	return out
}

func TestNewWithWriter_StructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info().Str("account_id", "acct-1").Int64("stake", 150).Msg("wager placed")

	out := decodeLine(t, &buf)
	assert.Equal(t, "wager placed", out["message"])
	assert.Equal(t, "acct-1", out["account_id"])
	assert.EqualValues(t, 150, out["stake"])
	assert.Equal(t, "info", out["level"])
	assert.Contains(t, out, "time")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"disabled", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)

	log.Warn().Msg("leg retry")
	assert.Empty(t, buf.String())

	log.Error().Msg("credit unconfirmed")
	assert.NotEmpty(t, buf.String())
}

func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	log := Component(NewWithWriter("info", &buf), "settlement")

	log.Info().Str("wager_id", "w-1").Msg("debit confirmed")

	out := decodeLine(t, &buf)
	assert.Equal(t, "settlement", out["component"])
	assert.Equal(t, "w-1", out["wager_id"])
}

func TestNew_TagsApp(t *testing.T) {
	log := New("warn", false)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}
