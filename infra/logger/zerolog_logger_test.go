package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLogger_StructuredFields(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)
	require.NoError(t, SetLevel("debug"))

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "simulator")
	l.Debugw("dispatch hour", map[string]any{"hour": 3, "action": "battery only"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "simulator", entry["component"])
	assert.Equal(t, "battery only", entry["action"])
	assert.Equal(t, float64(3), entry["hour"])
	assert.Equal(t, "debug", entry["level"])
}

func TestSetLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	require.NoError(t, SetLevel("warn"))
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "x")
	l.Infof("hidden")
	assert.Empty(t, buf.String())

	assert.Error(t, SetLevel("loud"))
	assert.NoError(t, SetLevel(""))
}
