package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "json", Output: &buf})

	log.Info(context.Background(), "dropped")
	log.Warn(context.Background(), "kept", Int("node_id", 3), Err(errors.New("boom")))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "info must be filtered at warn level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	require.Equal(t, "kept", rec["msg"])
	require.Equal(t, "WARN", rec["level"])
	require.EqualValues(t, 3, rec["node_id"])
	require.Equal(t, "boom", rec["error"])
}

func TestWithRunLoggerReusesContextRunID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Format: "json", Output: &buf})

	ctx, log := WithRunLogger(context.Background(), base)
	id := RunIDFromContext(ctx)
	require.NotEmpty(t, id)

	again, _ := WithRunLogger(ctx, base)
	require.Equal(t, id, RunIDFromContext(again))

	log.Info(ctx, "hello")
	require.Contains(t, buf.String(), `"run_id":"`+id+`"`)
}

func TestContextLoggerRoundTrip(t *testing.T) {
	require.Nil(t, LoggerFromContext(context.Background()))

	ctx := ContextWithLogger(context.Background(), nil)
	require.NotNil(t, LoggerFromContext(ctx), "nil logger is replaced with Noop")

	Noop().With(String("k", "v")).Error(ctx, "ignored")
}

func TestRunLoggerCarriesScenario(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Format: "json", Output: &buf})

	ctx := ContextWithScenario(context.Background(), "f")
	ctx, log := WithRunLogger(ctx, base)
	log.Info(ctx, "run done")

	require.Equal(t, "f", ScenarioFromContext(ctx))
	require.Contains(t, buf.String(), `"scenario":"f"`)
}

func TestConfigFromEnvPrefersCBTCVariables(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CBTC_LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CBTC_LOG_FORMAT", "")

	cfg := ConfigFromEnv()
	require.Equal(t, "debug", cfg.Level)
	require.Equal(t, "json", cfg.Format)
}
