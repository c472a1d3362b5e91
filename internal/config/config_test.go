package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 100, cfg.Bench.Iterations)
	assert.Equal(t, []int{1, 10, 100, 1000}, cfg.Bench.Widths)
	assert.Equal(t, []int{1, 10, 100}, cfg.Bench.Heights)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CROSSLINK_LOG_LEVEL", "debug")
	t.Setenv("CROSSLINK_LOG_FORMAT", "json")
	t.Setenv("CROSSLINK_BENCH_ITERATIONS", "7")
	t.Setenv("CROSSLINK_BENCH_WIDTHS", "2,4")
	t.Setenv("CROSSLINK_BENCH_HEIGHTS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 7, cfg.Bench.Iterations)
	assert.Equal(t, []int{2, 4}, cfg.Bench.Widths)
	assert.Equal(t, []int{3}, cfg.Bench.Heights)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, env := range map[string][2]string{
		"level":      {"CROSSLINK_LOG_LEVEL", "loud"},
		"format":     {"CROSSLINK_LOG_FORMAT", "xml"},
		"iterations": {"CROSSLINK_BENCH_ITERATIONS", "0"},
		"width":      {"CROSSLINK_BENCH_WIDTHS", "1,-1"},
		"parse":      {"CROSSLINK_BENCH_HEIGHTS", "tall"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
