package config

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.NumTrials)
	require.Equal(t, 1, cfg.NumThreads)
	require.Equal(t, 4, cfg.NumPlayers)
	require.Equal(t, "info", cfg.Strategy)
	require.False(t, cfg.SeedSet)
}

func TestParseSeedFlagIsHonored(t *testing.T) {
	cfg, err := Parse([]string{"-s", "42"}, io.Discard)
	require.NoError(t, err)
	require.True(t, cfg.SeedSet)
	require.Equal(t, int64(42), cfg.Seed)
}

func TestParseZeroThreadsAutoDetects(t *testing.T) {
	cfg, err := Parse([]string{"-t", "0"}, io.Discard)
	require.NoError(t, err)
	require.GreaterOrEqual(t, cfg.NumThreads, 1)
}

func TestParseRejectsOutOfRangePlayerCount(t *testing.T) {
	_, err := Parse([]string{"-p", "9"}, io.Discard)
	require.Error(t, err)
}

func TestParseRejectsUnknownStrategy(t *testing.T) {
	_, err := Parse([]string{"-g", "nonexistent"}, io.Discard)
	require.Error(t, err)
}

func TestParseAcceptsFullFlagSet(t *testing.T) {
	cfg, err := Parse([]string{
		"-n", "100", "-o", "10", "-j", "traces/%s.json", "-t", "4",
		"-s", "7", "-p", "3", "-g", "cheat", "-losses-only",
	}, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 100, cfg.NumTrials)
	require.Equal(t, 10, cfg.ProgressEvery)
	require.Equal(t, "traces/%s.json", cfg.JSONPattern)
	require.Equal(t, 4, cfg.NumThreads)
	require.Equal(t, int64(7), cfg.Seed)
	require.Equal(t, 3, cfg.NumPlayers)
	require.Equal(t, "cheat", cfg.Strategy)
	require.True(t, cfg.LossesOnly)
}
