package logutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBackendAcceptsEveryStandardLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error", "critical", "off"} {
		var buf bytes.Buffer
		b, err := NewBackend(&buf, Config{DebugLevel: level})
		require.NoError(t, err)
		require.NotNil(t, b.Logger("TEST"))
	}
}

func TestNewBackendRejectsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewBackend(&buf, Config{DebugLevel: "not-a-level"})
	require.Error(t, err)
}

func TestLoggerWritesAtOrAboveItsLevel(t *testing.T) {
	var buf bytes.Buffer
	b, err := NewBackend(&buf, Config{DebugLevel: "warn"})
	require.NoError(t, err)
	log := b.Logger("TEST")

	log.Debugf("should not appear")
	log.Warnf("should appear")
	require.NotContains(t, buf.String(), "should not appear")
	require.Contains(t, buf.String(), "should appear")
}

func TestLoggerTagsEverySubsystemIndependently(t *testing.T) {
	var buf bytes.Buffer
	b, err := NewBackend(&buf, Config{DebugLevel: "info"})
	require.NoError(t, err)

	simLog := b.Logger("SIM")
	stratLog := b.Logger("STRAT")

	simLog.Infof("from sim")
	stratLog.Infof("from strat")
	require.Contains(t, buf.String(), "SIM")
	require.Contains(t, buf.String(), "STRAT")
}
