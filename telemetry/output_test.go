package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/swingyships/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	// Every method is a no-op on nil.
	assert.NoError(t, om.WriteTelemetry(WindowStats{}))
	assert.NoError(t, om.WriteImpacts([]ImpactRecord{{Tick: 1}}))
	assert.NoError(t, om.Close())
	assert.Equal(t, "", om.Dir())
}

func TestOutputManagerWritesHeadersOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	require.NoError(t, om.WriteImpacts([]ImpactRecord{NewImpactRecord(5, 1, 2, 600)}))
	require.NoError(t, om.WriteImpacts([]ImpactRecord{NewImpactRecord(9, 3, 4, 700)}))
	require.NoError(t, om.WriteTelemetry(WindowStats{WindowEndTick: 600, Impacts: 2}))
	require.NoError(t, om.WritePerf(PerfStats{PhasePct: map[string]float64{}}, 600))

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))
	require.NoError(t, om.Close())

	data, err := os.ReadFile(filepath.Join(dir, "impacts.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "tick,x,y,impulse", lines[0])
	assert.Equal(t, "9,3,4,700", lines[2])

	data, err = os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "window_end,sim_time,impacts"))

	assert.FileExists(t, filepath.Join(dir, "perf.csv"))
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
}
