package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/swingyships/systems"
	"github.com/pthm-cable/swingyships/telemetry"
)

func TestPerfRowsFollowRegistryOrder(t *testing.T) {
	stats := telemetry.PerfStats{
		PhaseAvg: map[string]time.Duration{telemetry.PhaseStep: 3 * time.Millisecond},
		PhasePct: map[string]float64{telemetry.PhaseStep: 75},
	}
	rows := PerfRows(stats, systems.NewSystemRegistry())

	if assert.Len(t, rows, len(telemetry.Phases)) {
		assert.Equal(t, "Behavior", rows[0].Name)
		assert.Equal(t, "Physics Step", rows[1].Name)
		assert.Equal(t, 3*time.Millisecond, rows[1].Avg)
		assert.Equal(t, 75.0, rows[1].Pct)
		assert.Zero(t, rows[4].Pct)
	}
}
