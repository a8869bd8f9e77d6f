// Package systems contains the per-tick systems that run over the registry.
package systems

import "github.com/pthm-cable/swingyships/telemetry"

// SystemInfo describes one phase of the tick for perf tracking and display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "input", "physics", "visual")
}

// SystemRegistry holds metadata about all tick phases.
// This centralizes naming so the perf tracker and logs stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the phases in the order they run.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseBehavior, Name: "Behavior", Description: "Applies player and chaser forces", Category: "input"})
	r.Register(SystemInfo{ID: telemetry.PhaseStep, Name: "Physics Step", Description: "Advances the rigid-body world", Category: "physics"})
	r.Register(SystemInfo{ID: telemetry.PhaseImpacts, Name: "Impacts", Description: "Drains impact events from contacts", Category: "physics"})
	r.Register(SystemInfo{ID: telemetry.PhaseEffects, Name: "Effects", Description: "Spawns and reaps impact effects", Category: "visual"})
	r.Register(SystemInfo{ID: telemetry.PhaseSync, Name: "Sync", Description: "Copies body transforms to sprites", Category: "visual"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
