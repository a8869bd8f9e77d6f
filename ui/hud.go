package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swingyships/systems"
	"github.com/pthm-cable/swingyships/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Tick     int64
	FPS      int32
	Objects  int
	Effects  int
	Joints   int
	Paused   bool
	Captured bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Objects: %d | Effects: %d | Joints: %d", data.Objects, data.Effects, data.Joints),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS), 10, 55, 16, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, captured bool) {
	controls := "Click/Tab: capture pointer | Space: pause | Arrows/wheel: camera | F: follow | Home: reset"
	if captured {
		controls = "Move the pointer to steer | Tab/Esc: release | Space: pause"
	}
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfRow is one line of the performance panel.
type PerfRow struct {
	Name string
	Avg  time.Duration
	Pct  float64
}

// PerfRows lists phases in registry order with their average time and share.
func PerfRows(stats telemetry.PerfStats, reg *systems.SystemRegistry) []PerfRow {
	rows := make([]PerfRow, 0, len(reg.IDs()))
	for _, id := range reg.IDs() {
		rows = append(rows, PerfRow{
			Name: reg.GetName(id),
			Avg:  stats.PhaseAvg[id],
			Pct:  stats.PhasePct[id],
		})
	}
	return rows
}

// PerfPanel renders the phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, reg *systems.SystemRegistry) {
	r := p.renderer
	rows := PerfRows(stats, reg)
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight*int32(len(rows)+2) + 4

	r.DrawPanel(p.x, p.y, p.width, height)
	y := r.DrawSectionHeader(p.x+pad, p.y+pad, "Tick Phases")
	y = r.DrawLabelValue(p.x+pad, y, "Tick", fmt.Sprintf("%s (%.0f TPS)",
		stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond))

	for _, row := range rows {
		fill := r.Theme.BarFill
		if row.Pct > 50 {
			fill = r.Theme.HotColor
		} else if row.Pct > 25 {
			fill = r.Theme.WarnColor
		}
		y = r.DrawBar(p.x+pad, y, row.Name, float32(row.Pct/100), p.width-2*pad, fill)
	}
}
