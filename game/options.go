package game

import (
	"go.uber.org/zap"

	"github.com/pthm-cable/swingyships/config"
	"github.com/pthm-cable/swingyships/rig"
)

// Options configures a new game.
type Options struct {
	// Config is the loaded configuration. Nil uses the embedded defaults.
	Config *config.Config
	// Level is the parsed level file. A zero value loads the embedded default.
	Level *rig.LevelFile
	// OutputDir enables CSV output when non-empty.
	OutputDir string
	// Headless skips the camera, renderer and audio.
	Headless bool
	// LogStats logs window and perf stats at every flush.
	LogStats bool
	Logger   *zap.Logger
}
