package ocean

import (
	"fmt"

	"github.com/Faultbox/oceanwaves/internal/clock"
	"github.com/Faultbox/oceanwaves/internal/heightfield"
	"github.com/Faultbox/oceanwaves/internal/surface"
	"github.com/Faultbox/oceanwaves/internal/wave"
)

// DefaultAdjustStep is how far one key press moves a wave parameter.
const DefaultAdjustStep = 0.5

// Config holds construction-time simulation settings.
type Config struct {
	Waves        int     // Number of sine waves
	Resolution   int     // Quads per mesh side
	GridSize     int     // Height field samples per side
	TimeStep     float32 // Scales the sine argument and UVs
	FrameCeiling int     // Frame counter wraps after this value
	AdjustStep   float32 // Parameter delta per command
	MeshWorkers  int     // Goroutines per mesh rebuild (<=1 is serial)
}

// DefaultConfig returns the standard 8-wave, 60×60 quad setup.
func DefaultConfig() Config {
	return Config{
		Waves:        wave.DefaultCount,
		Resolution:   surface.DefaultResolution,
		GridSize:     heightfield.DefaultSize,
		TimeStep:     heightfield.DefaultTimeStep,
		FrameCeiling: clock.DefaultCeiling,
		AdjustStep:   DefaultAdjustStep,
	}
}

// Validate rejects configurations that cannot be built.
func (c Config) Validate() error {
	if c.Waves < 1 {
		return fmt.Errorf("waves must be at least 1, got %d", c.Waves)
	}
	if c.Resolution < 1 || c.GridSize < c.Resolution+1 {
		return fmt.Errorf("%w: resolution %d, grid size %d", surface.ErrGridMismatch, c.Resolution, c.GridSize)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("time step must be positive, got %g", c.TimeStep)
	}
	if c.FrameCeiling < 1 {
		return fmt.Errorf("frame ceiling must be positive, got %d", c.FrameCeiling)
	}
	return nil
}
