// Package config handles ocean viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/oceanwaves/internal/engine/screenshot"
	"github.com/Faultbox/oceanwaves/internal/engine/texture"
	"github.com/Faultbox/oceanwaves/internal/ocean"
	"github.com/Faultbox/oceanwaves/internal/wavestore"
)

// Config holds all application settings.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Stream     StreamConfig     `yaml:"stream"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig holds the wave model and mesh settings.
type SimulationConfig struct {
	Waves        int     `yaml:"waves"`
	Resolution   int     `yaml:"resolution"`  // Quads per side
	GridSize     int     `yaml:"grid_size"`   // Height samples per side
	TimeStep     float32 `yaml:"time_step"`
	FrameCeiling int     `yaml:"frame_ceiling"`
	AdjustStep   float32 `yaml:"adjust_step"`
	MeshWorkers  int     `yaml:"mesh_workers"`
	WaveDir      string  `yaml:"wave_dir"` // Directory of per-wave text files
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int        `yaml:"width"`
	Height        int        `yaml:"height"`
	Fullscreen    bool       `yaml:"fullscreen"`
	VSync         bool       `yaml:"vsync"`
	Texture       string     `yaml:"texture"`
	SolidColor    [3]float32 `yaml:"solid_color"`
	ClearColor    [3]float32 `yaml:"clear_color"`
	ScreenshotDir string     `yaml:"screenshot_dir"`
}

// StreamConfig holds the websocket height stream settings.
type StreamConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
	Every   int    `yaml:"every"` // Send every Nth frame
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	sim := ocean.DefaultConfig()
	return &Config{
		Simulation: SimulationConfig{
			Waves:        sim.Waves,
			Resolution:   sim.Resolution,
			GridSize:     sim.GridSize,
			TimeStep:     sim.TimeStep,
			FrameCeiling: sim.FrameCeiling,
			AdjustStep:   sim.AdjustStep,
			MeshWorkers:  0,
			WaveDir:      wavestore.DefaultDir,
		},
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			Texture:       texture.DefaultWaterPath,
			SolidColor:    [3]float32{0, 0.5, 1},
			ClearColor:    [3]float32{0, 0, 0},
			ScreenshotDir: screenshot.DefaultDir,
		},
		Stream: StreamConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8080",
			Path:    "/ws",
			Every:   2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// OceanConfig converts the simulation section to an ocean.Config.
func (c *Config) OceanConfig() ocean.Config {
	s := c.Simulation
	return ocean.Config{
		Waves:        s.Waves,
		Resolution:   s.Resolution,
		GridSize:     s.GridSize,
		TimeStep:     s.TimeStep,
		FrameCeiling: s.FrameCeiling,
		AdjustStep:   s.AdjustStep,
		MeshWorkers:  s.MeshWorkers,
	}
}
