// Package viewer runs the interactive ocean window: input, simulation tick,
// GL draw and buffer swap, once per frame.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/oceanwaves/internal/engine/input"
	"github.com/Faultbox/oceanwaves/internal/engine/renderer"
	"github.com/Faultbox/oceanwaves/internal/engine/screenshot"
	"github.com/Faultbox/oceanwaves/internal/engine/window"
	"github.com/Faultbox/oceanwaves/internal/ocean"
)

// Config holds viewer configuration.
type Config struct {
	Title         string
	Width         int
	Height        int
	Fullscreen    bool
	VSync         bool
	TexturePath   string
	SolidColor    [3]float32
	ClearColor    [3]float32
	ScreenshotDir string
}

// Viewer owns the window and GL renderer for one simulation.
type Viewer struct {
	config   Config
	log      *zap.Logger
	sim      *ocean.Simulation
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *screenshot.Capture

	// Extra renderers fed after the GL renderer, e.g. the websocket stream.
	extra ocean.Renderers

	lastStatus ocean.Status
	wantShot   bool
}

// New opens the window and creates the renderer.
func New(cfg Config, sim *ocean.Simulation, log *zap.Logger, extra ...ocean.Renderer) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		config: cfg,
		log:    log,
		sim:    sim,
		input:  input.New(nil),
		shots:  screenshot.New(cfg.ScreenshotDir, "ocean"),
		extra:  extra,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after window: the GL context must exist.
	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:       width,
		Height:      height,
		ClearColor:  cfg.ClearColor,
		SolidColor:  cfg.SolidColor,
		TexturePath: cfg.TexturePath,
	}, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// Without a texture the textured mode would look identical to solid.
	if !v.renderer.HasTexture() {
		_ = sim.Apply(ocean.CmdSolid)
	}

	log.Info("viewer initialized")
	return v, nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	frames := 0
	fpsTimer := time.Now()
	sinks := append(ocean.Renderers{v.renderer}, v.extra...)

	v.log.Info("starting frame loop")
	for {
		quit, err := v.handleInput()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		if err := v.sim.Tick(sinks); err != nil {
			return fmt.Errorf("tick: %w", err)
		}
		if v.wantShot {
			v.wantShot = false
			v.capture()
		}
		v.window.SwapBuffers()
		v.updateStatus()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
}

// handleInput applies this frame's actions. Selection errors are logged and
// ignored; they cannot occur from the 1-9 keys unless fewer waves exist.
func (v *Viewer) handleInput() (quit bool, err error) {
	for _, a := range v.input.Poll() {
		switch a.Kind {
		case input.Quit:
			return true, nil
		case input.Resize:
			v.renderer.Resize(a.Width, a.Height)
		case input.Screenshot:
			v.wantShot = true
		case input.SelectWave:
			if err := v.sim.Select(a.Wave); err != nil {
				if !errors.Is(err, ocean.ErrInvalidSelection) {
					return false, err
				}
				v.log.Debug("selection ignored", zap.Int("wave", a.Wave), zap.Error(err))
			}
		case input.Command:
			// Save failures are already logged by the simulation; keep running.
			if err := v.sim.Apply(a.Command); err != nil && a.Command != ocean.CmdSave {
				return false, err
			}
		}
	}
	return false, nil
}

// capture saves the frame just drawn, before the buffers swap.
func (v *Viewer) capture() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.SavePixels(pixels, w, h, v.sim.Status().Frame)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// updateStatus refreshes the window title when the selected wave changes.
func (v *Viewer) updateStatus() {
	st := v.sim.Status()
	if st.Selected == v.lastStatus.Selected && st.Wave == v.lastStatus.Wave && st.Modes == v.lastStatus.Modes {
		return
	}
	v.lastStatus = st
	v.window.SetTitle(Title(v.config.Title, st))
	v.log.Debug("selected wave",
		zap.Int("wave", st.Selected),
		zap.Float32("amplitude", st.Wave.Amplitude),
		zap.Float32("dir_x", st.Wave.Direction.X()),
		zap.Float32("dir_y", st.Wave.Direction.Y()),
		zap.Float32("frequency", st.Wave.Frequency),
		zap.Float32("phase", st.Wave.Phase),
	)
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
