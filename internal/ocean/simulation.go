// Package ocean drives the per-frame wave simulation: clock, height field and mesh rebuild.
package ocean

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/oceanwaves/internal/clock"
	"github.com/Faultbox/oceanwaves/internal/heightfield"
	"github.com/Faultbox/oceanwaves/internal/surface"
	"github.com/Faultbox/oceanwaves/internal/wave"
)

// ErrInvalidSelection is returned when a wave number outside 1..N is selected.
var ErrInvalidSelection = errors.New("invalid wave selection")

// Modes are display flags owned by the simulation and read by renderers.
type Modes struct {
	Wireframe bool
	Solid     bool // solid colour instead of the water texture
}

// Frame is what a renderer receives once per tick. Mesh and Field are only
// valid for the duration of Submit.
type Frame struct {
	Number int
	Mesh   *surface.Mesh
	Field  *heightfield.Field
	Modes  Modes
}

// Renderer consumes a fully rebuilt frame.
type Renderer interface {
	Submit(f Frame) error
}

// Renderers fans a frame out to several renderers in order.
type Renderers []Renderer

// Submit passes f to every renderer, stopping at the first error.
func (rs Renderers) Submit(f Frame) error {
	for _, r := range rs {
		if err := r.Submit(f); err != nil {
			return err
		}
	}
	return nil
}

// Status is a snapshot of the currently selected wave for HUD display.
type Status struct {
	Selected int // 1-based
	Wave     wave.Wave
	Frame    int
	Modes    Modes
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for command and save events.
func WithLogger(log *zap.Logger) Option {
	return func(s *Simulation) {
		s.log = log
	}
}

// Simulation owns the wave parameters and all per-tick state.
// Tick, Apply, Select and Save may be called from different goroutines;
// a single mutex serialises them so waves never change mid-tick.
type Simulation struct {
	mu sync.Mutex

	cfg    Config
	store  wave.Store
	waves  *wave.Set
	clock  *clock.Clock
	field  *heightfield.Field
	mesher *surface.Mesher
	log    *zap.Logger

	selected int // 0-based
	modes    Modes
}

// New builds a simulation and loads the wave parameters from store.
func New(cfg Config, store wave.Store, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if store == nil {
		return nil, errors.New("wave store is required")
	}

	s := &Simulation{
		cfg:   cfg,
		store: store,
		waves: wave.NewSet(cfg.Waves),
		clock: clock.New(cfg.FrameCeiling),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	s.field, err = heightfield.New(cfg.GridSize)
	if err != nil {
		return nil, err
	}
	s.mesher, err = surface.NewMesher(cfg.Resolution, cfg.GridSize, cfg.TimeStep,
		surface.WithWorkers(cfg.MeshWorkers))
	if err != nil {
		return nil, err
	}

	if err := s.waves.Load(store); err != nil {
		return nil, err
	}

	s.log.Info("simulation ready",
		zap.Int("waves", cfg.Waves),
		zap.Int("resolution", cfg.Resolution),
		zap.Int("grid", cfg.GridSize),
		zap.Float32("dt", cfg.TimeStep),
		zap.Int("workers", cfg.MeshWorkers),
	)
	return s, nil
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Tick advances one frame: clock, height field, mesh, then hand-off to r.
// r may be nil when only the simulation state is wanted.
func (s *Simulation) Tick(r Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := s.clock.Tick()
	s.field.Recompute(s.waves, frame, s.cfg.TimeStep)
	mesh := s.mesher.Rebuild(s.field)

	if r == nil {
		return nil
	}
	return r.Submit(Frame{
		Number: frame,
		Mesh:   mesh,
		Field:  s.field,
		Modes:  s.modes,
	})
}

// Run ticks every interval until ctx is done or a tick fails.
func (s *Simulation) Run(ctx context.Context, interval time.Duration, r Renderer) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Tick(r); err != nil {
				return fmt.Errorf("tick: %w", err)
			}
		}
	}
}

// Select chooses the wave that parameter commands act on. n is 1-based.
func (s *Simulation) Select(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.waveIndex(n)
	if err != nil {
		return err
	}
	s.selected = i
	s.log.Debug("wave selected", zap.Int("wave", n))
	return nil
}

// Selected returns the 1-based selected wave number.
func (s *Simulation) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected + 1
}

// Apply executes a command against the selected wave or the display modes.
func (s *Simulation) Apply(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if field, sign, ok := cmd.adjustment(); ok {
		v := s.waves.Adjust(s.selected, field, sign*s.cfg.AdjustStep)
		s.log.Debug("wave adjusted",
			zap.Int("wave", s.selected+1),
			zap.Stringer("field", field),
			zap.Float32("value", v),
		)
		return nil
	}

	switch cmd {
	case CmdNone:
	case CmdWireframeOn:
		s.modes.Wireframe = true
	case CmdWireframeOff:
		s.modes.Wireframe = false
	case CmdSolid:
		s.modes.Solid = true
	case CmdTextured:
		s.modes.Solid = false
	case CmdSave:
		return s.saveLocked()
	default:
		return fmt.Errorf("unsupported command %s", cmd)
	}
	return nil
}

// Save writes the current wave parameters to the store.
func (s *Simulation) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Simulation) saveLocked() error {
	if err := s.waves.Save(s.store); err != nil {
		s.log.Error("saving waves failed", zap.Error(err))
		return err
	}
	s.log.Info("waves saved", zap.Int("count", s.waves.Len()))
	return nil
}

// Waves returns a copy of all wave parameters.
func (s *Simulation) Waves() []wave.Wave {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waves.Snapshot()
}

// SetWave sets one field of wave n (1-based).
func (s *Simulation) SetWave(n int, field wave.Field, value float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.waveIndex(n)
	if err != nil {
		return err
	}
	s.waves.SetField(i, field, value)
	return nil
}

// waveIndex converts a 1-based wave number from outside into a set index.
func (s *Simulation) waveIndex(n int) (int, error) {
	if n < 1 || n > s.waves.Len() {
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidSelection, n, s.waves.Len())
	}
	return n - 1, nil
}

// Status returns the selected wave, frame and modes.
func (s *Simulation) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Selected: s.selected + 1,
		Wave:     s.waves.Get(s.selected),
		Frame:    s.clock.Frame(),
		Modes:    s.modes,
	}
}
