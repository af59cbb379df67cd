package wave

import (
	"errors"
	"fmt"
)

// ErrRecordUnavailable is returned when a persisted wave record is missing or malformed.
var ErrRecordUnavailable = errors.New("wave record unavailable")

// Source supplies persisted wave records by index.
type Source interface {
	ReadWave(index int) (Wave, error)
}

// Sink receives wave records by index.
type Sink interface {
	WriteWave(index int, w Wave) error
}

// Store is a Source that can also be written back to.
type Store interface {
	Source
	Sink
}

// Set is a fixed-capacity collection of waves.
// It is not safe for concurrent use; the owner serialises access.
type Set struct {
	waves []Wave
}

// NewSet creates a set of n zero-valued waves.
func NewSet(n int) *Set {
	if n <= 0 {
		panic(fmt.Sprintf("wave: set capacity must be positive, got %d", n))
	}
	return &Set{waves: make([]Wave, n)}
}

// Len returns the number of waves in the set.
func (s *Set) Len() int {
	return len(s.waves)
}

// Get returns the wave at index i.
func (s *Set) Get(i int) Wave {
	s.check(i)
	return s.waves[i]
}

// Replace overwrites the wave at index i.
func (s *Set) Replace(i int, w Wave) {
	s.check(i)
	s.waves[i] = w
}

// SetField sets one field of wave i.
func (s *Set) SetField(i int, f Field, v float32) {
	s.check(i)
	s.waves[i] = s.waves[i].With(f, v)
}

// Adjust adds delta to one field of wave i and returns the new value.
func (s *Set) Adjust(i int, f Field, delta float32) float32 {
	s.check(i)
	v := s.waves[i].Value(f) + delta
	s.waves[i] = s.waves[i].With(f, v)
	return v
}

// Snapshot returns a copy of all waves.
func (s *Set) Snapshot() []Wave {
	out := make([]Wave, len(s.waves))
	copy(out, s.waves)
	return out
}

// All returns the backing slice for read-only iteration in hot loops.
func (s *Set) All() []Wave {
	return s.waves
}

// Load populates every wave from src. If any record fails the set is left
// untouched and the error wraps ErrRecordUnavailable.
func (s *Set) Load(src Source) error {
	loaded := make([]Wave, len(s.waves))
	for i := range loaded {
		w, err := src.ReadWave(i)
		if err != nil {
			if !errors.Is(err, ErrRecordUnavailable) {
				err = fmt.Errorf("%w: %w", ErrRecordUnavailable, err)
			}
			return fmt.Errorf("loading wave %d: %w", i+1, err)
		}
		loaded[i] = w
	}
	copy(s.waves, loaded)
	return nil
}

// Save writes every wave to dst. In-memory values are never modified.
func (s *Set) Save(dst Sink) error {
	for i, w := range s.waves {
		if err := dst.WriteWave(i, w); err != nil {
			return fmt.Errorf("saving wave %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Set) check(i int) {
	if i < 0 || i >= len(s.waves) {
		panic(fmt.Sprintf("wave: index %d out of range [0, %d)", i, len(s.waves)))
	}
}
