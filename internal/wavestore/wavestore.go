// Package wavestore persists wave parameters as one small text file per wave.
package wavestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/Faultbox/oceanwaves/internal/wave"
)

// DefaultDir is the directory wave files live in when none is configured.
const DefaultDir = "config"

// Dir stores wave i in <Path>/<i+1>.txt.
type Dir struct {
	Path string
}

// NewDir returns a store rooted at path.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

// FilePath returns the file backing wave index i.
func (d *Dir) FilePath(index int) string {
	return filepath.Join(d.Path, strconv.Itoa(index+1)+".txt")
}

// ReadWave reads the record for wave index i.
func (d *Dir) ReadWave(index int) (wave.Wave, error) {
	path := d.FilePath(index)
	f, err := os.Open(path)
	if err != nil {
		return wave.Wave{}, fmt.Errorf("%w: %w", wave.ErrRecordUnavailable, err)
	}
	defer f.Close()

	w, err := wave.ReadRecord(f)
	if err != nil {
		return wave.Wave{}, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// WriteWave overwrites the record for wave index i.
func (d *Dir) WriteWave(index int, w wave.Wave) error {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return err
	}

	f, err := os.Create(d.FilePath(index))
	if err != nil {
		return err
	}
	if err := wave.WriteRecord(f, w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Memory is an in-process store, used by tools and tests.
type Memory struct {
	mu    sync.Mutex
	waves map[int]wave.Wave
}

// NewMemory returns a store pre-populated with waves.
func NewMemory(waves ...wave.Wave) *Memory {
	m := &Memory{waves: make(map[int]wave.Wave, len(waves))}
	for i, w := range waves {
		m.waves[i] = w
	}
	return m
}

// ReadWave returns the stored wave or an ErrRecordUnavailable error.
func (m *Memory) ReadWave(index int) (wave.Wave, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.waves[index]
	if !ok {
		return wave.Wave{}, fmt.Errorf("%w: no record for wave %d", wave.ErrRecordUnavailable, index+1)
	}
	return w, nil
}

// WriteWave stores w at index.
func (m *Memory) WriteWave(index int, w wave.Wave) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waves[index] = w
	return nil
}
