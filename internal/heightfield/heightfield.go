// Package heightfield computes the ocean surface heights by summing sine waves over a grid.
package heightfield

import (
	"fmt"
	"math"

	"github.com/Faultbox/oceanwaves/internal/wave"
)

// DefaultSize is the side length of the backing grid.
const DefaultSize = 64

// DefaultTimeStep scales both the sine argument and the mesh UVs.
const DefaultTimeStep = 0.015

// Field is a square grid of heights sampled at integer coordinates.
// Heights are stored row-major: index z*size + x.
type Field struct {
	size    int
	heights []float32
}

// New allocates a size×size field.
func New(size int) (*Field, error) {
	if size < 2 {
		return nil, fmt.Errorf("height field size must be at least 2, got %d", size)
	}
	return &Field{
		size:    size,
		heights: make([]float32, size*size),
	}, nil
}

// Size returns the side length of the grid.
func (f *Field) Size() int {
	return f.size
}

// At returns the height at grid coordinates (x, z).
func (f *Field) At(x, z int) float32 {
	return f.heights[z*f.size+x]
}

// Heights returns the backing slice. Callers must not modify it.
func (f *Field) Heights() []float32 {
	return f.heights
}

// Range returns the lowest and highest height in the field.
func (f *Field) Range() (lo, hi float32) {
	lo, hi = f.heights[0], f.heights[0]
	for _, h := range f.heights[1:] {
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	return lo, hi
}

// Recompute overwrites every cell with the summed wave height for frame.
func (f *Field) Recompute(waves *wave.Set, frame int, dt float32) {
	all := waves.All()
	for z := 0; z < f.size; z++ {
		row := f.heights[z*f.size : (z+1)*f.size]
		for x := range row {
			row[x] = WaveHeight(all, x, z, frame, dt)
		}
	}
}

// WaveHeight sums the contribution of every wave at (x, z).
func WaveHeight(waves []wave.Wave, x, z, frame int, dt float32) float32 {
	var h float32
	for _, w := range waves {
		h += Contribution(w, x, z, frame, dt)
	}
	return h
}

// Contribution returns the height of a single wave at (x, z).
//
// The wave's Direction is treated as the centre of a circular wavefront:
// theta is the distance from that point, so the result is a ripple
// spreading from (Direction.X, Direction.Y) rather than a planar wave.
func Contribution(w wave.Wave, x, z, frame int, dt float32) float32 {
	dx := float64(x) - float64(w.Direction.X())
	dz := float64(z) - float64(w.Direction.Y())
	theta := math.Sqrt(dx*dx + dz*dz)

	arg := (float64(w.Frequency)*theta - float64(frame)*float64(w.Phase)) * float64(dt)
	return w.Amplitude * float32(math.Sin(arg))
}
