package surface

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/oceanwaves/internal/heightfield"
)

// ErrGridMismatch is returned when the height field cannot cover the mesh.
var ErrGridMismatch = errors.New("height field does not match mesh resolution")

// Option configures a Mesher.
type Option func(*Mesher)

// WithWorkers splits each rebuild across n goroutines. n <= 1 rebuilds serially.
func WithWorkers(n int) Option {
	return func(m *Mesher) {
		m.workers = n
	}
}

// Mesher turns a height field into a quad grid mesh.
// Every Rebuild overwrites every vertex and index; the returned mesh shares
// the mesher's buffers and stays valid until the next Rebuild.
type Mesher struct {
	resolution int
	fieldSize  int
	dt         float32
	workers    int
	mesh       Mesh
}

// NewMesher creates a mesher for a resolution×resolution quad grid sampled
// from a fieldSize×fieldSize height field.
func NewMesher(resolution, fieldSize int, dt float32, opts ...Option) (*Mesher, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: resolution %d", ErrGridMismatch, resolution)
	}
	if fieldSize < resolution+1 {
		return nil, fmt.Errorf("%w: %d quads need a grid of at least %d, got %d",
			ErrGridMismatch, resolution, resolution+1, fieldSize)
	}

	m := &Mesher{
		resolution: resolution,
		fieldSize:  fieldSize,
		dt:         dt,
	}
	for _, opt := range opts {
		opt(m)
	}

	quads := resolution * resolution
	m.mesh.Resolution = resolution
	m.mesh.Vertices = make([]Vertex, quads*VerticesPerQuad)
	m.mesh.Indices = make([]uint32, quads*IndicesPerQuad)
	return m, nil
}

// Resolution returns the number of quads per side.
func (m *Mesher) Resolution() int {
	return m.resolution
}

// Rebuild regenerates the whole mesh from f. f must be the size the mesher
// was constructed for; NewMesher is where sizes are validated, so a foreign
// field here is a programming error and panics.
func (m *Mesher) Rebuild(f *heightfield.Field) *Mesh {
	if f.Size() != m.fieldSize {
		panic(fmt.Sprintf("surface: field size %d, mesher built for %d", f.Size(), m.fieldSize))
	}

	if m.workers <= 1 {
		m.buildRows(f, 0, m.resolution)
		return &m.mesh
	}

	var wg sync.WaitGroup
	rowsPer := (m.resolution + m.workers - 1) / m.workers
	for start := 0; start < m.resolution; start += rowsPer {
		start := start
		end := min(start+rowsPer, m.resolution)
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.buildRows(f, start, end)
		}()
	}
	wg.Wait()
	return &m.mesh
}

// buildRows writes quads for z rows [from, to). Each row owns a disjoint
// range of the vertex and index buffers.
func (m *Mesher) buildRows(f *heightfield.Field, from, to int) {
	dt := m.dt
	for i := from; i < to; i++ {
		for j := 0; j < m.resolution; j++ {
			k := i*m.resolution + j
			x, z := float32(j), float32(i)

			v0 := mgl32.Vec4{x, f.At(j, i), z, 1}
			v1 := mgl32.Vec4{x, f.At(j, i+1), z + 1, 1}
			v2 := mgl32.Vec4{x + 1, f.At(j+1, i+1), z + 1, 1}
			v3 := mgl32.Vec4{x + 1, f.At(j+1, i), z, 1}

			// Vertices 1 and 3 carry each other's corner normal.
			base := uint32(k * VerticesPerQuad)
			verts := m.mesh.Vertices[base : base+VerticesPerQuad]
			verts[0] = Vertex{Position: v0, Normal: cornerNormal(v0, v1, v3), UV: mgl32.Vec2{x * dt, z * dt}}
			verts[1] = Vertex{Position: v1, Normal: cornerNormal(v3, v0, v2), UV: mgl32.Vec2{x * dt, z*dt + dt}}
			verts[2] = Vertex{Position: v2, Normal: cornerNormal(v2, v3, v1), UV: mgl32.Vec2{x*dt + dt, z*dt + dt}}
			verts[3] = Vertex{Position: v3, Normal: cornerNormal(v1, v2, v0), UV: mgl32.Vec2{x*dt + dt, z * dt}}

			idx := m.mesh.Indices[k*IndicesPerQuad : (k+1)*IndicesPerQuad]
			idx[0], idx[1], idx[2] = base, base+1, base+2
			idx[3], idx[4], idx[5] = base, base+2, base+3
		}
	}
}

// cornerNormal crosses the two quad edges leaving corner c, prev first.
// The corners wind v0→v1→v2→v3, so a level quad yields -Y at every corner;
// the vertex shader flips it to face the light.
func cornerNormal(c, next, prev mgl32.Vec4) mgl32.Vec3 {
	return prev.Sub(c).Vec3().Cross(next.Sub(c).Vec3())
}
