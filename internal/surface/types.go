// Package surface rebuilds the renderable ocean mesh from a height field.
package surface

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultResolution is the number of quads along each side of the mesh.
const DefaultResolution = 60

// Per-quad topology.
const (
	VerticesPerQuad = 4
	IndicesPerQuad  = 6
)

// Vertex is one mesh corner laid out for direct GPU upload.
type Vertex struct {
	Position mgl32.Vec4 // x, height, z, 1
	Normal   mgl32.Vec3 // per-corner flat normal, -Y when level, not normalized
	UV       mgl32.Vec2
}

// Vertex attribute layout in bytes.
var (
	VertexStride   = int32(unsafe.Sizeof(Vertex{}))
	PositionOffset = uintptr(unsafe.Offsetof(Vertex{}.Position))
	NormalOffset   = uintptr(unsafe.Offsetof(Vertex{}.Normal))
	UVOffset       = uintptr(unsafe.Offsetof(Vertex{}.UV))
)

// Mesh holds the vertex and index buffers for one frame.
type Mesh struct {
	Resolution int // quads per side
	Vertices   []Vertex
	Indices    []uint32
}

// QuadCount returns the number of quads in the mesh.
func (m *Mesh) QuadCount() int {
	return len(m.Vertices) / VerticesPerQuad
}

// Quad returns the four vertices of quad k.
func (m *Mesh) Quad(k int) []Vertex {
	return m.Vertices[k*VerticesPerQuad : (k+1)*VerticesPerQuad]
}
