package surface

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/oceanwaves/internal/heightfield"
	"github.com/Faultbox/oceanwaves/internal/wave"
)

func newField(t *testing.T, size int, waves []wave.Wave, frame int) *heightfield.Field {
	t.Helper()
	f, err := heightfield.New(size)
	if err != nil {
		t.Fatal(err)
	}
	set := wave.NewSet(max(len(waves), 1))
	for i, w := range waves {
		set.Replace(i, w)
	}
	f.Recompute(set, frame, heightfield.DefaultTimeStep)
	return f
}

func TestNewMesherGridMismatch(t *testing.T) {
	tests := []struct {
		name       string
		resolution int
		fieldSize  int
	}{
		{"field too small", 60, 60},
		{"zero resolution", 0, 64},
		{"negative resolution", -3, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMesher(tt.resolution, tt.fieldSize, heightfield.DefaultTimeStep)
			if !errors.Is(err, ErrGridMismatch) {
				t.Errorf("expected ErrGridMismatch, got %v", err)
			}
		})
	}

	if _, err := NewMesher(60, 61, heightfield.DefaultTimeStep); err != nil {
		t.Errorf("expected 60 quads over 61 samples to be accepted, got %v", err)
	}
}

func TestRebuildCounts(t *testing.T) {
	for _, r := range []int{1, 3, DefaultResolution} {
		m, err := NewMesher(r, heightfield.DefaultSize, heightfield.DefaultTimeStep)
		if err != nil {
			t.Fatal(err)
		}
		mesh := m.Rebuild(newField(t, heightfield.DefaultSize, nil, 0))

		if len(mesh.Vertices) != 4*r*r {
			t.Errorf("R=%d: expected %d vertices, got %d", r, 4*r*r, len(mesh.Vertices))
		}
		if len(mesh.Indices) != 6*r*r {
			t.Errorf("R=%d: expected %d indices, got %d", r, 6*r*r, len(mesh.Indices))
		}
		if mesh.QuadCount() != r*r {
			t.Errorf("R=%d: expected %d quads, got %d", r, r*r, mesh.QuadCount())
		}
	}
}

func TestQuadIndicesReferenceOwnVertices(t *testing.T) {
	m, _ := NewMesher(5, 8, heightfield.DefaultTimeStep)
	mesh := m.Rebuild(newField(t, 8, nil, 0))

	for k := 0; k < mesh.QuadCount(); k++ {
		b := uint32(4 * k)
		got := mesh.Indices[6*k : 6*k+6]
		want := []uint32{b, b + 1, b + 2, b, b + 2, b + 3}
		for n := range want {
			if got[n] != want[n] {
				t.Fatalf("quad %d: indices %v, want %v", k, got, want)
			}
		}
	}
}

func TestRebuildPositionsAndUVs(t *testing.T) {
	waves := []wave.Wave{{Amplitude: 1, Direction: mgl32.Vec2{2, 1}, Frequency: 50, Phase: 1}}
	f := newField(t, 6, waves, 3)
	dt := float32(heightfield.DefaultTimeStep)
	m, _ := NewMesher(5, 6, dt)
	mesh := m.Rebuild(f)

	// Quad at x=j=2, z=i=3.
	j, i := 2, 3
	q := mesh.Quad(i*5 + j)
	x, z := float32(j), float32(i)

	wantPos := []mgl32.Vec4{
		{x, f.At(j, i), z, 1},
		{x, f.At(j, i+1), z + 1, 1},
		{x + 1, f.At(j+1, i+1), z + 1, 1},
		{x + 1, f.At(j+1, i), z, 1},
	}
	wantUV := []mgl32.Vec2{
		{x * dt, z * dt},
		{x * dt, z*dt + dt},
		{x*dt + dt, z*dt + dt},
		{x*dt + dt, z * dt},
	}
	for c := 0; c < 4; c++ {
		if q[c].Position != wantPos[c] {
			t.Errorf("corner %d position %v, want %v", c, q[c].Position, wantPos[c])
		}
		if !q[c].UV.ApproxEqual(wantUV[c]) {
			t.Errorf("corner %d uv %v, want %v", c, q[c].UV, wantUV[c])
		}
	}
}

func TestFlatFieldNormalsPointDown(t *testing.T) {
	m, _ := NewMesher(4, 5, heightfield.DefaultTimeStep)
	mesh := m.Rebuild(newField(t, 5, nil, 0))

	for n, v := range mesh.Vertices {
		if !v.Normal.ApproxEqual(mgl32.Vec3{0, -1, 0}) {
			t.Fatalf("vertex %d: expected normal (0, -1, 0), got %v", n, v.Normal)
		}
	}
}

func TestNormalsArePerCorner(t *testing.T) {
	waves := []wave.Wave{{Amplitude: 2, Frequency: 90, Phase: 2}}
	f := newField(t, 4, waves, 11)
	m, _ := NewMesher(3, 4, heightfield.DefaultTimeStep)
	mesh := m.Rebuild(f)

	q := mesh.Quad(4)
	p := []mgl32.Vec3{q[0].Position.Vec3(), q[1].Position.Vec3(), q[2].Position.Vec3(), q[3].Position.Vec3()}
	want := []mgl32.Vec3{
		p[3].Sub(p[0]).Cross(p[1].Sub(p[0])),
		p[2].Sub(p[3]).Cross(p[0].Sub(p[3])),
		p[1].Sub(p[2]).Cross(p[3].Sub(p[2])),
		p[0].Sub(p[1]).Cross(p[2].Sub(p[1])),
	}
	for c := range want {
		if !q[c].Normal.ApproxEqual(want[c]) {
			t.Errorf("corner %d normal %v, want %v", c, q[c].Normal, want[c])
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	waves := wave.DefaultWaves(4)
	f := newField(t, heightfield.DefaultSize, waves, 1234)

	serial, _ := NewMesher(DefaultResolution, heightfield.DefaultSize, heightfield.DefaultTimeStep)
	parallel, _ := NewMesher(DefaultResolution, heightfield.DefaultSize, heightfield.DefaultTimeStep, WithWorkers(7))

	a := serial.Rebuild(f)
	b := parallel.Rebuild(f)
	for n := range a.Vertices {
		if a.Vertices[n] != b.Vertices[n] {
			t.Fatalf("vertex %d differs: %+v vs %+v", n, a.Vertices[n], b.Vertices[n])
		}
	}
	for n := range a.Indices {
		if a.Indices[n] != b.Indices[n] {
			t.Fatalf("index %d differs", n)
		}
	}
}

func TestRebuildRejectsForeignField(t *testing.T) {
	m, _ := NewMesher(3, 4, heightfield.DefaultTimeStep)
	defer func() {
		if recover() == nil {
			t.Error("expected Rebuild to panic on a field of the wrong size")
		}
	}()
	m.Rebuild(newField(t, 5, nil, 0))
}

func TestRebuildReplacesPreviousFrame(t *testing.T) {
	m, _ := NewMesher(3, 4, heightfield.DefaultTimeStep)
	tall := newField(t, 4, []wave.Wave{{Amplitude: 3, Frequency: 100}}, 0)
	flat := newField(t, 4, nil, 0)

	m.Rebuild(tall)
	mesh := m.Rebuild(flat)
	for n, v := range mesh.Vertices {
		if v.Position.Y() != 0 {
			t.Fatalf("vertex %d kept stale height %v", n, v.Position.Y())
		}
	}
}

func TestVertexLayout(t *testing.T) {
	if VertexStride != 9*4 {
		t.Errorf("expected stride 36, got %d", VertexStride)
	}
	if PositionOffset != 0 || NormalOffset != 16 || UVOffset != 28 {
		t.Errorf("unexpected offsets %d %d %d", PositionOffset, NormalOffset, UVOffset)
	}
}
