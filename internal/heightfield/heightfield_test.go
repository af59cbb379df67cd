package heightfield

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/oceanwaves/internal/wave"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestNewRejectsTinyGrid(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		if _, err := New(size); err == nil {
			t.Errorf("expected error for size %d", size)
		}
	}
}

func TestZeroAmplitudeIsFlat(t *testing.T) {
	f, err := New(DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	waves := wave.NewSet(wave.DefaultCount)
	for i := 0; i < waves.Len(); i++ {
		waves.Replace(i, wave.Wave{Direction: mgl32.Vec2{3, -2}, Frequency: 7, Phase: 1.5})
	}

	for _, frame := range []int{0, 1, 999, 100000} {
		f.Recompute(waves, frame, DefaultTimeStep)
		for i, h := range f.Heights() {
			if h != 0 {
				t.Fatalf("frame %d cell %d: expected 0, got %v", frame, i, h)
			}
		}
	}
}

func TestSingleWaveBounded(t *testing.T) {
	f, _ := New(32)
	waves := wave.NewSet(1)
	waves.Replace(0, wave.Wave{Amplitude: 2.5, Direction: mgl32.Vec2{10, 4}, Frequency: 40, Phase: 3})

	for frame := 0; frame < 50; frame++ {
		f.Recompute(waves, frame, DefaultTimeStep)
		lo, hi := f.Range()
		if lo < -2.5 || hi > 2.5 {
			t.Fatalf("frame %d: range [%v, %v] exceeds amplitude 2.5", frame, lo, hi)
		}
	}
}

func TestContributionKnownValue(t *testing.T) {
	w := wave.Wave{Amplitude: 1, Frequency: 1}
	got := Contribution(w, 3, 4, 0, 0.015)
	want := float32(math.Sin(0.075))
	if !near(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !near(got, 0.07493) {
		t.Errorf("expected ~0.07493, got %v", got)
	}
}

func TestDirectionIsRadialOrigin(t *testing.T) {
	w := wave.Wave{Amplitude: 1, Direction: mgl32.Vec2{5, 5}, Frequency: 30}
	// Points at equal distance from (5,5) share a height.
	a := Contribution(w, 8, 9, 0, DefaultTimeStep)
	b := Contribution(w, 2, 1, 0, DefaultTimeStep)
	c := Contribution(w, 9, 2, 0, DefaultTimeStep)
	if !near(a, b) || !near(a, c) {
		t.Errorf("expected equal heights on a circle, got %v %v %v", a, b, c)
	}
}

func TestWaveHeightIsSum(t *testing.T) {
	waves := []wave.Wave{
		{Amplitude: 1, Frequency: 1},
		{Amplitude: 0.5, Direction: mgl32.Vec2{1, 2}, Frequency: 2, Phase: 3},
	}
	const frame = 7
	got := WaveHeight(waves, 3, 4, frame, 0.015)

	// Hand computed: theta0 = 5, theta1 = sqrt(4+4).
	w0 := math.Sin(5 * 0.015)
	w1 := 0.5 * math.Sin((2*math.Sqrt(8)-frame*3)*0.015)
	want := float32(w0 + w1)
	if !near(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRecomputeMatchesWaveHeight(t *testing.T) {
	f, _ := New(8)
	waves := wave.NewSet(3)
	for i, w := range wave.DefaultWaves(3) {
		waves.Replace(i, w)
	}
	f.Recompute(waves, 42, DefaultTimeStep)

	for z := 0; z < f.Size(); z++ {
		for x := 0; x < f.Size(); x++ {
			want := WaveHeight(waves.All(), x, z, 42, DefaultTimeStep)
			if f.At(x, z) != want {
				t.Errorf("cell (%d,%d): expected %v, got %v", x, z, want, f.At(x, z))
			}
		}
	}
}

func TestRecomputeOverwritesEveryCell(t *testing.T) {
	f, _ := New(4)
	for i := range f.heights {
		f.heights[i] = 99
	}
	f.Recompute(wave.NewSet(1), 0, DefaultTimeStep)
	for i, h := range f.Heights() {
		if h != 0 {
			t.Errorf("cell %d kept stale value %v", i, h)
		}
	}
}
