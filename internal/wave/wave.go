// Package wave holds the tunable parameters of the sine waves that make up the ocean surface.
package wave

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCount is the number of waves used when none is configured.
const DefaultCount = 8

// Wave is a single sine wave contribution.
//
// Direction is named after its original intent but is consumed as the
// origin point of a circular wavefront: heights depend on the distance from
// (Direction.X, Direction.Y), not on a propagation vector.
type Wave struct {
	Amplitude float32
	Direction mgl32.Vec2
	Frequency float32
	Phase     float32
}

// Field identifies one scalar parameter of a Wave.
type Field int

const (
	Amplitude Field = iota
	DirectionX
	DirectionY
	Frequency
	Phase
)

// Fields lists every field in record order.
var Fields = []Field{Amplitude, DirectionX, DirectionY, Frequency, Phase}

var fieldNames = [...]string{
	Amplitude:  "amplitude",
	DirectionX: "direction.x",
	DirectionY: "direction.y",
	Frequency:  "frequency",
	Phase:      "phase",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField converts a field name to a Field. Short aliases are accepted
// (amp, dx, dy, freq).
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "amplitude", "amp":
		return Amplitude, nil
	case "direction.x", "dx", "x":
		return DirectionX, nil
	case "direction.y", "dy", "y":
		return DirectionY, nil
	case "frequency", "freq":
		return Frequency, nil
	case "phase":
		return Phase, nil
	}
	return 0, fmt.Errorf("unknown wave field %q", name)
}

// Value returns the value of the given field.
func (w Wave) Value(f Field) float32 {
	switch f {
	case Amplitude:
		return w.Amplitude
	case DirectionX:
		return w.Direction.X()
	case DirectionY:
		return w.Direction.Y()
	case Frequency:
		return w.Frequency
	case Phase:
		return w.Phase
	}
	panic(fmt.Sprintf("wave: invalid field %d", int(f)))
}

// With returns a copy of w with field f set to v.
func (w Wave) With(f Field, v float32) Wave {
	switch f {
	case Amplitude:
		w.Amplitude = v
	case DirectionX:
		w.Direction[0] = v
	case DirectionY:
		w.Direction[1] = v
	case Frequency:
		w.Frequency = v
	case Phase:
		w.Phase = v
	default:
		panic(fmt.Sprintf("wave: invalid field %d", int(f)))
	}
	return w
}

// DefaultWaves returns a seed set of n waves spread around the grid.
// It is only used to initialise a fresh wave directory; loading never
// falls back to it.
func DefaultWaves(n int) []Wave {
	waves := make([]Wave, n)
	for i := range waves {
		waves[i] = Wave{
			Amplitude: 0.5 / float32(i+1),
			Direction: mgl32.Vec2{float32(8 * (i % 4)), float32(16 * (i / 4))},
			Frequency: 20 + 10*float32(i),
			Phase:     2 + float32(i%3),
		}
	}
	return waves
}
