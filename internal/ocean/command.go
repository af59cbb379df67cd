package ocean

import (
	"fmt"

	"github.com/Faultbox/oceanwaves/internal/wave"
)

// Command is a single discrete request from an input source.
type Command int

const (
	CmdNone Command = iota
	CmdAmplitudeUp
	CmdAmplitudeDown
	CmdFrequencyUp
	CmdFrequencyDown
	CmdPhaseUp
	CmdPhaseDown
	CmdDirectionXUp
	CmdDirectionXDown
	CmdDirectionYUp
	CmdDirectionYDown
	CmdWireframeOn
	CmdWireframeOff
	CmdSolid
	CmdTextured
	CmdSave
)

var commandNames = map[Command]string{
	CmdNone:           "none",
	CmdAmplitudeUp:    "amplitude_up",
	CmdAmplitudeDown:  "amplitude_down",
	CmdFrequencyUp:    "frequency_up",
	CmdFrequencyDown:  "frequency_down",
	CmdPhaseUp:        "phase_up",
	CmdPhaseDown:      "phase_down",
	CmdDirectionXUp:   "direction_x_up",
	CmdDirectionXDown: "direction_x_down",
	CmdDirectionYUp:   "direction_y_up",
	CmdDirectionYDown: "direction_y_down",
	CmdWireframeOn:    "wireframe_on",
	CmdWireframeOff:   "wireframe_off",
	CmdSolid:          "solid",
	CmdTextured:       "textured",
	CmdSave:           "save",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand looks up a command by its String name.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name && c != CmdNone {
			return c, nil
		}
	}
	return CmdNone, fmt.Errorf("unknown command %q", name)
}

// adjustment maps parameter commands to the field they change and the sign of the step.
func (c Command) adjustment() (wave.Field, float32, bool) {
	switch c {
	case CmdAmplitudeUp:
		return wave.Amplitude, 1, true
	case CmdAmplitudeDown:
		return wave.Amplitude, -1, true
	case CmdFrequencyUp:
		return wave.Frequency, 1, true
	case CmdFrequencyDown:
		return wave.Frequency, -1, true
	case CmdPhaseUp:
		return wave.Phase, 1, true
	case CmdPhaseDown:
		return wave.Phase, -1, true
	case CmdDirectionXUp:
		return wave.DirectionX, 1, true
	case CmdDirectionXDown:
		return wave.DirectionX, -1, true
	case CmdDirectionYUp:
		return wave.DirectionY, 1, true
	case CmdDirectionYDown:
		return wave.DirectionY, -1, true
	}
	return 0, 0, false
}
