// Package input turns SDL2 events into ocean viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/oceanwaves/internal/ocean"
)

// Kind identifies what an Action asks the viewer to do.
type Kind int

const (
	None Kind = iota
	Quit
	Resize
	SelectWave
	Command
	Screenshot
)

// Action is one processed input event.
type Action struct {
	Kind    Kind
	Command ocean.Command // for Command
	Wave    int           // 1-based, for SelectWave
	Width   int           // for Resize
	Height  int
}

// Bindings maps key scancodes to simulation commands.
type Bindings map[sdl.Scancode]ocean.Command

// DefaultBindings is the classic layout: Q/A amplitude, W/S frequency,
// E/D phase, arrows direction, O/P wireframe, K/L solid/textured, Space save.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_Q:     ocean.CmdAmplitudeUp,
		sdl.SCANCODE_A:     ocean.CmdAmplitudeDown,
		sdl.SCANCODE_W:     ocean.CmdFrequencyUp,
		sdl.SCANCODE_S:     ocean.CmdFrequencyDown,
		sdl.SCANCODE_E:     ocean.CmdPhaseUp,
		sdl.SCANCODE_D:     ocean.CmdPhaseDown,
		sdl.SCANCODE_RIGHT: ocean.CmdDirectionXUp,
		sdl.SCANCODE_LEFT:  ocean.CmdDirectionXDown,
		sdl.SCANCODE_UP:    ocean.CmdDirectionYUp,
		sdl.SCANCODE_DOWN:  ocean.CmdDirectionYDown,
		sdl.SCANCODE_O:     ocean.CmdWireframeOn,
		sdl.SCANCODE_P:     ocean.CmdWireframeOff,
		sdl.SCANCODE_K:     ocean.CmdSolid,
		sdl.SCANCODE_L:     ocean.CmdTextured,
		sdl.SCANCODE_SPACE: ocean.CmdSave,
	}
}

// Input polls SDL and translates events with a set of bindings.
type Input struct {
	bindings Bindings
	actions  []Action
}

// New creates an input handler. nil bindings use DefaultBindings.
func New(b Bindings) *Input {
	if b == nil {
		b = DefaultBindings()
	}
	return &Input{
		bindings: b,
		actions:  make([]Action, 0, 16),
	}
}

// Poll drains the SDL event queue and returns the actions it produced.
// The slice is reused by the next call.
func (i *Input) Poll() []Action {
	i.actions = i.actions[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if a := i.Translate(event); a.Kind != None {
			i.actions = append(i.actions, a)
		}
	}
	return i.actions
}

// Translate maps a single SDL event to an action. Held keys repeat through
// SDL's key-down repeat events, so holding Q keeps raising the amplitude.
func (i *Input) Translate(event sdl.Event) Action {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Action{Kind: Quit}

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Action{Kind: Resize, Width: int(e.Data1), Height: int(e.Data2)}
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			return i.Key(e.Keysym.Scancode)
		}
	}
	return Action{}
}

// Key maps a pressed key to an action.
func (i *Input) Key(sc sdl.Scancode) Action {
	switch {
	case sc == sdl.SCANCODE_ESCAPE:
		return Action{Kind: Quit}
	case sc == sdl.SCANCODE_F12:
		return Action{Kind: Screenshot}
	case sc >= sdl.SCANCODE_1 && sc <= sdl.SCANCODE_9:
		return Action{Kind: SelectWave, Wave: int(sc-sdl.SCANCODE_1) + 1}
	}
	if cmd, ok := i.bindings[sc]; ok {
		return Action{Kind: Command, Command: cmd}
	}
	return Action{}
}
