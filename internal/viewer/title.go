package viewer

import (
	"fmt"

	"github.com/Faultbox/oceanwaves/internal/ocean"
)

// Title formats the window title shown in place of an on-screen HUD.
func Title(base string, st ocean.Status) string {
	w := st.Wave
	mode := "textured"
	if st.Modes.Solid {
		mode = "solid"
	}
	if st.Modes.Wireframe {
		mode += ", wireframe"
	}
	return fmt.Sprintf("%s | wave %d: amp %.2f dir (%.2f, %.2f) freq %.2f phase %.2f | %s",
		base, st.Selected, w.Amplitude, w.Direction.X(), w.Direction.Y(), w.Frequency, w.Phase, mode)
}
