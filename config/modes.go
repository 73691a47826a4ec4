package config

// ControlModeID identifies a control source variant
type ControlModeID string

const (
	ControlModeKeyboardMouse ControlModeID = "keyboardMouse"
	ControlModeMobile        ControlModeID = "mobile"
)

// ControlModes lists the recognized modes in footer display order
var ControlModes = []ControlModeID{ControlModeKeyboardMouse, ControlModeMobile}

// ControlModeLabels maps each mode to its footer button label
var ControlModeLabels = map[ControlModeID]string{
	ControlModeKeyboardMouse: "Keyboard",
	ControlModeMobile:        "Touch",
}

// Valid reports whether m is one of the recognized modes.
func (m ControlModeID) Valid() bool {
	_, ok := ControlModeLabels[m]
	return ok
}
