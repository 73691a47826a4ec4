package messages

// Keys is sent from client to server once per tick with the player's intent.
type Keys struct {
	Sequence      uint32          // Incrementing ID so the server can drop stale messages
	Keys          map[string]bool // Held actions by name ("forward", "jump", ...)
	Running       bool
	ControlObject ControlObject
}

// ControlObject carries the device-specific view and stick state.
type ControlObject struct {
	Kind      string     // "keyboardMouse" or "mobile"
	Direction [3]float64 // Camera world direction
	Joystick  [2]float64 // Mobile stick, x right and y forward, magnitude <= 1
	Yaw       float64    // Camera yaw in radians
	Running   bool
}

// NewKeys creates a Keys message with an initialized map
func NewKeys(seq uint32) Keys {
	return Keys{
		Sequence: seq,
		Keys:     make(map[string]bool),
	}
}
