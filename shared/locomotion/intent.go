// Package locomotion holds the per-tick movement, reconciliation and
// animation rules for a player avatar. It is shared by the client and the
// reference server and has no rendering or ECS dependencies.
package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Action is a logical input name.
type Action string

const (
	ActionForward Action = "forward"
	ActionBack    Action = "back"
	ActionLeft    Action = "left"
	ActionRight   Action = "right"
	ActionJump    Action = "jump"
)

// DirectionalActions lists the actions that produce horizontal movement.
var DirectionalActions = [...]Action{ActionForward, ActionBack, ActionLeft, ActionRight}

// Intent is a device-independent snapshot of what the player is trying to do
// this tick. The zero value is the empty intent.
type Intent struct {
	Keys    map[Action]bool
	Running bool
	Vector  *mgl64.Vec2 // raw analog input, when the source has one
}

// Pressed reports whether a is held. Absent keys are not held.
func (in Intent) Pressed(a Action) bool {
	return in.Keys[a]
}

// Directional reports whether any movement key is held.
func (in Intent) Directional() bool {
	for _, a := range DirectionalActions {
		if in.Keys[a] {
			return true
		}
	}
	return false
}

// WireKeys returns the held keys keyed by action name, omitting released ones.
func (in Intent) WireKeys() map[string]bool {
	out := make(map[string]bool, len(in.Keys))
	for a, held := range in.Keys {
		if held {
			out[string(a)] = true
		}
	}
	return out
}

// IntentFromWire rebuilds an intent from the keys carried on the wire.
// Unknown key names are ignored.
func IntentFromWire(keys map[string]bool, running bool) Intent {
	in := Intent{Keys: make(map[Action]bool, len(keys)), Running: running}
	for name, held := range keys {
		a := Action(name)
		switch a {
		case ActionForward, ActionBack, ActionLeft, ActionRight, ActionJump:
			if held {
				in.Keys[a] = true
			}
		}
	}
	return in
}
