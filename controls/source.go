// Package controls turns device events into per-tick movement intent. Exactly
// one Source is active at a time and the Switcher swaps them.
package controls

import (
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/go-gl/mathgl/mgl64"
)

// Source is an input device variant.
type Source interface {
	Kind() config.ControlModeID
	// Intent reads the current input state without side effects.
	Intent() locomotion.Intent
	ForwardVector() mgl64.Vec3
	SideVector() mgl64.Vec3
	// ControlObject is the device payload sent alongside the intent.
	ControlObject() messages.ControlObject
	Running() bool
	StopRunning()
	// Update advances device smoothing once per tick, after the intent was used.
	Update(dt float64)
	// Release unsubscribes the source from its hub.
	Release()
}

// Factory builds a source subscribed to hub.
type Factory func(hub *Hub, camera *Camera, cfg config.ControlsConfig) Source

var factories = map[config.ControlModeID]Factory{
	config.ControlModeKeyboardMouse: func(hub *Hub, camera *Camera, cfg config.ControlsConfig) Source {
		return NewKeyMouse(hub, camera, cfg)
	},
	config.ControlModeMobile: func(hub *Hub, camera *Camera, cfg config.ControlsConfig) Source {
		return NewMobile(hub, camera, cfg)
	},
}

func intentFromKeys(pressed map[Key]bool, running bool) locomotion.Intent {
	in := locomotion.Intent{Keys: make(map[locomotion.Action]bool, 5), Running: running}
	for key, action := range keyActions {
		if pressed[key] {
			in.Keys[action] = true
		}
	}
	return in
}

var keyActions = map[Key]locomotion.Action{
	KeyForward: locomotion.ActionForward,
	KeyBack:    locomotion.ActionBack,
	KeyLeft:    locomotion.ActionLeft,
	KeyRight:   locomotion.ActionRight,
	KeyJump:    locomotion.ActionJump,
}

func toArray3(v mgl64.Vec3) [3]float64 {
	return [3]float64{v.X(), v.Y(), v.Z()}
}
