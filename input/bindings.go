package input

import (
	"github.com/automoto/avatarsync/controls"
	"github.com/hajimehoshi/ebiten/v2"
)

// Binding lists the keys and gamepad buttons that hold a logical key.
type Binding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Bindings maps logical keys to device inputs.
var Bindings = map[controls.Key]Binding{
	controls.KeyForward: {
		Keys: []ebiten.Key{ebiten.KeyW, ebiten.KeyUp},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonLeftTop,
		},
	},
	controls.KeyBack: {
		Keys: []ebiten.Key{ebiten.KeyS, ebiten.KeyDown},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonLeftBottom,
		},
	},
	controls.KeyLeft: {
		Keys: []ebiten.Key{ebiten.KeyA, ebiten.KeyLeft},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonLeftLeft,
		},
	},
	controls.KeyRight: {
		Keys: []ebiten.Key{ebiten.KeyD, ebiten.KeyRight},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonLeftRight,
		},
	},
	controls.KeyJump: {
		Keys: []ebiten.Key{ebiten.KeySpace},
		// A / Cross button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonRightBottom,
		},
	},
	controls.KeyRun: {
		Keys: []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		// Left bumper
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonFrontTopLeft,
		},
	},
}

// AnalogDeadzone is the left stick deflection below which it is ignored.
var AnalogDeadzone = 0.25
