// Package input reads ebiten device state once per frame and dispatches the
// changes to a controls.Hub.
package input

import (
	"github.com/automoto/avatarsync/controls"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Poller turns polled device state into hub events.
type Poller struct {
	hub *controls.Hub

	held       map[controls.Key]bool
	lastCursor [2]int
	hasCursor  bool

	// Reusable slices to avoid allocations
	gamepadIDs []ebiten.GamepadID
	touchIDs   []ebiten.TouchID
}

func NewPoller(hub *controls.Hub) *Poller {
	return &Poller{hub: hub, held: make(map[controls.Key]bool)}
}

// Poll dispatches key transitions, mouse look and touch events for this frame.
// Must run before the local player systems.
func (p *Poller) Poll() {
	p.pollKeys()
	p.pollPointer()
	p.pollTouches()
}

func (p *Poller) pollKeys() {
	cur := make(map[controls.Key]bool, len(Bindings))
	p.gamepadIDs = ebiten.AppendGamepadIDs(p.gamepadIDs[:0])

	for key, binding := range Bindings {
		for _, k := range binding.Keys {
			if ebiten.IsKeyPressed(k) {
				cur[key] = true
			}
		}
		for _, gpID := range p.gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					cur[key] = true
				}
			}
		}
	}
	p.mergeAnalog(cur)

	for _, e := range controls.KeyTransitions(p.held, cur) {
		p.hub.Dispatch(e)
	}
	p.held = cur
}

// mergeAnalog folds the left stick of every gamepad into directional keys.
func (p *Poller) mergeAnalog(cur map[controls.Key]bool) {
	for _, gpID := range p.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		x := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)
		if x < -AnalogDeadzone {
			cur[controls.KeyLeft] = true
		}
		if x > AnalogDeadzone {
			cur[controls.KeyRight] = true
		}
		if y < -AnalogDeadzone {
			cur[controls.KeyForward] = true
		}
		if y > AnalogDeadzone {
			cur[controls.KeyBack] = true
		}
	}
}

// pollPointer looks while the left mouse button is held.
func (p *Poller) pollPointer() {
	x, y := ebiten.CursorPosition()
	if p.hasCursor && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		dx, dy := x-p.lastCursor[0], y-p.lastCursor[1]
		if dx != 0 || dy != 0 {
			p.hub.Dispatch(controls.Event{
				Type: controls.PointerMove,
				X:    float64(x), Y: float64(y),
				DX: float64(dx), DY: float64(dy),
			})
		}
	}
	p.lastCursor = [2]int{x, y}
	p.hasCursor = true
}

func (p *Poller) pollTouches() {
	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		p.hub.Dispatch(touchEvent(controls.TouchStart, id, x, y))
	}

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		if inpututil.IsTouchJustReleased(id) {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if x != px || y != py {
			p.hub.Dispatch(touchEvent(controls.TouchMove, id, x, y))
		}
	}

	p.touchIDs = inpututil.AppendJustReleasedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		p.hub.Dispatch(touchEvent(controls.TouchEnd, id, x, y))
	}
}

func touchEvent(t controls.EventType, id ebiten.TouchID, x, y int) controls.Event {
	return controls.Event{Type: t, TouchID: int(id), X: float64(x), Y: float64(y)}
}
