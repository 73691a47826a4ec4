package controls

import (
	"math"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// sectorThreshold is sin(22.5°): a stick component at least this share of
// the magnitude counts, giving eight directions.
const sectorThreshold = 0.3826834323650898

// Mobile drives a virtual joystick with touches on the left half of the
// screen, looks with drags on the right half and jumps on taps in the lower
// right corner.
type Mobile struct {
	hub    *Hub
	camera *Camera
	cfg    config.ControlsConfig
	cancel func()

	stickActive bool
	stickTouch  int
	origin      mgl64.Vec2
	stick       mgl64.Vec2 // x right, y forward, length <= 1

	lookActive bool
	lookTouch  int
	lastLook   mgl64.Vec2

	release     *gween.Tween
	releaseFrom mgl64.Vec2

	running    bool
	jumpQueued bool
}

func NewMobile(hub *Hub, camera *Camera, cfg config.ControlsConfig) *Mobile {
	m := &Mobile{hub: hub, camera: camera, cfg: cfg}
	m.cancel = hub.Subscribe(m.handle)
	return m
}

func (m *Mobile) handle(e Event) {
	switch e.Type {
	case TouchStart:
		m.touchStart(e)
	case TouchMove:
		m.touchMove(e)
	case TouchEnd:
		m.touchEnd(e)
	}
}

func (m *Mobile) touchStart(e Event) {
	w, h := m.hub.Viewport()
	if m.inJumpZone(e.X, e.Y, w, h) {
		m.jumpQueued = true
		return
	}

	if e.X < w/2 && !m.stickActive {
		m.stickActive = true
		m.stickTouch = e.TouchID
		m.origin = mgl64.Vec2{e.X, e.Y}
		m.stick = mgl64.Vec2{}
		m.release = nil
		return
	}

	if !m.lookActive {
		m.lookActive = true
		m.lookTouch = e.TouchID
		m.lastLook = mgl64.Vec2{e.X, e.Y}
	}
}

func (m *Mobile) touchMove(e Event) {
	if m.stickActive && e.TouchID == m.stickTouch {
		m.setStick(mgl64.Vec2{e.X, e.Y})
		return
	}
	if m.lookActive && e.TouchID == m.lookTouch {
		dx, dy := e.X-m.lastLook.X(), e.Y-m.lastLook.Y()
		m.lastLook = mgl64.Vec2{e.X, e.Y}
		m.camera.Rotate(-dx*m.cfg.TouchLookSensitivity, -dy*m.cfg.TouchLookSensitivity)
	}
}

func (m *Mobile) touchEnd(e Event) {
	if m.stickActive && e.TouchID == m.stickTouch {
		m.stickActive = false
		m.running = false
		if m.stick.Len() == 0 || m.cfg.JoystickReleaseTime <= 0 {
			m.stick = mgl64.Vec2{}
			return
		}
		m.releaseFrom = m.stick
		m.release = gween.New(1, 0, float32(m.cfg.JoystickReleaseTime), ease.OutQuad)
		return
	}
	if m.lookActive && e.TouchID == m.lookTouch {
		m.lookActive = false
	}
}

// setStick converts a touch position into a stick vector. Screen down is
// backward.
func (m *Mobile) setStick(p mgl64.Vec2) {
	radius := m.cfg.JoystickRadius
	if radius <= 0 {
		radius = 1
	}
	offset := p.Sub(m.origin).Mul(1 / radius)
	stick := mgl64.Vec2{offset.X(), -offset.Y()}
	if l := stick.Len(); l > 1 {
		stick = stick.Mul(1 / l)
	}
	m.stick = stick
	m.running = stick.Len() >= m.cfg.JoystickRunThreshold
}

func (m *Mobile) inJumpZone(x, y, w, h float64) bool {
	if w <= 0 || h <= 0 || m.cfg.JumpZone <= 0 {
		return false
	}
	return x >= w*(1-m.cfg.JumpZone) && y >= h*(1-m.cfg.JumpZone)
}

func (m *Mobile) Kind() config.ControlModeID { return config.ControlModeMobile }

// Intent maps the stick onto up to two directional keys. Inside the deadzone
// no direction is held.
func (m *Mobile) Intent() locomotion.Intent {
	in := locomotion.Intent{Keys: make(map[locomotion.Action]bool, 5), Running: m.running}
	if m.jumpQueued {
		in.Keys[locomotion.ActionJump] = true
	}

	stick := m.stick
	in.Vector = &stick

	mag := stick.Len()
	if mag < m.cfg.JoystickDeadzone || mag == 0 {
		return in
	}
	threshold := mag * sectorThreshold
	if stick.Y() >= threshold {
		in.Keys[locomotion.ActionForward] = true
	}
	if stick.Y() <= -threshold {
		in.Keys[locomotion.ActionBack] = true
	}
	if stick.X() >= threshold {
		in.Keys[locomotion.ActionRight] = true
	}
	if stick.X() <= -threshold {
		in.Keys[locomotion.ActionLeft] = true
	}
	return in
}

func (m *Mobile) ForwardVector() mgl64.Vec3 { return m.camera.Basis().Forward }
func (m *Mobile) SideVector() mgl64.Vec3    { return m.camera.Basis().Side }

// ControlObject sends the stick, the camera yaw and the run flag.
func (m *Mobile) ControlObject() messages.ControlObject {
	return messages.ControlObject{
		Kind:      string(config.ControlModeMobile),
		Direction: toArray3(m.camera.Direction()),
		Joystick:  [2]float64{m.stick.X(), m.stick.Y()},
		Yaw:       m.camera.Yaw,
		Running:   m.running,
	}
}

func (m *Mobile) Running() bool { return m.running }
func (m *Mobile) StopRunning()  { m.running = false }

// Update eases a released stick back to centre and drops a consumed jump.
func (m *Mobile) Update(dt float64) {
	m.jumpQueued = false

	if m.release == nil {
		return
	}
	v, done := m.release.Update(float32(dt))
	if done {
		m.stick = mgl64.Vec2{}
		m.release = nil
		return
	}
	m.stick = m.releaseFrom.Mul(math.Max(0, float64(v)))
}

func (m *Mobile) Release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Stick returns the current joystick vector.
func (m *Mobile) Stick() mgl64.Vec2 {
	return m.stick
}
