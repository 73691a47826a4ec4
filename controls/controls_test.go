package controls

import (
	"errors"
	"math"
	"testing"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/locomotion"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %f, want %f (±%f)", field, got, want, tol)
	}
}

func newTestSwitcher() (*Hub, *Switcher) {
	hub := NewHub()
	hub.SetViewport(800, 600)
	cam := NewCamera(config.Controls.MaxPitch)
	return hub, NewSwitcher(hub, cam, config.Controls)
}

func TestSwitcherDefaultsToKeyboardMouse(t *testing.T) {
	hub, s := newTestSwitcher()
	if s.Mode() != config.ControlModeKeyboardMouse {
		t.Fatalf("Mode() = %q, want %q", s.Mode(), config.ControlModeKeyboardMouse)
	}
	if hub.Listeners() != 1 {
		t.Errorf("Listeners() = %d, want 1", hub.Listeners())
	}
}

func TestSetModeSameKindKeepsInstance(t *testing.T) {
	hub, s := newTestSwitcher()
	before := s.Active()
	hub.Dispatch(Event{Type: KeyDown, Key: KeyForward})

	changes := 0
	s.OnChange = func(config.ControlModeID) { changes++ }

	if err := s.SetMode(string(config.ControlModeKeyboardMouse)); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if s.Active() != before {
		t.Error("SetMode with the active kind replaced the source")
	}
	if !s.Active().Intent().Pressed(locomotion.ActionForward) {
		t.Error("held key lost after SetMode with the active kind")
	}
	if changes != 0 {
		t.Errorf("OnChange called %d times, want 0", changes)
	}
}

func TestSetModeUnknownKind(t *testing.T) {
	hub, s := newTestSwitcher()
	before := s.Active()

	err := s.SetMode("gamepad")
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("SetMode(gamepad) error = %v, want ErrUnknownMode", err)
	}
	if s.Active() != before {
		t.Error("unknown kind replaced the active source")
	}
	if hub.Listeners() != 1 {
		t.Errorf("Listeners() = %d, want 1", hub.Listeners())
	}
}

func TestSetModeReleasesPreviousSource(t *testing.T) {
	hub, s := newTestSwitcher()

	var got []config.ControlModeID
	s.OnChange = func(m config.ControlModeID) { got = append(got, m) }

	for _, mode := range []config.ControlModeID{
		config.ControlModeMobile,
		config.ControlModeKeyboardMouse,
		config.ControlModeMobile,
	} {
		if err := s.SetMode(string(mode)); err != nil {
			t.Fatalf("SetMode(%s): %v", mode, err)
		}
		if s.Mode() != mode {
			t.Errorf("Mode() = %q, want %q", s.Mode(), mode)
		}
		if hub.Listeners() != 1 {
			t.Errorf("after %s: Listeners() = %d, want 1", mode, hub.Listeners())
		}
	}
	if len(got) != 3 {
		t.Errorf("OnChange called %d times, want 3", len(got))
	}

	s.Release()
	if hub.Listeners() != 0 {
		t.Errorf("after Release: Listeners() = %d, want 0", hub.Listeners())
	}
	if s.Active() != nil {
		t.Error("Active() non-nil after Release")
	}
}

func TestKeyMouseIntent(t *testing.T) {
	hub, s := newTestSwitcher()
	src := s.Active()

	hub.Dispatch(Event{Type: KeyDown, Key: KeyForward})
	hub.Dispatch(Event{Type: KeyDown, Key: KeyLeft})
	hub.Dispatch(Event{Type: KeyDown, Key: KeyRun})

	in := src.Intent()
	if !in.Pressed(locomotion.ActionForward) || !in.Pressed(locomotion.ActionLeft) {
		t.Errorf("Intent keys = %v, want forward and left", in.Keys)
	}
	if in.Pressed(locomotion.ActionBack) || in.Pressed(locomotion.ActionRight) {
		t.Errorf("Intent keys = %v, unexpected back or right", in.Keys)
	}
	if !in.Running {
		t.Error("Running = false while run key held")
	}

	hub.Dispatch(Event{Type: KeyUp, Key: KeyRun})
	hub.Dispatch(Event{Type: KeyUp, Key: KeyForward})
	in = src.Intent()
	if in.Running || in.Pressed(locomotion.ActionForward) {
		t.Errorf("Intent after release = %+v", in)
	}

	src.StopRunning()
	if src.Running() {
		t.Error("Running() after StopRunning")
	}
}

func TestKeyMouseKeepsKeysHeldAcrossSwitch(t *testing.T) {
	hub, s := newTestSwitcher()
	if err := s.SetMode(string(config.ControlModeMobile)); err != nil {
		t.Fatal(err)
	}

	hub.Dispatch(Event{Type: KeyDown, Key: KeyForward})
	hub.Dispatch(Event{Type: KeyDown, Key: KeyRun})
	hub.Dispatch(Event{Type: KeyDown, Key: KeyLeft})
	hub.Dispatch(Event{Type: KeyUp, Key: KeyLeft})

	if err := s.SetMode(string(config.ControlModeKeyboardMouse)); err != nil {
		t.Fatal(err)
	}
	in := s.Active().Intent()
	if !in.Pressed(locomotion.ActionForward) {
		t.Errorf("Intent keys = %v, want forward still held", in.Keys)
	}
	if in.Pressed(locomotion.ActionLeft) {
		t.Errorf("Intent keys = %v, left was released before the switch", in.Keys)
	}
	if !in.Running || !s.Active().Running() {
		t.Error("run key held through the switch not honoured")
	}

	hub.Dispatch(Event{Type: KeyUp, Key: KeyForward})
	if s.Active().Intent().Pressed(locomotion.ActionForward) {
		t.Error("forward still pressed after KeyUp")
	}
}

func TestKeyMouseLook(t *testing.T) {
	hub, s := newTestSwitcher()
	cam := s.Camera()

	hub.Dispatch(Event{Type: PointerMove, DX: -100})
	approxEqual(t, cam.Yaw, 100*config.Controls.MouseSensitivity, 1e-9, "yaw")

	hub.Dispatch(Event{Type: PointerMove, DY: -1e6})
	approxEqual(t, cam.Pitch, config.Controls.MaxPitch, 1e-9, "pitch clamp")

	fwd := s.Active().ForwardVector()
	approxEqual(t, fwd.Y(), 0, 1e-9, "forward.y")
	approxEqual(t, fwd.Len(), 1, 1e-9, "|forward|")

	obj := s.Active().ControlObject()
	if obj.Kind != string(config.ControlModeKeyboardMouse) {
		t.Errorf("ControlObject.Kind = %q", obj.Kind)
	}
	approxEqual(t, obj.Yaw, cam.Yaw, 1e-9, "ControlObject.Yaw")
}

func setMobile(t *testing.T) (*Hub, *Switcher, *Mobile) {
	t.Helper()
	hub, s := newTestSwitcher()
	if err := s.SetMode(string(config.ControlModeMobile)); err != nil {
		t.Fatalf("SetMode(mobile): %v", err)
	}
	m, ok := s.Active().(*Mobile)
	if !ok {
		t.Fatalf("Active() = %T, want *Mobile", s.Active())
	}
	return hub, s, m
}

func TestMobileJoystickSectors(t *testing.T) {
	r := config.Controls.JoystickRadius
	d := r / math.Sqrt2

	tests := []struct {
		name    string
		dx, dy  float64
		want    []locomotion.Action
		running bool
	}{
		{name: "forward full", dx: 0, dy: -r, want: []locomotion.Action{locomotion.ActionForward}, running: true},
		{name: "back full", dx: 0, dy: r, want: []locomotion.Action{locomotion.ActionBack}, running: true},
		{name: "diagonal", dx: d, dy: -d, want: []locomotion.Action{locomotion.ActionForward, locomotion.ActionRight}, running: true},
		{name: "left half", dx: -r / 2, dy: 0, want: []locomotion.Action{locomotion.ActionLeft}, running: false},
		{name: "inside deadzone", dx: r * 0.1, dy: 0, want: nil, running: false},
		{name: "beyond radius clamps", dx: 0, dy: -3 * r, want: []locomotion.Action{locomotion.ActionForward}, running: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub, _, m := setMobile(t)
			hub.Dispatch(Event{Type: TouchStart, TouchID: 1, X: 200, Y: 300})
			hub.Dispatch(Event{Type: TouchMove, TouchID: 1, X: 200 + tt.dx, Y: 300 + tt.dy})

			in := m.Intent()
			held := 0
			for _, a := range locomotion.DirectionalActions {
				if in.Pressed(a) {
					held++
				}
			}
			if held != len(tt.want) {
				t.Errorf("held %d directions (%v), want %v", held, in.Keys, tt.want)
			}
			for _, a := range tt.want {
				if !in.Pressed(a) {
					t.Errorf("%s not held, keys = %v", a, in.Keys)
				}
			}
			if in.Running != tt.running {
				t.Errorf("Running = %v, want %v", in.Running, tt.running)
			}
			if in.Vector == nil {
				t.Fatal("Vector nil")
			}
			if in.Vector.Len() > 1+1e-9 {
				t.Errorf("|stick| = %f, want <= 1", in.Vector.Len())
			}
		})
	}
}

func TestMobileReleaseEasesToZero(t *testing.T) {
	hub, _, m := setMobile(t)
	r := config.Controls.JoystickRadius

	hub.Dispatch(Event{Type: TouchStart, TouchID: 3, X: 100, Y: 300})
	hub.Dispatch(Event{Type: TouchMove, TouchID: 3, X: 100, Y: 300 - r})
	hub.Dispatch(Event{Type: TouchEnd, TouchID: 3, X: 100, Y: 300 - r})

	if m.Running() {
		t.Error("Running() true after stick released")
	}

	prev := m.Stick().Len()
	approxEqual(t, prev, 1, 1e-9, "stick at release")

	m.Update(0.01)
	mid := m.Stick().Len()
	if !(mid > 0 && mid < prev) {
		t.Errorf("stick after first step = %f, want between 0 and %f", mid, prev)
	}

	for i := 0; i < 20; i++ {
		m.Update(0.05)
		if l := m.Stick().Len(); l > mid+1e-9 {
			t.Fatalf("stick grew during release: %f > %f", l, mid)
		} else {
			mid = l
		}
	}
	approxEqual(t, m.Stick().Len(), 0, 1e-9, "stick after release")
}

func TestMobileJumpZone(t *testing.T) {
	hub, _, m := setMobile(t)

	hub.Dispatch(Event{Type: TouchStart, TouchID: 7, X: 790, Y: 590})
	if !m.Intent().Pressed(locomotion.ActionJump) {
		t.Fatal("tap in jump zone did not queue a jump")
	}
	if m.Intent().Directional() {
		t.Error("jump tap moved the stick")
	}

	m.Update(1.0 / 60)
	if m.Intent().Pressed(locomotion.ActionJump) {
		t.Error("jump still queued after Update")
	}
}

func TestMobileLook(t *testing.T) {
	hub, s, _ := setMobile(t)
	cam := s.Camera()

	hub.Dispatch(Event{Type: TouchStart, TouchID: 2, X: 600, Y: 200})
	hub.Dispatch(Event{Type: TouchMove, TouchID: 2, X: 550, Y: 200})
	approxEqual(t, cam.Yaw, 50*config.Controls.TouchLookSensitivity, 1e-9, "yaw")

	hub.Dispatch(Event{Type: TouchEnd, TouchID: 2, X: 550, Y: 200})
	hub.Dispatch(Event{Type: TouchMove, TouchID: 2, X: 400, Y: 200})
	approxEqual(t, cam.Yaw, 50*config.Controls.TouchLookSensitivity, 1e-9, "yaw after end")
}

func TestKeyTransitions(t *testing.T) {
	prev := map[Key]bool{KeyForward: true, KeyRun: true}
	cur := map[Key]bool{KeyForward: true, KeyJump: true}

	got := KeyTransitions(prev, cur)
	want := []Event{
		{Type: KeyDown, Key: KeyJump},
		{Type: KeyUp, Key: KeyRun},
	}
	if len(got) != len(want) {
		t.Fatalf("KeyTransitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if ev := KeyTransitions(cur, cur); len(ev) != 0 {
		t.Errorf("KeyTransitions(same) = %v, want none", ev)
	}
}
