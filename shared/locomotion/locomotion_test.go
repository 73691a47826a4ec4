package locomotion

import (
	"fmt"
	"math"
	"testing"

	"github.com/automoto/avatarsync/config"
	"github.com/go-gl/mathgl/mgl64"
)

// stubBody moves by walk each step and, when hasGround is set, rests on y=0.
type stubBody struct {
	pos       mgl64.Vec3
	vel       mgl64.Vec3
	grounded  bool
	hasGround bool
	gravity   float64

	steps []float64
}

func newGroundedBody() *stubBody {
	return &stubBody{grounded: true, hasGround: true, gravity: 30}
}

func (b *stubBody) Step(dt float64, walk mgl64.Vec3) {
	b.steps = append(b.steps, dt)
	b.pos = b.pos.Add(mgl64.Vec3{walk.X(), 0, walk.Z()})
	b.vel = mgl64.Vec3{b.vel.X(), b.vel.Y() - b.gravity*dt, b.vel.Z()}
	b.pos = mgl64.Vec3{b.pos.X(), b.pos.Y() + b.vel.Y()*dt, b.pos.Z()}
	b.grounded = false
	if b.hasGround && b.pos.Y() <= 0 && b.vel.Y() <= 0 {
		b.pos = mgl64.Vec3{b.pos.X(), 0, b.pos.Z()}
		b.vel = mgl64.Vec3{b.vel.X(), 0, b.vel.Z()}
		b.grounded = true
	}
}

func (b *stubBody) Position() mgl64.Vec3     { return b.pos }
func (b *stubBody) SetPosition(p mgl64.Vec3) { b.pos = p }
func (b *stubBody) Velocity() mgl64.Vec3     { return b.vel }
func (b *stubBody) SetVelocity(v mgl64.Vec3) { b.vel = v }
func (b *stubBody) Grounded() bool           { return b.grounded }

type fixedCorrection struct {
	target mgl64.Vec3
	ok     bool
}

func (c fixedCorrection) ServerTransform() (mgl64.Vec3, bool) { return c.target, c.ok }

const tickDelta = 1.0 / 60

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func keys(actions ...Action) Intent {
	in := Intent{Keys: map[Action]bool{}}
	for _, a := range actions {
		in.Keys[a] = true
	}
	return in
}

// tick runs the client ordering for one frame.
func tick(s *State, in Intent, c Corrections) {
	Integrate(s, in, BasisFromYaw(0), tickDelta, config.Player)
	if !RecoverFromFloor(s, config.Player) {
		Reconcile(s, c, config.Net.ReconcileFactor)
	}
	DeriveAnimation(s, in, config.Animation)
}

func TestFloorRecovery(t *testing.T) {
	for _, y := range []float64{-20.0001, -25, -1000} {
		t.Run(fmt.Sprintf("y=%v", y), func(t *testing.T) {
			spawn := mgl64.Vec3{3, 4, 5}
			body := &stubBody{gravity: 30}
			s := NewState(body, spawn)
			s.HasLastPosition = true
			s.HorizontalVelocity = mgl64.Vec3{1, 0, 1}
			body.pos = mgl64.Vec3{7, y, 9}
			body.vel = mgl64.Vec3{1, -40, 2}

			tick(s, keys(ActionForward), fixedCorrection{target: mgl64.Vec3{100, 100, 100}, ok: true})

			if body.pos != spawn {
				t.Fatalf("position = %v, want spawn %v", body.pos, spawn)
			}
			if body.vel != (mgl64.Vec3{}) {
				t.Fatalf("velocity = %v, want zero", body.vel)
			}
			if s.HorizontalVelocity != (mgl64.Vec3{}) {
				t.Fatalf("horizontal velocity = %v, want zero", s.HorizontalVelocity)
			}
			if !s.Recovered {
				t.Fatal("Recovered = false, want true")
			}
		})
	}
}

func TestRecoverFromFloorIgnoresSafeHeights(t *testing.T) {
	body := newGroundedBody()
	s := NewState(body, mgl64.Vec3{})
	body.pos = mgl64.Vec3{1, -20, 1}

	if RecoverFromFloor(s, config.Player) {
		t.Fatal("y == -20 should not trigger recovery")
	}
	if body.pos != (mgl64.Vec3{1, -20, 1}) {
		t.Fatalf("position changed to %v", body.pos)
	}
}

func TestIdleDecay(t *testing.T) {
	body := newGroundedBody()
	s := NewState(body, mgl64.Vec3{})

	for i := 0; i < 30; i++ {
		tick(s, keys(ActionForward), nil)
	}
	prev := s.HorizontalVelocity.Len()
	if prev == 0 {
		t.Fatal("forward intent produced no horizontal velocity")
	}

	idle := Intent{}
	for i := 0; i < 200; i++ {
		tick(s, idle, nil)
		got := s.HorizontalVelocity.Len()
		approxEqual(t, got, prev*0.8, 1e-12, "decayed magnitude")
		if prev > 0 && got >= prev {
			t.Fatalf("tick %d: magnitude %v did not decrease from %v", i, got, prev)
		}
		prev = got
		if got < 1e-12 {
			return
		}
	}
	t.Fatalf("horizontal velocity still %v after 200 idle ticks", prev)
}

func TestGroundedAnimationAllDirectionalPermutations(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		for _, running := range []bool{false, true} {
			in := Intent{Keys: map[Action]bool{}, Running: running}
			for i, a := range DirectionalActions {
				if mask&(1<<i) != 0 {
					in.Keys[a] = true
				}
			}

			want := AnimIdle
			if mask != 0 {
				want = AnimWalk
				if running {
					want = AnimRun
				}
			}

			name := fmt.Sprintf("mask=%04b/running=%v", mask, running)
			t.Run(name, func(t *testing.T) {
				body := newGroundedBody()
				s := NewState(body, mgl64.Vec3{})
				tick(s, in, nil)

				if s.Animation.ID != want {
					t.Fatalf("animation = %s, want %s", s.Animation.ID, want)
				}
				approxEqual(t, s.Animation.BlendTime, config.Animation.DefaultBlend, 0, "blend")
				if got := GroundedAnimation(in); got != want {
					t.Fatalf("GroundedAnimation = %s, want %s", got, want)
				}
			})
		}
	}
}

func TestJumpPreemptsDerivation(t *testing.T) {
	for _, in := range []Intent{
		keys(ActionJump),
		keys(ActionJump, ActionForward),
		{Keys: map[Action]bool{ActionJump: true, ActionLeft: true}, Running: true},
	} {
		body := newGroundedBody()
		s := NewState(body, mgl64.Vec3{})
		// Settle one tick so smoothing history exists.
		tick(s, Intent{}, nil)

		Integrate(s, in, BasisFromYaw(0), tickDelta, config.Player)
		// Launch velocity minus gravity applied over one tick of substeps.
		approxEqual(t, body.vel.Y(), config.Player.JumpSpeed-30*tickDelta, 1e-9, "velocity.y")
		if !s.JumpStarted {
			t.Fatal("JumpStarted = false after grounded jump")
		}

		RecoverFromFloor(s, config.Player)
		DeriveAnimation(s, in, config.Animation)
		if s.Animation != (Animation{ID: AnimJump, BlendTime: 0}) {
			t.Fatalf("animation = %+v, want jump with zero blend", s.Animation)
		}
		if s.JumpStarted {
			t.Fatal("JumpStarted should be consumed by DeriveAnimation")
		}
	}
}

func TestJumpIgnoredWhileAirborne(t *testing.T) {
	body := &stubBody{gravity: 30}
	s := NewState(body, mgl64.Vec3{0, 5, 0})

	Integrate(s, keys(ActionJump), BasisFromYaw(0), tickDelta, config.Player)
	if s.JumpStarted {
		t.Fatal("airborne body must not jump")
	}
	if body.vel.Y() >= 0 {
		t.Fatalf("velocity.y = %v, want falling", body.vel.Y())
	}
}

func TestAirborneKeepsPreviousUntilFalling(t *testing.T) {
	body := &stubBody{gravity: 30}
	s := NewState(body, mgl64.Vec3{0, 0, 0})
	s.Animation = Animation{ID: AnimJump}
	s.HasLastPosition = true
	s.LastPosition = mgl64.Vec3{}

	body.pos = mgl64.Vec3{0, -1, 0}
	DeriveAnimation(s, Intent{}, config.Animation)
	if s.Animation.ID != AnimJump {
		t.Fatalf("animation = %s, want jump kept", s.Animation.ID)
	}

	// Large drops push the smoothed delta below the fall threshold.
	for i := 2; i < 40 && s.Animation.ID != AnimFall; i++ {
		body.pos = mgl64.Vec3{0, -float64(i) * 20, 0}
		DeriveAnimation(s, Intent{}, config.Animation)
	}
	if s.Animation != (Animation{ID: AnimFall, BlendTime: 0.25}) {
		t.Fatalf("animation = %+v, want fall/0.25", s.Animation)
	}
}

func TestFirstDerivationSkipsSmoothing(t *testing.T) {
	body := newGroundedBody()
	s := NewState(body, mgl64.Vec3{})
	body.pos = mgl64.Vec3{10, 0, 0}

	DeriveAnimation(s, Intent{}, config.Animation)
	if s.PositionChange != (mgl64.Vec3{}) {
		t.Fatalf("PositionChange = %v, want zero on first tick", s.PositionChange)
	}
	if !s.HasLastPosition || s.LastPosition != body.pos {
		t.Fatalf("LastPosition = %v (%v), want %v", s.LastPosition, s.HasLastPosition, body.pos)
	}

	body.pos = mgl64.Vec3{11, 0, 0}
	DeriveAnimation(s, Intent{}, config.Animation)
	approxEqual(t, s.PositionChange.X(), 0.2, 1e-12, "positionChange.x")
}

func TestReconciliationConvergence(t *testing.T) {
	body := newGroundedBody()
	s := NewState(body, mgl64.Vec3{})
	target := fixedCorrection{target: mgl64.Vec3{10, 0, -6}, ok: true}

	prev := body.pos.Sub(target.target).Len()
	for i := 0; i < 2000; i++ {
		tick(s, Intent{}, target)
		d := body.pos.Sub(target.target).Len()
		if d >= prev {
			t.Fatalf("tick %d: distance %v did not shrink from %v", i, d, prev)
		}
		approxEqual(t, d, prev*0.98, 1e-9, "distance ratio")
		prev = d
		if d < 1e-6 {
			return
		}
	}
	t.Fatalf("distance still %v after 2000 ticks", prev)
}

func TestReconcileLeavesVelocityAlone(t *testing.T) {
	body := newGroundedBody()
	s := NewState(body, mgl64.Vec3{})
	body.vel = mgl64.Vec3{1, 2, 3}

	if Reconcile(s, fixedCorrection{}, 0.02) {
		t.Fatal("absent correction should not apply")
	}
	if !Reconcile(s, fixedCorrection{target: mgl64.Vec3{100, 0, 0}, ok: true}, 0.02) {
		t.Fatal("present correction should apply")
	}
	approxEqual(t, body.pos.X(), 2, 1e-12, "position.x")
	if body.vel != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("velocity = %v, want untouched", body.vel)
	}
}

func TestIntegrateSubsteps(t *testing.T) {
	body := newGroundedBody()
	s := NewState(body, mgl64.Vec3{})

	Integrate(s, keys(ActionForward), BasisFromYaw(0), tickDelta, config.Player)

	if len(body.steps) != 5 {
		t.Fatalf("steps = %d, want 5", len(body.steps))
	}
	for i, dt := range body.steps {
		approxEqual(t, dt, tickDelta/5, 1e-15, fmt.Sprintf("step[%d]", i))
	}
	// Forward at yaw zero is -Z; five substeps each move by the accumulator.
	approxEqual(t, body.pos.Z(), -5*config.Player.WalkSpeed*tickDelta, 1e-12, "position.z")
}

func TestDirectionalContributions(t *testing.T) {
	tests := []struct {
		name    string
		in      Intent
		want    mgl64.Vec3
		running bool
	}{
		{"forward", keys(ActionForward), mgl64.Vec3{0, 0, -1}, false},
		{"back", keys(ActionBack), mgl64.Vec3{0, 0, 1}, false},
		{"left", keys(ActionLeft), mgl64.Vec3{-1, 0, 0}, false},
		{"right", keys(ActionRight), mgl64.Vec3{1, 0, 0}, false},
		{"forward and back cancel", keys(ActionForward, ActionBack), mgl64.Vec3{}, false},
		{"run forward", keys(ActionForward), mgl64.Vec3{0, 0, -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := newGroundedBody()
			s := NewState(body, mgl64.Vec3{})
			in := tt.in
			in.Running = tt.running

			Integrate(s, in, BasisFromYaw(0), tickDelta, config.Player)

			speed := config.Player.WalkSpeed
			if tt.running {
				speed = config.Player.RunSpeed
			}
			want := tt.want.Mul(speed * tickDelta)
			for i := 0; i < 3; i++ {
				approxEqual(t, s.HorizontalVelocity[i], want[i], 1e-12, fmt.Sprintf("hv[%d]", i))
			}
		})
	}
}

func TestBasisFromYaw(t *testing.T) {
	b := BasisFromYaw(math.Pi / 2)
	approxEqual(t, b.Forward.X(), -1, 1e-12, "forward.x")
	approxEqual(t, b.Forward.Z(), 0, 1e-12, "forward.z")
	approxEqual(t, b.Side.Z(), -1, 1e-12, "side.z")
	approxEqual(t, b.Forward.Dot(b.Side), 0, 1e-12, "forward·side")
	approxEqual(t, b.Side.Len(), 1, 1e-12, "|side|")

	flat := BasisFromDirection(CameraDirection(math.Pi/2, 0.7))
	approxEqual(t, flat.Forward.Y(), 0, 0, "flattened forward.y")
	approxEqual(t, flat.Forward.X(), -1, 1e-12, "flattened forward.x")

	straightUp := BasisFromDirection(mgl64.Vec3{0, 1, 0})
	if straightUp != BasisFromYaw(0) {
		t.Fatalf("vertical direction basis = %+v, want yaw zero basis", straightUp)
	}
	approxEqual(t, YawOf(b.Forward), math.Pi/2, 1e-12, "YawOf")
}

func TestIntentWireRoundTrip(t *testing.T) {
	in := Intent{Keys: map[Action]bool{ActionForward: true, ActionJump: true, ActionBack: false}}
	wire := in.WireKeys()
	if len(wire) != 2 || !wire["forward"] || !wire["jump"] {
		t.Fatalf("WireKeys = %v", wire)
	}

	back := IntentFromWire(map[string]bool{"forward": true, "fly": true}, true)
	if !back.Pressed(ActionForward) || !back.Running || len(back.Keys) != 1 {
		t.Fatalf("IntentFromWire = %+v", back)
	}
}
