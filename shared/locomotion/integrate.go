package locomotion

import (
	"github.com/automoto/avatarsync/config"
	"github.com/go-gl/mathgl/mgl64"
)

// Integrate advances s by one tick of delta seconds under intent in.
//
// The horizontal accumulator decays once a last position exists, then each
// held direction adds its axis scaled by the walk or run speed. A grounded
// jump sets the launch velocity and pre-empts the animation. The body is then
// stepped p.Substeps times with delta split evenly.
//
// Callers are expected to clear their source's run flag when in carries no
// direction.
func Integrate(s *State, in Intent, b Basis, delta float64, p config.PlayerConfig) {
	s.Recovered = false

	if s.HasLastPosition {
		s.HorizontalVelocity = s.HorizontalVelocity.Mul(p.HorizontalDecay)
	}

	if in.Directional() {
		speed := p.WalkSpeed
		if in.Running {
			speed = p.RunSpeed
		}
		step := speed * delta

		if in.Pressed(ActionForward) {
			s.HorizontalVelocity = s.HorizontalVelocity.Add(b.Forward.Mul(step))
		}
		if in.Pressed(ActionBack) {
			s.HorizontalVelocity = s.HorizontalVelocity.Sub(b.Forward.Mul(step))
		}
		if in.Pressed(ActionLeft) {
			s.HorizontalVelocity = s.HorizontalVelocity.Sub(b.Side.Mul(step))
		}
		if in.Pressed(ActionRight) {
			s.HorizontalVelocity = s.HorizontalVelocity.Add(b.Side.Mul(step))
		}
	}

	if in.Pressed(ActionJump) && s.Body.Grounded() {
		v := s.Body.Velocity()
		s.Body.SetVelocity(mgl64.Vec3{v.X(), p.JumpSpeed, v.Z()})
		s.Animation = Animation{ID: AnimJump, BlendTime: JumpBlend}
		s.JumpStarted = true
	}

	substeps := p.Substeps
	if substeps < 1 {
		substeps = 1
	}
	dt := delta / float64(substeps)
	for i := 0; i < substeps; i++ {
		s.Body.Step(dt, s.HorizontalVelocity)
	}
}

// RecoverFromFloor returns the player to spawn when it has fallen below
// p.FloorY. Velocity, the horizontal accumulator and the smoothing history are
// reset. It reports whether recovery happened.
func RecoverFromFloor(s *State, p config.PlayerConfig) bool {
	if s.Body.Position().Y() >= p.FloorY {
		return false
	}

	s.Body.SetPosition(s.SpawnPoint)
	s.Body.SetVelocity(mgl64.Vec3{})
	s.HorizontalVelocity = mgl64.Vec3{}
	s.PositionChange = mgl64.Vec3{}
	s.LastPosition = mgl64.Vec3{}
	s.HasLastPosition = false
	s.Recovered = true
	return true
}

// Advance runs integration and the floor clamp, the part of a tick the
// server replays for each session.
func Advance(s *State, in Intent, b Basis, delta float64, p config.PlayerConfig) bool {
	Integrate(s, in, b, delta, p)
	return RecoverFromFloor(s, p)
}
