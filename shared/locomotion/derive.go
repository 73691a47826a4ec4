package locomotion

import "github.com/automoto/avatarsync/config"

// DeriveAnimation updates the smoothed position delta and picks the
// animation for this tick.
//
// A jump started this tick stands as set by Integrate. Otherwise a grounded
// player runs, walks or idles by intent, and an airborne one switches to fall
// once its smoothed vertical delta drops below the threshold; any other
// airborne tick keeps the previous animation.
func DeriveAnimation(s *State, in Intent, a config.AnimationConfig) {
	pos := s.Body.Position()
	if s.HasLastPosition {
		s.PositionChange = s.PositionChange.Mul(a.PositionSmoothing).
			Add(pos.Sub(s.LastPosition).Mul(1 - a.PositionSmoothing))
	}
	s.LastPosition = pos
	s.HasLastPosition = true

	if s.JumpStarted {
		s.JumpStarted = false
		return
	}

	if s.Body.Grounded() {
		s.Animation = Animation{ID: GroundedAnimation(in), BlendTime: a.DefaultBlend}
		return
	}

	if s.PositionChange.Y() < a.FallThreshold {
		s.Animation = Animation{ID: AnimFall, BlendTime: a.FallBlend}
	}
}

// GroundedAnimation maps intent to the clip for a player standing on ground.
func GroundedAnimation(in Intent) AnimationID {
	switch {
	case !in.Directional():
		return AnimIdle
	case in.Running:
		return AnimRun
	default:
		return AnimWalk
	}
}
