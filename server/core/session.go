package core

import (
	"math"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/physics"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/netcomponents"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Peer is the connection a session answers to. *router.NetworkClient
// satisfies it.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

// Session is one joined player. It is not a donburi component; only the
// entity's NetTransform and NetAvatar are synced.
type Session struct {
	Peer    Peer
	Name    string
	Entity  donburi.Entity
	State   *locomotion.State
	Capsule *physics.Capsule

	// Latest keys message, written by the router and read by the loop
	keys    messages.Keys
	hasKeys bool
	// Last sequence the loop integrated, echoed back as the ack
	processed uint32
	// A jump seen in any message since the last step, including replaced ones
	jumpPending bool

	facing float64
}

func newSession(peer Peer, name string, world *physics.World, spawn [3]float64) *Session {
	pos := mgl64.Vec3(spawn)
	capsule := world.NewCapsule(pos, config.Player.CapsuleRadius, config.Player.CapsuleHeight)
	return &Session{
		Peer:    peer,
		Name:    name,
		State:   locomotion.NewState(capsule, pos),
		Capsule: capsule,
	}
}

// Accept stores msg if it is newer than the held keys. Out of order and
// duplicate messages are dropped. A jump in any message the loop has not
// integrated yet is latched until the next step, even if a later message
// replaced it.
func (s *Session) Accept(msg messages.Keys) bool {
	if msg.Keys[string(locomotion.ActionJump)] && msg.Sequence > s.processed {
		s.jumpPending = true
	}
	if s.hasKeys && msg.Sequence <= s.keys.Sequence {
		return false
	}
	s.keys = msg
	s.hasKeys = true
	return true
}

// intent returns the held keys as locomotion input and the basis the client
// moved along.
func (s *Session) intent() (locomotion.Intent, locomotion.Basis) {
	if !s.hasKeys {
		return locomotion.Intent{}, locomotion.BasisFromYaw(0)
	}
	in := locomotion.IntentFromWire(s.keys.Keys, s.keys.Running)
	if s.jumpPending {
		in.Keys[locomotion.ActionJump] = true
	}

	dir := s.keys.ControlObject.Direction
	basis := locomotion.BasisFromDirection(mgl64.Vec3(dir))
	if dir == ([3]float64{}) {
		basis = locomotion.BasisFromYaw(s.keys.ControlObject.Yaw)
	}
	return in, basis
}

// Step advances the session by delta with its held intent and reports whether
// the floor clamp fired.
func (s *Session) Step(delta float64) bool {
	in, basis := s.intent()
	recovered := locomotion.Advance(s.State, in, basis, delta, config.Player)
	locomotion.DeriveAnimation(s.State, in, config.Animation)

	if v := s.State.HorizontalVelocity; math.Hypot(v.X(), v.Z()) > 1e-6 {
		s.facing = locomotion.YawOf(v)
	}
	s.processed = s.keys.Sequence
	s.jumpPending = false
	return recovered
}

// Write copies the simulated state into the synced components.
func (s *Session) Write(entry *donburi.Entry) {
	pos := s.State.Position()
	netcomponents.NetTransform.SetValue(entry, netcomponents.NetTransformData{
		X: pos.X(), Y: pos.Y(), Z: pos.Z(),
	})
	netcomponents.NetAvatar.SetValue(entry, netcomponents.NetAvatarData{
		Name:         s.Name,
		Animation:    string(s.State.Animation.ID),
		Facing:       s.facing,
		LastSequence: s.processed,
	})
}
