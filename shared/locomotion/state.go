package locomotion

import (
	"github.com/automoto/avatarsync/config"
	"github.com/go-gl/mathgl/mgl64"
)

// Body is the physical capsule the state drives. Step advances one substep,
// moving horizontally by walk and applying gravity and ground contact.
type Body interface {
	Step(dt float64, walk mgl64.Vec3)
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	Grounded() bool
}

// Corrections exposes the latest authoritative position, if any.
type Corrections interface {
	ServerTransform() (mgl64.Vec3, bool)
}

// State is the locally simulated player. Fields are written in this order
// within a tick: Integrate (HorizontalVelocity, JumpStarted, Animation on
// jump), RecoverFromFloor (Recovered), Reconcile (position), DeriveAnimation
// (PositionChange, LastPosition, Animation).
type State struct {
	Body Body

	HorizontalVelocity mgl64.Vec3
	PositionChange     mgl64.Vec3
	LastPosition       mgl64.Vec3
	HasLastPosition    bool

	SpawnPoint mgl64.Vec3
	Animation  Animation

	// JumpStarted is set on take-off and consumed by DeriveAnimation.
	JumpStarted bool
	// Recovered is true for the tick in which the floor clamp fired.
	Recovered bool
}

// NewState places body at spawn and starts idle.
func NewState(body Body, spawn mgl64.Vec3) *State {
	body.SetPosition(spawn)
	body.SetVelocity(mgl64.Vec3{})
	return &State{
		Body:       body,
		SpawnPoint: spawn,
		Animation:  Animation{ID: AnimIdle, BlendTime: config.Animation.DefaultBlend},
	}
}

func (s *State) Position() mgl64.Vec3 {
	return s.Body.Position()
}

func (s *State) Grounded() bool {
	return s.Body.Grounded()
}
