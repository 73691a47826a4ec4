// Package avatar is the visual sink for the local player: it keeps the
// presented position, turns the facing toward the direction of travel and
// cross-fades between animation clips.
package avatar

import (
	"image/color"
	"math"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minTurnSpeed is the horizontal speed below which the facing holds.
const minTurnSpeed = 1e-6

// Snapshot is what the renderer needs to draw the avatar.
type Snapshot struct {
	Model    string
	Scale    float64
	Tint     color.RGBA
	Position mgl64.Vec3
	Facing   float64 // yaw in radians

	Animation locomotion.AnimationID
	Previous  locomotion.AnimationID
	// Weight of Animation against Previous, 1 once the cross-fade is done.
	Weight float64
}

// Controller presents one avatar.
type Controller struct {
	cfg        config.AvatarConfig
	configured bool

	position mgl64.Vec3
	facing   float64

	current  locomotion.AnimationID
	previous locomotion.AnimationID
	fade     *gween.Tween
	weight   float64
}

func NewController() *Controller {
	return &Controller{
		cfg:     config.Avatar,
		current: locomotion.AnimIdle,
		weight:  1,
	}
}

// ExecuteConfig applies the avatar's appearance.
func (c *Controller) ExecuteConfig(cfg config.AvatarConfig) {
	c.cfg = cfg
	c.configured = true
}

func (c *Controller) Configured() bool {
	return c.configured
}

// Update moves the avatar, turns it toward horizontalVelocity and starts a
// cross-fade when anim changes. A zero blend time switches instantly.
func (c *Controller) Update(delta float64, position, horizontalVelocity mgl64.Vec3, anim locomotion.AnimationID, blendTime float64) {
	c.position = position
	c.turn(delta, horizontalVelocity)

	if anim != c.current {
		c.previous = c.current
		c.current = anim
		if blendTime <= 0 {
			c.fade = nil
			c.weight = 1
		} else {
			c.fade = gween.New(0, 1, float32(blendTime), ease.Linear)
			c.weight = 0
		}
	}

	if c.fade != nil {
		w, done := c.fade.Update(float32(delta))
		c.weight = float64(w)
		if done {
			c.fade = nil
			c.weight = 1
		}
	}
}

func (c *Controller) turn(delta float64, v mgl64.Vec3) {
	if math.Hypot(v.X(), v.Z()) < minTurnSpeed {
		return
	}
	target := locomotion.YawOf(v)
	diff := wrapAngle(target - c.facing)

	maxStep := c.cfg.TurnSpeed * delta
	if c.cfg.TurnSpeed <= 0 || math.Abs(diff) <= maxStep {
		c.facing = wrapAngle(target)
		return
	}
	c.facing = wrapAngle(c.facing + math.Copysign(maxStep, diff))
}

// wrapAngle maps a to [-π, π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Model:     c.cfg.Model,
		Scale:     c.cfg.Scale,
		Tint:      c.cfg.Tint,
		Position:  c.position,
		Facing:    c.facing,
		Animation: c.current,
		Previous:  c.previous,
		Weight:    c.weight,
	}
}
