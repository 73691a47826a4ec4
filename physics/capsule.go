package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// edgeEpsilon absorbs float error when deciding which side of a wall a
// capsule is on.
const edgeEpsilon = 1e-6

// Capsule is a player body. Its position is the centre of its feet.
type Capsule struct {
	world    *World
	obj      *resolv.Object
	radius   float64
	height   float64
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	grounded bool
}

func (c *Capsule) Position() mgl64.Vec3 { return c.pos }
func (c *Capsule) Velocity() mgl64.Vec3 { return c.vel }
func (c *Capsule) Grounded() bool       { return c.grounded }
func (c *Capsule) Radius() float64      { return c.radius }
func (c *Capsule) Height() float64      { return c.height }

func (c *Capsule) SetPosition(p mgl64.Vec3) {
	c.pos = p
	c.syncObject()
}

func (c *Capsule) SetVelocity(v mgl64.Vec3) {
	c.vel = v
}

// Step advances the capsule by dt seconds, walking by walk on the X/Z plane.
func (c *Capsule) Step(dt float64, walk mgl64.Vec3) {
	cfg := c.world.cfg

	vy := c.vel.Y() - cfg.Gravity*dt
	if cfg.MaxFallSpeed > 0 && vy < -cfg.MaxFallSpeed {
		vy = -cfg.MaxFallSpeed
	}
	c.vel = mgl64.Vec3{c.vel.X(), vy, c.vel.Z()}

	c.syncObject()
	c.moveAxis(walk.X(), true)
	c.moveAxis(walk.Z(), false)

	prevY := c.pos.Y()
	y := prevY + vy*dt
	c.grounded = false

	if vy <= 0 {
		if ground, ok := c.world.GroundBelow(c.pos.X(), c.pos.Z(), prevY+cfg.GroundSnap); ok && y <= ground {
			y = ground
			c.vel = mgl64.Vec3{c.vel.X(), 0, c.vel.Z()}
			c.grounded = true
		}
	}
	c.pos = mgl64.Vec3{c.pos.X(), y, c.pos.Z()}
}

// moveAxis moves along X or Z, stopping flush against the first wall ahead.
func (c *Capsule) moveAxis(d float64, alongX bool) {
	if d == 0 {
		return
	}

	dx, dy := 0.0, 0.0
	if alongX {
		dx = d
	} else {
		dy = d
	}

	if check := c.obj.Check(dx, dy, TagWall); check != nil {
		for _, wall := range check.ObjectsByTags(TagWall) {
			if !c.ahead(wall, d, alongX) || !c.overlapsAcross(wall, alongX) {
				continue
			}
			contact := check.ContactWithObject(wall)
			if alongX {
				d = limit(d, contact.X())
			} else {
				d = limit(d, contact.Y())
			}
		}
	}

	if alongX {
		c.obj.X += d
		c.pos = mgl64.Vec3{c.pos.X() + d, c.pos.Y(), c.pos.Z()}
	} else {
		c.obj.Y += d
		c.pos = mgl64.Vec3{c.pos.X(), c.pos.Y(), c.pos.Z() + d}
	}
	c.obj.Update()
}

// ahead reports whether wall lies in the direction of travel.
func (c *Capsule) ahead(wall *resolv.Object, d float64, alongX bool) bool {
	if alongX {
		if d > 0 {
			return wall.X >= c.obj.X+c.obj.W-edgeEpsilon
		}
		return wall.X+wall.W <= c.obj.X+edgeEpsilon
	}
	if d > 0 {
		return wall.Y >= c.obj.Y+c.obj.H-edgeEpsilon
	}
	return wall.Y+wall.H <= c.obj.Y+edgeEpsilon
}

// overlapsAcross reports whether wall overlaps the capsule on the axis
// perpendicular to travel. Touching edges do not count so capsules slide.
func (c *Capsule) overlapsAcross(wall *resolv.Object, alongX bool) bool {
	if alongX {
		return wall.Y < c.obj.Y+c.obj.H-edgeEpsilon && wall.Y+wall.H > c.obj.Y+edgeEpsilon
	}
	return wall.X < c.obj.X+c.obj.W-edgeEpsilon && wall.X+wall.W > c.obj.X+edgeEpsilon
}

func (c *Capsule) syncObject() {
	c.obj.X = c.pos.X() - c.radius + c.world.half
	c.obj.Y = c.pos.Z() - c.radius + c.world.half
	c.obj.Update()
}

// limit shortens d so it never passes allowed and never reverses.
func limit(d, allowed float64) float64 {
	if d > 0 {
		return math.Max(0, math.Min(d, allowed))
	}
	return math.Min(0, math.Max(d, allowed))
}
