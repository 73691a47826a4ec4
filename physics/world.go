// Package physics moves player capsules over ground surfaces and against
// walls. Walls live in a resolv space laid over the X/Z plane.
package physics

import (
	"github.com/automoto/avatarsync/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

const (
	TagWall    = "wall"
	TagCapsule = "capsule"
)

// Rect is an axis-aligned footprint on the X/Z plane in world units.
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

func (r Rect) Contains(x, z float64) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

func (r Rect) Width() float64 { return r.MaxX - r.MinX }
func (r Rect) Depth() float64 { return r.MaxZ - r.MinZ }

// Surface is a walkable rectangle whose top sits at Height.
type Surface struct {
	Rect
	Height float64
}

// World holds the static geometry capsules collide with.
type World struct {
	cfg      config.PhysicsConfig
	space    *resolv.Space
	half     float64
	surfaces []Surface
	walls    []Rect
	capsules map[*Capsule]struct{}
}

// NewWorld creates an empty world sized by cfg.WorldHalfSize around the
// origin.
func NewWorld(cfg config.PhysicsConfig) *World {
	half := cfg.WorldHalfSize
	if half <= 0 {
		half = 256
	}
	cell := cfg.WallCellSize
	if cell <= 0 {
		cell = 1
	}
	size := int(half * 2)
	return &World{
		cfg:      cfg,
		space:    resolv.NewSpace(size, size, cell, cell),
		half:     half,
		capsules: make(map[*Capsule]struct{}),
	}
}

// AddSurface registers a walkable surface.
func (w *World) AddSurface(s Surface) {
	w.surfaces = append(w.surfaces, s)
}

// AddWall registers a wall of unbounded height over r.
func (w *World) AddWall(r Rect) {
	w.walls = append(w.walls, r)
	obj := resolv.NewObject(r.MinX+w.half, r.MinZ+w.half, r.Width(), r.Depth(), TagWall)
	w.space.Add(obj)
}

func (w *World) Surfaces() []Surface { return w.surfaces }
func (w *World) Walls() []Rect       { return w.walls }

// GroundBelow returns the highest surface under (x, z) whose top is at or
// below maxTop. The base plane counts when enabled.
func (w *World) GroundBelow(x, z, maxTop float64) (float64, bool) {
	best, found := 0.0, false
	if w.cfg.HasBasePlane && w.cfg.BasePlaneY <= maxTop {
		best, found = w.cfg.BasePlaneY, true
	}
	for _, s := range w.surfaces {
		if s.Height > maxTop || !s.Contains(x, z) {
			continue
		}
		if !found || s.Height > best {
			best, found = s.Height, true
		}
	}
	return best, found
}

// NewCapsule adds a capsule with its feet at pos.
func (w *World) NewCapsule(pos mgl64.Vec3, radius, height float64) *Capsule {
	c := &Capsule{
		world:  w,
		radius: radius,
		height: height,
		pos:    pos,
		obj:    resolv.NewObject(0, 0, radius*2, radius*2, TagCapsule),
	}
	c.syncObject()
	w.space.Add(c.obj)
	w.capsules[c] = struct{}{}
	return c
}

// RemoveCapsule takes c out of the world. Removing twice is harmless.
func (w *World) RemoveCapsule(c *Capsule) {
	if _, ok := w.capsules[c]; !ok {
		return
	}
	delete(w.capsules, c)
	w.space.Remove(c.obj)
}

// CapsuleCount returns how many capsules are in the world.
func (w *World) CapsuleCount() int {
	return len(w.capsules)
}
