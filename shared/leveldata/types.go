// Package leveldata provides TMX level parsing shared between client and server.
// It depends on go-tiled only, so client and server can both load levels.
// One map tile is one world unit; TMX x maps to world X and TMX y to world Z.
package leveldata

// LevelData holds everything the physics world needs from a TMX level.
type LevelData struct {
	Name        string
	SpawnPoints []SpawnPoint
	Grounds     []Ground
	Walls       []Rect
	Width       float64 // world units along X
	Depth       float64 // world units along Z
}

// Rect is an axis-aligned footprint on the X/Z plane in world units.
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// Ground is a walkable rectangle raised to Height.
type Ground struct {
	Rect
	Height float64
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y, Z float64
	Index   int
}

// Spawn returns the first spawn point, if the level has one.
func (d *LevelData) Spawn() (SpawnPoint, bool) {
	if len(d.SpawnPoints) == 0 {
		return SpawnPoint{}, false
	}
	return d.SpawnPoints[0], true
}
