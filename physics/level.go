package physics

import (
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/leveldata"
)

// NewWorldFromLevel builds a world holding the level's ground and walls.
func NewWorldFromLevel(cfg config.PhysicsConfig, data *leveldata.LevelData) *World {
	w := NewWorld(cfg)
	if data == nil {
		return w
	}
	for _, g := range data.Grounds {
		w.AddSurface(Surface{Rect: fromLevelRect(g.Rect), Height: g.Height})
	}
	for _, r := range data.Walls {
		w.AddWall(fromLevelRect(r))
	}
	return w
}

func fromLevelRect(r leveldata.Rect) Rect {
	return Rect{MinX: r.MinX, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MaxZ}
}
