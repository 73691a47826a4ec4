package core

import (
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/physics"
	"github.com/automoto/avatarsync/shared/leveldata"
)

// LoadLevel loads one level by stem name from fsys/levelsDir. An empty name
// picks the first level in sorted order.
func LoadLevel(fsys fs.FS, levelsDir, name string) (*leveldata.LevelData, error) {
	levels, names, err := leveldata.LoadAllLevels(fsys, levelsDir)
	if err != nil {
		return nil, fmt.Errorf("load all levels: %w", err)
	}
	if name == "" {
		name = names[0]
	}
	lvl, ok := levels[name]
	if !ok {
		return nil, fmt.Errorf("level %q not found, available: %v", name, names)
	}

	log.Printf("[level] loaded %s: %d grounds, %d walls, %d spawn points, %.0fx%.0f",
		lvl.Name, len(lvl.Grounds), len(lvl.Walls), len(lvl.SpawnPoints), lvl.Width, lvl.Depth)
	return lvl, nil
}

// LoadLevelDir loads a level from a directory on disk holding a levels/
// subdirectory.
func LoadLevelDir(assetsDir, name string) (*leveldata.LevelData, error) {
	return LoadLevel(os.DirFS(assetsDir), "levels", name)
}

func newPhysicsWorld(lvl *leveldata.LevelData) *physics.World {
	if lvl == nil {
		return physics.NewWorld(config.Physics)
	}
	return physics.NewWorldFromLevel(config.Physics, lvl)
}
