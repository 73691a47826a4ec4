package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Layer and object group names recognized in TMX files.
const (
	GroupSpawn     = "Spawn"
	GroupGround    = "Ground"
	GroupWalls     = "Walls"
	LayerWallTiles = "wall-tiles"
)

// Load parses a TMX file into level data. It takes an fs.FS so callers can
// pass embed.FS (client) or os.DirFS (server).
func Load(fsys fs.FS, tmxPath string) (*LevelData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, fmt.Errorf("load TMX %s: tile size must be positive", tmxPath)
	}

	// One tile per world unit.
	unitX := float64(levelMap.TileWidth)
	unitZ := float64(levelMap.TileHeight)

	data := &LevelData{
		Name:  strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width: float64(levelMap.Width),
		Depth: float64(levelMap.Height),
	}

	// Solid tiles become one-unit walls
	for _, layer := range levelMap.Layers {
		if layer.Name != LayerWallTiles {
			continue
		}
		for z := 0; z < levelMap.Height; z++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[z*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				data.Walls = append(data.Walls, Rect{
					MinX: float64(x),
					MinZ: float64(z),
					MaxX: float64(x + 1),
					MaxZ: float64(z + 1),
				})
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case GroupSpawn:
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     (o.X + o.Width/2) / unitX,
					Y:     o.Properties.GetFloat("elevation"),
					Z:     (o.Y + o.Height/2) / unitZ,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case GroupGround:
			for _, o := range og.Objects {
				data.Grounds = append(data.Grounds, Ground{
					Rect:   objectRect(o, unitX, unitZ),
					Height: o.Properties.GetFloat("height"),
				})
			}
		case GroupWalls:
			for _, o := range og.Objects {
				data.Walls = append(data.Walls, objectRect(o, unitX, unitZ))
			}
		}
	}

	// Sort spawns by index, then left-to-right for consistent assignment
	sort.SliceStable(data.SpawnPoints, func(i, j int) bool {
		a, b := data.SpawnPoints[i], data.SpawnPoints[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.X < b.X
	})

	return data, nil
}

func objectRect(o *tiled.Object, unitX, unitZ float64) Rect {
	return Rect{
		MinX: o.X / unitX,
		MinZ: o.Y / unitZ,
		MaxX: (o.X + o.Width) / unitX,
		MaxZ: (o.Y + o.Height) / unitZ,
	}
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads
// each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*LevelData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*LevelData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := Load(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
