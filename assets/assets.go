// Package assets bundles the levels shipped with the client and server.
package assets

import (
	"embed"
	"io/fs"

	"github.com/automoto/avatarsync/shared/leveldata"
)

// LevelsDir is the directory of the bundled TMX files inside Levels.
const LevelsDir = "levels"

var (
	//go:embed all:levels
	levelFS embed.FS
)

// Levels returns the bundled level files.
func Levels() fs.FS {
	return levelFS
}

// LoadLevels parses every bundled level.
func LoadLevels() (map[string]*leveldata.LevelData, []string, error) {
	return leveldata.LoadAllLevels(levelFS, LevelsDir)
}
