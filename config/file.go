package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidSpawn       = errors.New("spawn must have exactly three coordinates")
	ErrInvalidControlMode = errors.New("unrecognized control mode")
)

// WorldFile is the optional YAML file layered over the Go defaults
type WorldFile struct {
	Player   PlayerSection   `yaml:"player"`
	Avatar   *AvatarConfig   `yaml:"avatar"`
	Network  NetworkSection  `yaml:"network"`
	Controls ControlsSection `yaml:"controls"`
	Level    string          `yaml:"level"`
	Log      LogSection      `yaml:"log"`
}

type PlayerSection struct {
	Spawn []float64 `yaml:"spawn"`
}

type NetworkSection struct {
	Server string `yaml:"server"`
	Port   uint   `yaml:"port"`
}

type ControlsSection struct {
	Mode string `yaml:"mode"`
}

type LogSection struct {
	Verbose bool `yaml:"verbose"`
}

// LoadWorldFile reads and parses a YAML world file.
func LoadWorldFile(path string) (*WorldFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWorldFile(data)
}

// ParseWorldFile parses YAML bytes and validates the result.
func ParseWorldFile(data []byte) (*WorldFile, error) {
	wf := &WorldFile{}
	if err := yaml.Unmarshal(data, wf); err != nil {
		return nil, err
	}
	if err := wf.Validate(); err != nil {
		return nil, err
	}
	return wf, nil
}

// Validate checks the fields Apply would otherwise reject.
func (wf *WorldFile) Validate() error {
	if n := len(wf.Player.Spawn); n != 0 && n != 3 {
		return fmt.Errorf("player.spawn has %d values: %w", n, ErrInvalidSpawn)
	}
	if wf.Controls.Mode != "" && !ControlModeID(wf.Controls.Mode).Valid() {
		return fmt.Errorf("controls.mode %q: %w", wf.Controls.Mode, ErrInvalidControlMode)
	}
	return nil
}

// SpawnPoint returns the configured spawn, if any.
func (wf *WorldFile) SpawnPoint() (mgl64.Vec3, bool) {
	if len(wf.Player.Spawn) != 3 {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{wf.Player.Spawn[0], wf.Player.Spawn[1], wf.Player.Spawn[2]}, true
}

// Apply overlays the file onto the package-level configuration. Nothing is
// changed when the file is invalid.
func (wf *WorldFile) Apply() error {
	if err := wf.Validate(); err != nil {
		return err
	}

	if spawn, ok := wf.SpawnPoint(); ok {
		Player.Spawn = spawn
	}
	if wf.Avatar != nil {
		if wf.Avatar.Model != "" {
			Avatar.Model = wf.Avatar.Model
		}
		if wf.Avatar.Scale > 0 {
			Avatar.Scale = wf.Avatar.Scale
		}
		if wf.Avatar.TurnSpeed > 0 {
			Avatar.TurnSpeed = wf.Avatar.TurnSpeed
		}
	}
	if wf.Network.Server != "" {
		Net.ServerAddress = wf.Network.Server
	}
	if wf.Network.Port != 0 {
		Net.Port = wf.Network.Port
	}
	if wf.Controls.Mode != "" {
		Controls.DefaultMode = ControlModeID(wf.Controls.Mode)
	}
	if wf.Level != "" {
		C.LevelPath = wf.Level
	}
	if wf.Log.Verbose {
		Log.Verbose = true
	}
	return nil
}
