package config

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PlayerConfig contains the local avatar's movement tunables
type PlayerConfig struct {
	// Movement
	WalkSpeed       float64 // Accumulator contribution per second of walking input
	RunSpeed        float64 // Accumulator contribution per second of running input
	JumpSpeed       float64 // Vertical launch velocity
	HorizontalDecay float64 // Accumulator decay per tick once a last position exists
	Substeps        int     // Physics substeps per tick

	// Safety
	FloorY float64 // Below this height the player is returned to spawn
	Spawn  mgl64.Vec3

	// Capsule
	CapsuleRadius float64
	CapsuleHeight float64
}

// PhysicsConfig contains world physics values shared by client and server
type PhysicsConfig struct {
	Gravity       float64 // Units per second squared
	MaxFallSpeed  float64
	GroundSnap    float64 // Distance above a surface still treated as standing on it
	WallCellSize  int     // resolv space cell size in world units
	HasBasePlane  bool    // Infinite ground plane at BasePlaneY
	BasePlaneY    float64
	WorldHalfSize float64 // Half extent of the wall space around the origin
}

// AnimationConfig contains blend times and derivation thresholds
type AnimationConfig struct {
	DefaultBlend      float64 // Seconds
	FallBlend         float64
	FallThreshold     float64 // Smoothed vertical delta per tick that counts as falling
	PositionSmoothing float64 // Weight kept from the previous smoothed delta
}

// NetConfig contains client networking and reconciliation values
type NetConfig struct {
	ServerAddress   string
	Version         string
	ReconcileFactor float64 // Lerp weight toward the server transform per tick
	TickRate        int     // Server simulation rate
	Port            uint
}

// ControlsConfig contains device tunables for both control sources
type ControlsConfig struct {
	DefaultMode      ControlModeID
	MouseSensitivity float64 // Radians per pixel
	MaxPitch         float64 // Radians

	// Mobile
	JoystickRadius       float64 // Pixels
	JoystickDeadzone     float64
	JoystickRunThreshold float64
	JoystickReleaseTime  float64 // Seconds to ease the stick back to center
	TouchLookSensitivity float64
	JumpZone             float64 // Fraction of the screen in the lower right that triggers jump
}

// AvatarConfig is forwarded to the visual sink once at setup
type AvatarConfig struct {
	Model     string     `yaml:"model"`
	Scale     float64    `yaml:"scale"`
	TurnSpeed float64    `yaml:"turnSpeed"` // Radians per second
	Tint      color.RGBA `yaml:"-"`
}

// UIConfig contains HUD and footer presentation values
type UIConfig struct {
	HUDMargin      float64
	FooterHeight   int
	PixelsPerUnit  float64 // Debug view zoom
	GridSpacing    float64
	StatusFontSize float64
	HUDFontSize    float64
}

// LogConfig gates per-tick debug output
type LogConfig struct {
	Verbose bool
}

// Config holds general window and level configuration
type Config struct {
	Width     int
	Height    int
	LevelPath string
	Title     string
}

// Global configuration instances
var C *Config
var Player PlayerConfig
var Physics PhysicsConfig
var Animation AnimationConfig
var Net NetConfig
var Controls ControlsConfig
var Avatar AvatarConfig
var UI UIConfig
var Log LogConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	Grid         = color.RGBA{R: 40, G: 40, B: 52, A: 255}
	Wall         = color.RGBA{R: 120, G: 120, B: 140, A: 255}
	Ground       = color.RGBA{R: 50, G: 70, B: 50, A: 255}
	Ghost        = color.RGBA{R: 255, G: 140, B: 0, A: 160}
)

func init() {
	Reset()
}

// Reset restores every package-level configuration to its defaults.
func Reset() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "avatarsync",
	}

	Physics = PhysicsConfig{
		Gravity:       30.0,
		MaxFallSpeed:  50.0,
		GroundSnap:    0.05,
		WallCellSize:  1,
		HasBasePlane:  true,
		BasePlaneY:    0,
		WorldHalfSize: 256,
	}

	Player = PlayerConfig{
		WalkSpeed:       0.05,
		RunSpeed:        0.15,
		JumpSpeed:       10.0,
		HorizontalDecay: 0.8,
		Substeps:        5,

		FloorY: -20,
		Spawn:  mgl64.Vec3{0, 0, 0},

		CapsuleRadius: 0.5,
		CapsuleHeight: 1.8,
	}

	Animation = AnimationConfig{
		DefaultBlend:      0.5,
		FallBlend:         0.25,
		FallThreshold:     -3,
		PositionSmoothing: 0.8,
	}

	Net = NetConfig{
		ServerAddress:   "localhost:7373",
		Version:         "0.1.0",
		ReconcileFactor: 0.02,
		TickRate:        20,
		Port:            7373,
	}

	Controls = ControlsConfig{
		DefaultMode:      ControlModeKeyboardMouse,
		MouseSensitivity: 0.004,
		MaxPitch:         85 * math.Pi / 180,

		JoystickRadius:       60,
		JoystickDeadzone:     0.2,
		JoystickRunThreshold: 0.75,
		JoystickReleaseTime:  0.15,
		TouchLookSensitivity: 0.006,
		JumpZone:             0.25,
	}

	Avatar = AvatarConfig{
		Model:     "default",
		Scale:     1,
		TurnSpeed: 10,
		Tint:      LightBlue,
	}

	UI = UIConfig{
		HUDMargin:      8,
		FooterHeight:   40,
		PixelsPerUnit:  16,
		GridSpacing:    4,
		StatusFontSize: 14,
		HUDFontSize:    12,
	}

	Log = LogConfig{}
}
