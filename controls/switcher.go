package controls

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/avatarsync/config"
)

var ErrUnknownMode = errors.New("unknown control mode")

// Switcher owns the active control source.
type Switcher struct {
	hub    *Hub
	camera *Camera
	cfg    config.ControlsConfig
	active Source

	// OnChange runs after a new source is installed.
	OnChange func(mode config.ControlModeID)
}

// NewSwitcher starts with the keyboard and mouse source so the loop can run
// before any mode is chosen.
func NewSwitcher(hub *Hub, camera *Camera, cfg config.ControlsConfig) *Switcher {
	return &Switcher{
		hub:    hub,
		camera: camera,
		cfg:    cfg,
		active: NewKeyMouse(hub, camera, cfg),
	}
}

// SetMode installs the source for kind. Requesting the active kind keeps the
// current instance. An unknown kind is logged and leaves the active source
// in place.
func (s *Switcher) SetMode(kind string) error {
	mode := config.ControlModeID(kind)
	if s.active != nil && s.active.Kind() == mode {
		return nil
	}

	factory, ok := factories[mode]
	if !ok {
		log.Printf("[controls] unexpected control type: %q", kind)
		return fmt.Errorf("set mode %q: %w", kind, ErrUnknownMode)
	}

	if s.active != nil {
		s.active.Release()
	}
	s.active = factory(s.hub, s.camera, s.cfg)
	log.Printf("[controls] switched to %s", mode)

	if s.OnChange != nil {
		s.OnChange(mode)
	}
	return nil
}

// Active returns the current source, or nil after Release.
func (s *Switcher) Active() Source {
	return s.active
}

// Mode returns the active kind, or "" when no source is installed.
func (s *Switcher) Mode() config.ControlModeID {
	if s.active == nil {
		return ""
	}
	return s.active.Kind()
}

func (s *Switcher) Camera() *Camera {
	return s.camera
}

// Release drops the active source and its listeners.
func (s *Switcher) Release() {
	if s.active != nil {
		s.active.Release()
		s.active = nil
	}
}
