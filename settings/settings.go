// Package settings persists client preferences between runs with gdata.
package settings

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/automoto/avatarsync/config"
	"github.com/quasilyte/gdata"
)

const itemKey = "settings"

// Saved is the settings data stored on disk.
type Saved struct {
	ControlMode   string `json:"controlMode"`
	ServerAddress string `json:"serverAddress"`
	PlayerName    string `json:"playerName"`
}

// Store is the item storage the settings live in. *gdata.Manager satisfies it.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Manager loads and saves Saved. A Manager without a store does nothing.
type Manager struct {
	store Store
}

// Open initializes gdata storage for appName. On failure the returned
// manager is still usable and persists nothing.
func Open(appName string) (*Manager, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[settings] could not initialize persistence: %v", err)
		return &Manager{}, fmt.Errorf("open settings: %w", err)
	}
	return &Manager{store: m}, nil
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load returns the saved settings, or nil when nothing was saved yet.
func (m *Manager) Load() (*Saved, error) {
	if m == nil || m.store == nil {
		return nil, nil
	}

	data, err := m.store.LoadItem(itemKey)
	if err != nil {
		log.Printf("[settings] could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var s Saved
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("[settings] could not parse saved settings: %v", err)
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &s, nil
}

func (m *Manager) Save(s *Saved) error {
	if m == nil || m.store == nil || s == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := m.store.SaveItem(itemKey, data); err != nil {
		log.Printf("[settings] could not save settings: %v", err)
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Update loads the current settings, applies fn and saves the result.
func (m *Manager) Update(fn func(s *Saved)) error {
	if m == nil || m.store == nil {
		return nil
	}
	s, err := m.Load()
	if err != nil || s == nil {
		s = &Saved{}
	}
	fn(s)
	return m.Save(s)
}

// Apply overlays saved values onto the runtime configuration. Fields left
// empty, and control modes that are no longer known, keep the defaults.
func Apply(s *Saved) {
	if s == nil {
		return
	}
	if mode := config.ControlModeID(s.ControlMode); mode.Valid() {
		config.Controls.DefaultMode = mode
	} else if s.ControlMode != "" {
		log.Printf("[settings] ignoring saved control mode %q", s.ControlMode)
	}
	if s.ServerAddress != "" {
		config.Net.ServerAddress = s.ServerAddress
	}
}
