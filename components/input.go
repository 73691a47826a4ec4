package components

import (
	"github.com/automoto/avatarsync/controls"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/yohamta/donburi"
)

// IntentData holds the intent captured at the start of the tick. Every later
// system of the same tick reads this snapshot.
type IntentData struct {
	Current locomotion.Intent
	Basis   locomotion.Basis
}

var Intent = donburi.NewComponentType[IntentData]()

// ControlsData points at the switcher owning the active control source.
type ControlsData struct {
	Switcher *controls.Switcher
}

var Controls = donburi.NewComponentType[ControlsData]()

// Source returns the active control source, or nil.
func (c *ControlsData) Source() controls.Source {
	if c == nil || c.Switcher == nil {
		return nil
	}
	return c.Switcher.Active()
}
