package systems

import (
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/yohamta/donburi"
)

// UpdateIntent captures the active source's intent and movement axes. With
// no source the intent is empty. Must run first in the tick.
func UpdateIntent(w donburi.World, _ float64) {
	entry, ok := localPlayer(w)
	if !ok {
		return
	}

	data := components.Intent.Get(entry)
	src := activeSource(entry)
	if src == nil {
		data.Current = locomotion.Intent{}
		return
	}

	data.Current = src.Intent()
	data.Basis = locomotion.Basis{
		Forward: src.ForwardVector(),
		Side:    src.SideVector(),
	}
}
