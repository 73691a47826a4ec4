package systems

import (
	"github.com/automoto/avatarsync/components"
	cfg "github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/yohamta/donburi"
)

// NewReconciliationSystem pulls the local player toward the latest server
// transform. It does nothing on the tick the floor clamp fired.
func NewReconciliationSystem(corrections func() locomotion.Corrections) System {
	return func(w donburi.World, _ float64) {
		if corrections == nil {
			return
		}
		entry, ok := localPlayer(w)
		if !ok {
			return
		}
		state := components.Player.Get(entry).State
		if state.Recovered {
			return
		}
		locomotion.Reconcile(state, corrections(), cfg.Net.ReconcileFactor)
	}
}
