package systems

import (
	"log"

	"github.com/automoto/avatarsync/components"
	cfg "github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/yohamta/donburi"
)

// UpdateMovement integrates the local player and applies the floor clamp.
func UpdateMovement(w donburi.World, dt float64) {
	entry, ok := localPlayer(w)
	if !ok {
		return
	}

	state := components.Player.Get(entry).State
	in := components.Intent.Get(entry)

	locomotion.Integrate(state, in.Current, in.Basis, dt, cfg.Player)
	if !in.Current.Directional() {
		if src := activeSource(entry); src != nil {
			src.StopRunning()
		}
	}

	if locomotion.RecoverFromFloor(state, cfg.Player) && cfg.Log.Verbose {
		log.Printf("[movement] fell below %.1f, back to spawn %v", cfg.Player.FloorY, state.SpawnPoint)
	}
}
