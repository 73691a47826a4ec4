package systems

import (
	"github.com/automoto/avatarsync/components"
	cfg "github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/yohamta/donburi"
)

// UpdateAnimation derives the animation request from this tick's motion.
func UpdateAnimation(w donburi.World, _ float64) {
	entry, ok := localPlayer(w)
	if !ok {
		return
	}
	state := components.Player.Get(entry).State
	locomotion.DeriveAnimation(state, components.Intent.Get(entry).Current, cfg.Animation)
}
