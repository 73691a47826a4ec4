package components

import (
	"github.com/automoto/avatarsync/physics"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/yohamta/donburi"
)

// PlayerData is the locally simulated avatar.
type PlayerData struct {
	State   *locomotion.State
	Capsule *physics.Capsule
}

var Player = donburi.NewComponentType[PlayerData]()
