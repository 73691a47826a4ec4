package factory

import (
	"github.com/automoto/avatarsync/archetypes"
	"github.com/automoto/avatarsync/components"
	cfg "github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/controls"
	"github.com/automoto/avatarsync/physics"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// CreateLocalPlayer spawns the local avatar with a capsule in world, placed
// at spawn and driven by switcher's active source.
func CreateLocalPlayer(w donburi.World, world *physics.World, switcher *controls.Switcher, spawn mgl64.Vec3) *donburi.Entry {
	player := archetypes.LocalPlayer.Spawn(w)

	capsule := world.NewCapsule(spawn, cfg.Player.CapsuleRadius, cfg.Player.CapsuleHeight)
	components.Player.SetValue(player, components.PlayerData{
		State:   locomotion.NewState(capsule, spawn),
		Capsule: capsule,
	})
	components.Intent.SetValue(player, components.IntentData{
		Basis: locomotion.BasisFromYaw(0),
	})
	components.Controls.SetValue(player, components.ControlsData{
		Switcher: switcher,
	})

	return player
}
