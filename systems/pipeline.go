package systems

import (
	"github.com/automoto/avatarsync/components"
	cfg "github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/controls"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/automoto/avatarsync/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// System advances one concern of the world by dt seconds.
type System func(w donburi.World, dt float64)

// Emitter is the outbound message channel.
type Emitter interface {
	Emit(messageType string, payload any) error
}

// AvatarSink presents the local player.
type AvatarSink interface {
	ExecuteConfig(c cfg.AvatarConfig)
	Update(delta float64, position, horizontalVelocity mgl64.Vec3, anim locomotion.AnimationID, blendTime float64)
}

// Deps are the collaborators of the local player pipeline. Each accessor may
// return nil, in which case its step is skipped for that tick.
type Deps struct {
	Channel     func() Emitter
	Corrections func() locomotion.Corrections
	Avatar      func() AvatarSink
}

// LocalPlayerPipeline returns the per-tick systems of the local player in
// the order they must run.
func LocalPlayerPipeline(d Deps) []System {
	return []System{
		UpdateIntent,
		UpdateMovement,
		NewReconciliationSystem(d.Corrections),
		UpdateAnimation,
		NewNetworkEmitSystem(d.Channel),
		NewAvatarSystem(d.Avatar),
		UpdateControlSource,
	}
}

// RunTick runs every system once, in order.
func RunTick(w donburi.World, systems []System, dt float64) {
	for _, s := range systems {
		s(w, dt)
	}
}

// localPlayer returns the local player entry, if one exists.
func localPlayer(w donburi.World) (*donburi.Entry, bool) {
	entry, ok := tags.LocalPlayer.First(w)
	if !ok || !entry.HasComponent(components.Player) {
		return nil, false
	}
	return entry, true
}

func activeSource(entry *donburi.Entry) controls.Source {
	if !entry.HasComponent(components.Controls) {
		return nil
	}
	return components.Controls.Get(entry).Source()
}
