package systems

import (
	"github.com/automoto/avatarsync/components"
	cfg "github.com/automoto/avatarsync/config"
	"github.com/yohamta/donburi"
)

// NewAvatarSystem feeds the local player's state to the visual sink. A sink
// is configured once, the first tick it is seen.
func NewAvatarSystem(avatar func() AvatarSink) System {
	var configured AvatarSink

	return func(w donburi.World, dt float64) {
		if avatar == nil {
			return
		}
		sink := avatar()
		if sink == nil {
			return
		}
		entry, ok := localPlayer(w)
		if !ok {
			return
		}

		if sink != configured {
			sink.ExecuteConfig(cfg.Avatar)
			configured = sink
		}

		state := components.Player.Get(entry).State
		sink.Update(dt, state.Position(), state.HorizontalVelocity, state.Animation.ID, state.Animation.BlendTime)
	}
}

// UpdateControlSource advances device smoothing once the tick is done.
func UpdateControlSource(w donburi.World, dt float64) {
	entry, ok := localPlayer(w)
	if !ok {
		return
	}
	if src := activeSource(entry); src != nil {
		src.Update(dt)
	}
}
