package systems

import (
	"log"

	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/netconfig"
	"github.com/yohamta/donburi"
)

type netEmitState struct {
	seq uint32
}

// NewNetworkEmitSystem returns a system that sends the tick's intent once per
// tick when channel yields an emitter. Failures are logged and dropped.
func NewNetworkEmitSystem(channel func() Emitter) System {
	state := &netEmitState{}

	return func(w donburi.World, _ float64) {
		if channel == nil {
			return
		}
		out := channel()
		if out == nil {
			return
		}
		entry, ok := localPlayer(w)
		if !ok {
			return
		}

		in := components.Intent.Get(entry).Current

		state.seq++
		msg := messages.NewKeys(state.seq)
		msg.Keys = in.WireKeys()
		msg.Running = in.Running
		if src := activeSource(entry); src != nil {
			msg.ControlObject = src.ControlObject()
		}

		if err := out.Emit(netconfig.MessageKeys, msg); err != nil {
			log.Printf("[netemit] send error: %v", err)
		}
	}
}
