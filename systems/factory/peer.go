package factory

import (
	"github.com/automoto/avatarsync/archetypes"
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/shared/netcomponents"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// CreatePeer spawns a remote avatar mirrored from a server snapshot.
func CreatePeer(w donburi.World, id esync.NetworkId, pos mgl64.Vec3) *donburi.Entry {
	peer := archetypes.Peer.Spawn(w,
		esync.NetworkIdComponent,
		netcomponents.NetTransform,
		netcomponents.NetAvatar,
	)
	esync.NetworkIdComponent.SetValue(peer, id)
	netcomponents.NetTransform.SetValue(peer, netcomponents.NetTransformData{X: pos.X(), Y: pos.Y(), Z: pos.Z()})

	interp := components.PeerInterpData{}
	interp.Retarget(pos)
	components.PeerInterp.SetValue(peer, interp)
	return peer
}
