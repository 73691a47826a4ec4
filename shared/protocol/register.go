package protocol

import (
	"github.com/automoto/avatarsync/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetTransform uint = 10
	SyncIDNetAvatar    uint = 11
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetTransform uint8 = 10
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetTransform,
		netcomponents.NetTransformData{},
		netcomponents.NetTransform,
		esync.WithInterpFn(InterpIDNetTransform, netcomponents.LerpNetTransform),
	); err != nil {
		return err
	}

	// Avatar: no interpolation (discrete animation changes)
	if err := esync.RegisterComponent(
		SyncIDNetAvatar,
		netcomponents.NetAvatarData{},
		netcomponents.NetAvatar,
	); err != nil {
		return err
	}

	return nil
}
