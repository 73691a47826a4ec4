package archetypes

import (
	"github.com/automoto/avatarsync/components"
	"github.com/automoto/avatarsync/tags"
	"github.com/yohamta/donburi"
)

var (
	LocalPlayer = newArchetype(
		tags.LocalPlayer,
		components.Player,
		components.Intent,
		components.Controls,
	)
	Peer = newArchetype(
		tags.Peer,
		components.PeerInterp,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
