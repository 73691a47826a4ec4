package systems

import (
	"github.com/automoto/avatarsync/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var peerQuery = donburi.NewQuery(filter.Contains(components.PeerInterp))

// NewPeerInterpSystem moves remote avatars toward their latest snapshot
// position over one server tick.
func NewPeerInterpSystem(tickRate func() int) System {
	return func(w donburi.World, dt float64) {
		rate := 0
		if tickRate != nil {
			rate = tickRate()
		}
		step := 1.0
		if rate > 0 {
			step = dt * float64(rate)
		}

		peerQuery.Each(w, func(entry *donburi.Entry) {
			UpdatePeerInterp(components.PeerInterp.Get(entry), step)
		})
	}
}

// UpdatePeerInterp advances p by step, a fraction of one server tick.
func UpdatePeerInterp(p *components.PeerInterpData, step float64) {
	if !p.Initialized {
		return
	}
	p.T += step
	if p.T >= 1 {
		p.T = 1
		p.Current = p.Target
		return
	}
	p.Current = p.Prev.Add(p.Target.Sub(p.Prev).Mul(p.T))
}
