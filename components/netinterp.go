package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// PeerInterpData smooths a remote avatar between server snapshots.
type PeerInterpData struct {
	Prev, Target mgl64.Vec3
	Current      mgl64.Vec3
	T            float64 // 0..1 progress from Prev to Target
	Initialized  bool
}

var PeerInterp = donburi.NewComponentType[PeerInterpData]()

// Retarget starts a new interpolation leg from the current position.
func (p *PeerInterpData) Retarget(target mgl64.Vec3) {
	if !p.Initialized {
		p.Prev, p.Target, p.Current = target, target, target
		p.T = 1
		p.Initialized = true
		return
	}
	p.Prev = p.Current
	p.Target = target
	p.T = 0
}
