package network

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// CorrectionStore holds the latest authoritative position of the local
// player. The receive goroutine replaces it whole; the game loop reads it.
type CorrectionStore struct {
	latest atomic.Pointer[mgl64.Vec3]
}

func NewCorrectionStore() *CorrectionStore {
	return &CorrectionStore{}
}

func (s *CorrectionStore) Set(p mgl64.Vec3) {
	s.latest.Store(&p)
}

// Clear forgets the correction, for example after a disconnect.
func (s *CorrectionStore) Clear() {
	s.latest.Store(nil)
}

// ServerTransform returns the latest position, if one is held.
func (s *CorrectionStore) ServerTransform() (mgl64.Vec3, bool) {
	if s == nil {
		return mgl64.Vec3{}, false
	}
	p := s.latest.Load()
	if p == nil {
		return mgl64.Vec3{}, false
	}
	return *p, true
}
