// Package render draws the debug top-down view of the world: ground, walls,
// the local avatar and remote peers, plus the HUD text.
package render

import (
	"github.com/go-gl/mathgl/mgl64"
)

// View maps world X/Z onto the screen, centred on Focus. World -Z is up.
type View struct {
	Focus         mgl64.Vec3
	Width, Height float64
	PixelsPerUnit float64
}

func (v View) ToScreen(x, z float64) (float32, float32) {
	sx := v.Width/2 + (x-v.Focus.X())*v.PixelsPerUnit
	sy := v.Height/2 + (z-v.Focus.Z())*v.PixelsPerUnit
	return float32(sx), float32(sy)
}

// Bounds returns the world rectangle visible on screen.
func (v View) Bounds() (minX, minZ, maxX, maxZ float64) {
	hw := v.Width / 2 / v.PixelsPerUnit
	hh := v.Height / 2 / v.PixelsPerUnit
	return v.Focus.X() - hw, v.Focus.Z() - hh, v.Focus.X() + hw, v.Focus.Z() + hh
}
