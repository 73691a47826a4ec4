package render

import (
	"image/color"
	"math"

	cfg "github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/physics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawGrid draws world unit lines every spacing units.
func DrawGrid(screen *ebiten.Image, v View, spacing float64) {
	if spacing <= 0 {
		return
	}
	minX, minZ, maxX, maxZ := v.Bounds()
	w, h := float32(v.Width), float32(v.Height)

	for x := math.Floor(minX/spacing) * spacing; x <= maxX; x += spacing {
		sx, _ := v.ToScreen(x, 0)
		vector.StrokeLine(screen, sx, 0, sx, h, 1, cfg.Grid, false)
	}
	for z := math.Floor(minZ/spacing) * spacing; z <= maxZ; z += spacing {
		_, sy := v.ToScreen(0, z)
		vector.StrokeLine(screen, 0, sy, w, sy, 1, cfg.Grid, false)
	}
}

// DrawWorld draws ground surfaces shaded by height, then walls.
func DrawWorld(screen *ebiten.Image, v View, world *physics.World) {
	if world == nil {
		return
	}
	ppu := float32(v.PixelsPerUnit)

	for _, s := range world.Surfaces() {
		x, y := v.ToScreen(s.MinX, s.MinZ)
		vector.DrawFilledRect(screen, x, y, float32(s.Width())*ppu, float32(s.Depth())*ppu, shade(cfg.Ground, s.Height), false)
	}
	for _, r := range world.Walls() {
		x, y := v.ToScreen(r.MinX, r.MinZ)
		vector.DrawFilledRect(screen, x, y, float32(r.Width())*ppu, float32(r.Depth())*ppu, cfg.Wall, false)
	}
}

// shade brightens c for higher surfaces.
func shade(c color.RGBA, height float64) color.RGBA {
	boost := math.Min(math.Max(height*12, 0), 120)
	add := func(ch uint8) uint8 {
		return uint8(math.Min(float64(ch)+boost, 255))
	}
	return color.RGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: c.A}
}
