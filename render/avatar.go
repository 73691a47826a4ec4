package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/automoto/avatarsync/avatar"
	cfg "github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawAvatar draws the local avatar as a disc with a facing tick, its
// height above ground as the disc outline and its animation as a label.
func DrawAvatar(screen *ebiten.Image, v View, snap avatar.Snapshot) {
	ppu := v.PixelsPerUnit
	radius := float32(cfg.Player.CapsuleRadius * snap.Scale * ppu)
	if radius <= 0 {
		radius = float32(cfg.Player.CapsuleRadius * ppu)
	}
	cx, cy := v.ToScreen(snap.Position.X(), snap.Position.Z())

	vector.DrawFilledCircle(screen, cx, cy, radius, snap.Tint, true)
	if snap.Position.Y() > 0.01 {
		lift := float32(math.Min(snap.Position.Y(), 10)) * 2
		vector.StrokeCircle(screen, cx, cy, radius+lift, 1, cfg.White, true)
	}

	fx := float32(-math.Sin(snap.Facing)) * radius * 1.6
	fy := float32(-math.Cos(snap.Facing)) * radius * 1.6
	vector.StrokeLine(screen, cx, cy, cx+fx, cy+fy, 2, cfg.White, true)

	label := string(snap.Animation)
	if snap.Weight < 1 {
		label = fmt.Sprintf("%s<%s %.0f%%", snap.Animation, snap.Previous, snap.Weight*100)
	}
	text.Draw(screen, label, fonts.Label.Get(), int(cx)-len(label)*3, int(cy-radius)-6, cfg.White)
}

// DrawGhost draws a remote avatar, translucent, with its name.
func DrawGhost(screen *ebiten.Image, v View, x, z, facing float64, name string) {
	radius := float32(cfg.Player.CapsuleRadius * v.PixelsPerUnit)
	cx, cy := v.ToScreen(x, z)

	vector.DrawFilledCircle(screen, cx, cy, radius, cfg.Ghost, true)
	fx := float32(-math.Sin(facing)) * radius * 1.4
	fy := float32(-math.Cos(facing)) * radius * 1.4
	vector.StrokeLine(screen, cx, cy, cx+fx, cy+fy, 1, color.RGBA{255, 255, 255, 160}, true)

	if name != "" {
		text.Draw(screen, name, fonts.Label.Get(), int(cx)-len(name)*3, int(cy-radius)-4, cfg.White)
	}
}
