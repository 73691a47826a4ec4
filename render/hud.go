package render

import (
	"image/color"

	cfg "github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUDLine is one row of HUD text.
type HUDLine struct {
	Text  string
	Color color.Color
}

// DrawHUD draws lines top-left over a translucent panel.
func DrawHUD(screen *ebiten.Image, lines []HUDLine) {
	if len(lines) == 0 {
		return
	}
	face := fonts.HUD.Get()
	lineHeight := face.Metrics().Height.Ceil() + 2
	margin := int(cfg.UI.HUDMargin)

	width := 0
	for _, l := range lines {
		if w := text.BoundString(face, l.Text).Dx(); w > width {
			width = w
		}
	}
	vector.DrawFilledRect(screen, 0, 0,
		float32(width+margin*2), float32(lineHeight*len(lines)+margin*2),
		cfg.BlackOverlay, false)

	for i, l := range lines {
		c := l.Color
		if c == nil {
			c = cfg.White
		}
		text.Draw(screen, l.Text, face, margin, margin+lineHeight*(i+1)-4, c)
	}
}

// DrawJoystick draws the virtual stick while the touch source is active.
func DrawJoystick(screen *ebiten.Image, x, y, radius float32, stickX, stickY float64) {
	vector.StrokeCircle(screen, x, y, radius, 2, cfg.White, true)
	vector.DrawFilledCircle(screen, x+float32(stickX)*radius, y-float32(stickY)*radius, radius/3, cfg.LightBlue, true)
}

// DrawNotices stacks lines at the top centre of the screen.
func DrawNotices(screen *ebiten.Image, lines []string) {
	face := fonts.Status.Get()
	padding := float32(cfg.UI.HUDMargin)
	screenWidth := float32(screen.Bounds().Dx())

	y := padding
	for _, line := range lines {
		bounds := text.BoundString(face, line)
		boxWidth := float32(bounds.Dx()) + padding*2
		boxHeight := float32(bounds.Dy()) + padding*2
		boxX := (screenWidth - boxWidth) / 2

		vector.DrawFilledRect(screen, boxX, y, boxWidth, boxHeight, cfg.BlackOverlay, false)
		text.Draw(screen, line, face, int(boxX+padding), int(y+padding)+bounds.Dy(), cfg.Yellow)
		y += boxHeight + 4
	}
}
