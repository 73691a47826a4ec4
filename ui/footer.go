package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/automoto/avatarsync/config"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Footer is the bar along the bottom of the window: connection status, the
// server address, connect and disconnect, and the control mode buttons.
type Footer struct {
	UI *ebitenui.UI

	OnConnect    func(address string)
	OnDisconnect func()
	OnMode       func(mode config.ControlModeID)

	addressInput *widget.TextInput
	statusLabel  *widget.Label
	connectBtn   *widget.Button
	disconnBtn   *widget.Button
	modeBtns     map[config.ControlModeID]*widget.Button

	normalFace text.Face
	smallFace  text.Face
}

func NewFooter(address string) *Footer {
	f := &Footer{modeBtns: make(map[config.ControlModeID]*widget.Button)}
	f.loadFonts()
	f.buildUI(address)
	return f
}

func (f *Footer) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to load UI font: %v", err)
	}

	f.normalFace = &text.GoTextFace{Source: fontSource, Size: 12}
	f.smallFace = &text.GoTextFace{Source: fontSource, Size: 10}
}

func (f *Footer) buildUI(address string) {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	padding := widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 230})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(config.C.Width, config.UI.FooterHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)

	f.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("disconnected", &f.smallFace, &widget.LabelColor{
			Idle: color.RGBA{255, 200, 100, 255},
		}),
	)
	bar.AddChild(f.statusLabel)

	f.addressInput = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 22)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{50, 50, 70, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 50, 255}),
		}),
		widget.TextInputOpts.Face(&f.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(config.Net.ServerAddress),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
	f.addressInput.SetText(address)
	bar.AddChild(f.addressInput)

	f.connectBtn = f.button("Connect", color.RGBA{40, 100, 40, 255}, color.RGBA{60, 140, 60, 255}, func() {
		if f.OnConnect != nil {
			f.OnConnect(f.address())
		}
	})
	bar.AddChild(f.connectBtn)

	f.disconnBtn = f.button("Disconnect", color.RGBA{100, 40, 40, 255}, color.RGBA{140, 60, 60, 255}, func() {
		if f.OnDisconnect != nil {
			f.OnDisconnect()
		}
	})
	f.disconnBtn.GetWidget().Disabled = true
	bar.AddChild(f.disconnBtn)

	for _, mode := range config.ControlModes {
		mode := mode
		btn := f.button(config.ControlModeLabels[mode], color.RGBA{60, 60, 80, 255}, color.RGBA{80, 80, 120, 255}, func() {
			if f.OnMode != nil {
				f.OnMode(mode)
			}
		})
		f.modeBtns[mode] = btn
		bar.AddChild(btn)
	}

	rootContainer.AddChild(bar)
	f.UI = &ebitenui.UI{Container: rootContainer}
}

func (f *Footer) button(label string, idle, hover color.RGBA, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(80, 24)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(idle),
			Hover:    image.NewNineSliceColor(hover),
			Pressed:  image.NewNineSliceColor(idle),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 40, 255}),
		}),
		widget.ButtonOpts.Text(label, &f.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{220, 220, 255, 255},
			Pressed:  color.RGBA{180, 180, 200, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (f *Footer) address() string {
	addr := f.addressInput.GetText()
	if addr == "" {
		return config.Net.ServerAddress
	}
	return addr
}

func (f *Footer) SetStatus(msg string) {
	if f.statusLabel != nil {
		f.statusLabel.Label = msg
	}
}

// SetConnected toggles which of connect and disconnect is available.
func (f *Footer) SetConnected(connected bool) {
	f.connectBtn.GetWidget().Disabled = connected
	f.addressInput.GetWidget().Disabled = connected
	f.disconnBtn.GetWidget().Disabled = !connected
}

// SetMode disables the button of the active control mode.
func (f *Footer) SetMode(active config.ControlModeID) {
	for mode, btn := range f.modeBtns {
		btn.GetWidget().Disabled = mode == active
	}
}

func (f *Footer) Update() {
	f.UI.Update()
}
