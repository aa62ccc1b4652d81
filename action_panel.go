package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tokenduel/combat"
	"github.com/milk9111/tokenduel/common"
)

const panelHeight = 56

// NewActionPanel builds the bottom bar: one button per offer, illegal offers
// disabled, plus a Pass button. choose receives the offer name; pass is
// called for the Pass button.
func NewActionPanel(offers []combat.Offer, enabled bool, choose func(name string), pass func()) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 220})
	btnImg := &widget.ButtonImage{
		Idle:     imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x44, A: 255}),
		Hover:    imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x66, A: 255}),
		Pressed:  imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x33, A: 255}),
		Disabled: imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 180}),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{
		Idle:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Disabled: color.NRGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff},
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth, panelHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)

	newButton := func(label string, legal bool, clicked func()) *widget.Button {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				clicked()
			}),
		)
		btn.GetWidget().Disabled = !enabled || !legal
		return btn
	}

	for i, o := range offers {
		name := o.Name
		panel.AddChild(newButton(offerLabel(i, o), o.Legal, func() { choose(name) }))
	}
	panel.AddChild(newButton("[P] Pass", true, pass))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func offerLabel(i int, o combat.Offer) string {
	label := o.Name
	if i < 9 {
		label = fmt.Sprintf("[%d] %s", i+1, o.Name)
	}
	if o.MissChance > 0 {
		label += fmt.Sprintf(" (%d%% miss)", o.MissChance)
	}
	return label
}
