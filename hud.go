package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/tokenduel/combat"
	"github.com/milk9111/tokenduel/common"
	"github.com/milk9111/tokenduel/token"
)

const (
	lineHeight = 16
	columnW    = 360
	barW       = 300
	barH       = 14
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, hudFace, op)
}

func drawHUD(screen *ebiten.Image, snap combat.Snapshot, bars [2]float32, history []string) {
	screen.Fill(color.RGBA{R: 0x1a, G: 0x1a, B: 0x22, A: 0xff})

	drawActor(screen, snap.Actors[combat.First], snap.State, bars[combat.First], 40)
	drawActor(screen, snap.Actors[combat.Second], snap.State, bars[combat.Second], common.BaseWidth-40-columnW)

	drawText(screen, statusLine(snap), common.BaseWidth/2-160, 24, colornames.White)

	y := 320.0
	drawText(screen, "Combat log", 40, y, colornames.Lightgrey)
	for _, line := range history {
		y += lineHeight
		drawText(screen, line, 40, y, colornames.Gainsboro)
	}

	drawText(screen, "[1-9] act   [P] pass   [R] restart", 40, common.BaseHeight-panelHeight-24, colornames.Gray)
}

func drawActor(screen *ebiten.Image, v combat.ActorView, st combat.State, bar float32, x float32) {
	y := float32(60)
	title := v.Name
	if v.Side == st.Side && !v.Defeated {
		title = "> " + title
	}
	if v.Defeated {
		title += " (defeated)"
	}
	drawText(screen, title, float64(x), float64(y), colornames.White)

	y += lineHeight + 4
	vector.FillRect(screen, x, y, barW, barH, colornames.Darkslategray, false)
	vector.FillRect(screen, x, y, barW*bar, barH, colornames.Firebrick, false)
	vector.StrokeRect(screen, x, y, barW, barH, 1, colornames.Lightgrey, false)

	y += barH + 8
	drawText(screen, fmt.Sprintf("Actions left: %d", v.Remaining), float64(x), float64(y), colornames.Lightgrey)
	for _, tc := range v.Tokens {
		y += lineHeight
		drawText(screen, fmt.Sprintf("%-12s %d/%d", tc.Kind, tc.Count, tc.Capacity), float64(x), float64(y), tokenColor(tc.Kind))
	}
	for _, tr := range v.Triggers {
		y += lineHeight
		drawText(screen, tr, float64(x), float64(y), colornames.Slategray)
	}
}

func statusLine(snap combat.Snapshot) string {
	if snap.Outcome.Finished {
		if snap.Outcome.Draw {
			return "Draw. Press R for a rematch"
		}
		return fmt.Sprintf("%s wins. Press R for a rematch", snap.Actors[snap.Outcome.Winner].Name)
	}
	return fmt.Sprintf("Round %d  %s  (%s to act)", snap.Round, snap.State, snap.Actors[snap.State.Side].Name)
}

func tokenColor(k token.Kind) color.Color {
	switch {
	case k == token.Health:
		return colornames.Lightcoral
	case k == token.Damage:
		return colornames.Orangered
	case k.IsResource():
		return colornames.Lightgreen
	default:
		return colornames.Khaki
	}
}

func healthFraction(v combat.ActorView) float32 {
	for _, tc := range v.Tokens {
		if tc.Kind == token.Health {
			return common.Fraction(tc.Count, tc.Capacity)
		}
	}
	return 0
}
