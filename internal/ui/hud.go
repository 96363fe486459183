//go:build ebiten

package ui

import (
	"image/color"

	"turmites/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding   = 10
	headerBaseline = 12
	lineHeight     = 16
	sectionGap     = 8
)

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
)

// HUD renders the run parameters and the live machine status in a panel to
// the right of the grid view.
type HUD struct {
	title    string
	snapshot core.ParameterSnapshot
	status   []string
	width    int
	panel    *ebiten.Image
}

// NewHUD constructs a HUD for the provided panel width. title is wrapped to
// the panel width; the rule table is usually far wider.
func NewHUD(title string, snapshot core.ParameterSnapshot, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{title: title, snapshot: snapshot, width: width}
}

// Update replaces the status lines.
func (h *HUD) Update(status []string) {
	if h == nil {
		return
	}
	h.status = status
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	for _, line := range wrap(h.title, (h.width-2*panelPadding)/face.Advance) {
		text.Draw(h.panel, line, face, panelPadding, y, titleColor)
		y += lineHeight
	}
	y += sectionGap
	for _, group := range h.snapshot.Groups {
		for _, p := range group.Params {
			drawPair(h.panel, face, p.Label, p.Display(), y, h.width)
			y += lineHeight
		}
		y += sectionGap
	}
	for _, line := range h.status {
		text.Draw(h.panel, line, face, panelPadding, y, labelColor)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func drawPair(dst *ebiten.Image, face font.Face, label, value string, y, width int) {
	text.Draw(dst, label, face, panelPadding, y, dimColor)
	w := text.BoundString(face, value).Dx()
	text.Draw(dst, value, face, width-panelPadding-w, y, labelColor)
}

func wrap(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	var lines []string
	for len(s) > n {
		lines = append(lines, s[:n])
		s = s[n:]
	}
	return append(lines, s)
}
