//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"turmites/internal/core"
)

// GridPainter uploads a grid to an ebiten image and draws it scaled.
type GridPainter struct {
	topo     core.Topology
	cellSize int
	img      *ebiten.Image
	buf      []byte
}

// NewGridPainter prepares a painter for grids of topo. Square grids are
// drawn one pixel per cell and scaled by Blit; hex and tri grids are
// rasterized at cellSize.
func NewGridPainter(topo core.Topology, cellSize int) *GridPainter {
	return &GridPainter{topo: topo, cellSize: cellSize}
}

// Size returns the unscaled image size for grid.
func (p *GridPainter) Size(grid *core.Grid) (int, int) {
	if p.topo.Name() == "square" {
		w, h, _ := grid.Plane()
		return w, h
	}
	img, err := Image(p.topo, grid, nil, p.cellSize)
	if err != nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// Blit draws grid onto dst scaled by scale.
func (p *GridPainter) Blit(dst *ebiten.Image, grid *core.Grid, palette []color.RGBA, scale int) error {
	var w, h int
	if p.topo.Name() == "square" {
		var cells []uint8
		w, h, cells = grid.Plane()
		if len(p.buf) != w*h*4 {
			p.buf = make([]byte, w*h*4)
		}
		fillPlaneRGBA(p.buf, cells, w, h, palette)
	} else {
		img, err := Image(p.topo, grid, palette, p.cellSize)
		if err != nil {
			return err
		}
		w, h = img.Bounds().Dx(), img.Bounds().Dy()
		p.buf = img.Pix
	}
	if p.img == nil || p.img.Bounds().Dx() != w || p.img.Bounds().Dy() != h {
		p.img = ebiten.NewImage(w, h)
	}
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
	return nil
}
