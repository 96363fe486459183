package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"turmites/internal/core"
)

// ErrUnsupported reports a topology the rasterizer cannot draw.
var ErrUnsupported = errors.New("render: unsupported topology")

// Default cell sizes in pixels.
const (
	SquareCell = 4
	HexSide    = 20
	TriBase    = 30
)

// DefaultCellSize returns the cell size used when none is configured.
func DefaultCellSize(topo core.Topology) int {
	switch topo.Name() {
	case "hex":
		return HexSide
	case "tri":
		return TriBase
	}
	return SquareCell
}

// Image draws the central plane of grid as topo lays it out. cellSize is
// the square edge, the hexagon side or the triangle base.
func Image(topo core.Topology, grid *core.Grid, palette []color.RGBA, cellSize int) (*image.RGBA, error) {
	if cellSize <= 0 {
		cellSize = DefaultCellSize(topo)
	}
	switch topo.Name() {
	case "square":
		return squareImage(grid, palette, cellSize), nil
	case "hex":
		if grid.Dim != 2 {
			break
		}
		return polygonImage(grid, palette, hexLayout(cellSize, grid.Side)), nil
	case "tri":
		if grid.Dim != 2 {
			break
		}
		return polygonImage(grid, palette, triLayout(cellSize, grid.Side)), nil
	}
	return nil, fmt.Errorf("%w: %s %dD", ErrUnsupported, topo.Name(), grid.Dim)
}

func squareImage(grid *core.Grid, palette []color.RGBA, cell int) *image.RGBA {
	w, h, cells := grid.Plane()
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPlaneRGBA(small.Pix, cells, w, h, palette)
	if cell == 1 {
		return small
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*cell, h*cell))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return dst
}

// layout places the polygon of cell (x, y) on the image.
type layout struct {
	width, height int
	polygon       func(x, y int, pts [][2]float32) [][2]float32
}

func hexLayout(side, n int) layout {
	s := float32(side)
	h := s * float32(math.Sqrt(3)) / 2
	corners := [6][2]float32{{0, -s}, {h, -s / 2}, {h, s / 2}, {0, s}, {-h, s / 2}, {-h, -s / 2}}
	return layout{
		width:  int(math.Ceil(float64(3*h*float32(n-1) + 2*h))),
		height: int(math.Ceil(float64(1.5*s*float32(n-1) + 2*s))),
		polygon: func(x, y int, pts [][2]float32) [][2]float32 {
			cx := float32(x)*h*2 + h*float32(y) + h
			cy := float32(y)*s*1.5 + s
			for _, c := range corners {
				pts = append(pts, [2]float32{cx + c[0], cy + c[1]})
			}
			return pts
		},
	}
}

func triLayout(base, n int) layout {
	b := float32(base)
	h := b * float32(math.Sqrt(3)) / 2
	return layout{
		width:  int(math.Ceil(float64(b / 2 * float32(n+1)))),
		height: int(math.Ceil(float64(h * float32(n)))),
		polygon: func(x, y int, pts [][2]float32) [][2]float32 {
			left := b / 2 * float32(x)
			mid := left + b/2
			right := left + b
			top := float32(y) * h
			bottom := top + h
			if (x+y)%2 == 0 {
				return append(pts, [2]float32{left, bottom}, [2]float32{right, bottom}, [2]float32{mid, top})
			}
			return append(pts, [2]float32{left, top}, [2]float32{right, top}, [2]float32{mid, bottom})
		},
	}
}

// polygonImage paints the background with color 0, then fills the cells of
// each other color in one rasterizer pass.
func polygonImage(grid *core.Grid, palette []color.RGBA, l layout) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	if len(palette) == 0 {
		return dst
	}
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(palette[0]), image.Point{}, xdraw.Src)
	w, h, cells := grid.Plane()
	last := len(palette) - 1
	z := vector.NewRasterizer(l.width, l.height)
	pts := make([][2]float32, 0, 6)
	for c := 1; c <= last; c++ {
		z.Reset(l.width, l.height)
		found := false
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				v := int(cells[x*h+y])
				if v > last {
					v = last
				}
				if v != c {
					continue
				}
				found = true
				pts = l.polygon(x, y, pts[:0])
				z.MoveTo(pts[0][0], pts[0][1])
				for _, p := range pts[1:] {
					z.LineTo(p[0], p[1])
				}
				z.ClosePath()
			}
		}
		if found {
			z.Draw(dst, dst.Bounds(), image.NewUniform(palette[c]), image.Point{})
		}
	}
	return dst
}
