package render

import (
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"turmites/internal/core"
)

// Exporter writes a PNG snapshot of every grid handed to Render.
type Exporter struct {
	topo     core.Topology
	dir      string
	states   int
	colors   int
	cellSize int
	palette  []color.RGBA
}

// NewExporter checks that topo can be drawn and prepares the palette.
func NewExporter(topo core.Topology, dir string, states, colors, cellSize int) (*Exporter, error) {
	switch topo.Name() {
	case "square":
	case "hex", "tri":
		if topo.Dim() != 2 {
			return nil, fmt.Errorf("%w: %s %dD", ErrUnsupported, topo.Name(), topo.Dim())
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, topo.Name())
	}
	if cellSize <= 0 {
		cellSize = DefaultCellSize(topo)
	}
	return &Exporter{
		topo:     topo,
		dir:      dir,
		states:   states,
		colors:   colors,
		cellSize: cellSize,
		palette:  Grayscale(colors),
	}, nil
}

// FileName returns the snapshot name for a machine with the given record.
func (e *Exporter) FileName(steps, population int) string {
	return fmt.Sprintf("%s_%d-%d_%dsteps_%dcells.png", e.topo.Name(), e.states, e.colors, steps, population)
}

// Render writes the snapshot of grid into the exporter's directory.
func (e *Exporter) Render(grid *core.Grid, steps, population int) (err error) {
	img, err := Image(e.topo, grid, e.palette, e.cellSize)
	if err != nil {
		return err
	}
	path := filepath.Join(e.dir, e.FileName(steps, population))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
