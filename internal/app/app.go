//go:build ebiten

package app

import (
	"fmt"
	"image/color"

	"turmites/internal/core"
	"turmites/internal/render"
	"turmites/internal/rules"
	"turmites/internal/sim"
	"turmites/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

// Game adapts a turmite replay to the ebiten.Game interface.
type Game struct {
	sim     *sim.Simulator
	rule    rules.Rule
	painter *render.GridPainter
	hud     *ui.HUD
	palette []color.RGBA

	scale         int
	stepsPerFrame int
	paused        bool
	tickOnce      bool
	width         int
	height        int
	// drawErr is set by Draw and returned by the next Update.
	drawErr error
}

// New constructs a Game replaying rule on s. s must already hold the rule.
func New(s *sim.Simulator, rule rules.Rule, cfg Config, params core.ParameterSnapshot) *Game {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.StepsPerFrame <= 0 {
		cfg.StepsPerFrame = 1
	}
	painter := render.NewGridPainter(s.Topology(), cfg.CellSize)
	w, h := painter.Size(s.Grid())
	return &Game{
		sim:           s,
		rule:          rule,
		painter:       painter,
		hud:           ui.NewHUD(rules.Format(rule, s.Topology()), params, hudWidth),
		palette:       render.Grayscale(rule.Colors),
		scale:         cfg.Scale,
		stepsPerFrame: cfg.StepsPerFrame,
		width:         w * cfg.Scale,
		height:        h * cfg.Scale,
	}
}

// Size returns the window size including the HUD panel.
func (g *Game) Size() (int, int) { return g.width + hudWidth, g.height }

// Reset restarts the machine from a blank grid.
func (g *Game) Reset() {
	g.sim.Reset(g.rule)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the machine.
func (g *Game) Update() error {
	if g.drawErr != nil {
		return fmt.Errorf("drawing grid: %w", g.drawErr)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.stepsPerFrame *= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && g.stepsPerFrame > 1 {
		g.stepsPerFrame /= 2
	}

	if !g.paused || g.tickOnce {
		n := g.stepsPerFrame
		if g.tickOnce {
			n = 1
		}
		for i := 0; i < n && g.sim.Step() == sim.Running; i++ {
		}
		g.tickOnce = false
	}
	g.hud.Update(StatusLines(g.sim))
	return nil
}

// Draw renders the grid and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette[0])
	if err := g.painter.Blit(screen, g.sim.Grid(), g.palette, g.scale); err != nil && g.drawErr == nil {
		g.drawErr = err
	}
	g.hud.Draw(screen, g.width, g.height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}
