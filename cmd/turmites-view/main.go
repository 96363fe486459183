//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strconv"

	"turmites/internal/app"
	"turmites/internal/core"
	_ "turmites/internal/grids/hex"
	_ "turmites/internal/grids/square"
	_ "turmites/internal/grids/tri"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	s, rule, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}
	params := core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "machine",
		Params: []core.Parameter{
			{Key: "topology", Label: "Topology", Type: core.ParamTypeString, Value: s.Topology().Name()},
			{Key: "states", Label: "States", Type: core.ParamTypeInt, Value: strconv.Itoa(rule.States)},
			{Key: "colors", Label: "Colors", Type: core.ParamTypeInt, Value: strconv.Itoa(rule.Colors)},
			{Key: "radius", Label: "Radius", Type: core.ParamTypeInt, Value: strconv.Itoa(cfg.Radius)},
		},
	}}}

	game := app.New(s, rule, cfg, params)
	w, h := game.Size()

	ebiten.SetWindowTitle("turmites - " + s.Topology().Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
