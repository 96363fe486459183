package search

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"turmites/internal/ctxlog"
)

// fileConfig mirrors Config for HCL decoding. Absent attributes stay nil and
// leave the base configuration untouched.
type fileConfig struct {
	Topology   *string `hcl:"topology,optional"`
	Dim        *int    `hcl:"dim,optional"`
	Relative   *bool   `hcl:"relative,optional"`
	States     *int    `hcl:"states,optional"`
	Colors     *int    `hcl:"colors,optional"`
	Radius     *int    `hcl:"radius,optional"`
	MaxSteps   *int    `hcl:"max_steps,optional"`
	PrintEvery *int    `hcl:"print_every,optional"`
	Prune      *bool   `hcl:"prune,optional"`
	OutputDir  *string `hcl:"out_dir,optional"`
	Images     *bool   `hcl:"images,optional"`
	CellSize   *int    `hcl:"cell_size,optional"`
}

// LoadFile decodes an HCL file such as
//
//	topology  = "hex"
//	relative  = true
//	states    = 2
//	colors    = 3
//	max_steps = 60000
//
// on top of base.
func LoadFile(ctx context.Context, path string, base Config) (Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding search config file.", "path", path)
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}
	cfg, err := decode(file, base)
	if err != nil {
		return base, fmt.Errorf("failed to decode HCL file %s: %w", path, err)
	}
	logger.Debug("Successfully decoded search config file.", "path", path)
	return cfg, nil
}

// ParseHCL decodes HCL source held in memory; filename is used in diagnostics.
func ParseHCL(src []byte, filename string, base Config) (Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse HCL %s: %s", filename, diags.Error())
	}
	return decode(file, base)
}

func decode(file *hcl.File, base Config) (Config, error) {
	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return base, fmt.Errorf("%w: %s", ErrConfig, diags.Error())
	}
	cfg := base
	setString(&cfg.Topology, fc.Topology)
	setInt(&cfg.Dim, fc.Dim)
	setBool(&cfg.Relative, fc.Relative)
	setInt(&cfg.States, fc.States)
	setInt(&cfg.Colors, fc.Colors)
	setInt(&cfg.Radius, fc.Radius)
	setInt(&cfg.MaxSteps, fc.MaxSteps)
	setInt(&cfg.PrintEvery, fc.PrintEvery)
	setBool(&cfg.Prune, fc.Prune)
	setString(&cfg.OutputDir, fc.OutputDir)
	setBool(&cfg.Images, fc.Images)
	setInt(&cfg.CellSize, fc.CellSize)
	return cfg, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
