package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"github.com/gravitas-games/hexgeom/internal/config"
	"github.com/gravitas-games/hexgeom/pkg/grid"
	"github.com/gravitas-games/hexgeom/pkg/hex"
	"github.com/gravitas-games/hexgeom/pkg/render"
)

const defaultConfigPath = "./configs/hexgrid.yaml"

// maxRadius caps disk radii; a disk of radius r holds 3r(r+1)+1 cells.
const maxRadius = 500

var errUsage = errors.New("usage: hexgrid [-config file] project|corners|nearest|disk|flood|query|render ...")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("hexgrid failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("hexgrid", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	fs.StringVar(&configPath, "config", configPath, "path to YAML config")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	lvl, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	layout, err := cfg.BuildLayout()
	if err != nil {
		return fmt.Errorf("building layout: %w", err)
	}
	slog.Debug("layout ready", "layout", layout.String(), "config", configPath)

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}
	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "project":
		return cmdProject(layout, cmdArgs, out)
	case "corners":
		return cmdCorners(layout, cmdArgs, out)
	case "nearest":
		return cmdNearest(layout, cmdArgs, out)
	case "disk":
		return cmdDisk(cmdArgs, out)
	case "flood":
		return cmdFlood(layout, cmdArgs, out)
	case "query":
		return cmdQuery(ctx, layout, cfg, cmdArgs, out)
	case "render":
		return cmdRender(ctx, layout, cfg, cmdArgs, out)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: want %d numbers, got %d", errUsage, n, len(args))
	}
	vals := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", errUsage, a)
		}
		vals[i] = v
	}
	return vals, nil
}

func checkRadius(r float64) (int, error) {
	if r != math.Trunc(r) || r < 0 || r > maxRadius {
		return 0, fmt.Errorf("%w: radius %v must be a whole number in [0, %d]", errUsage, r, maxRadius)
	}
	return int(r), nil
}

func formatVec(v mgl64.Vec2) string {
	return strconv.FormatFloat(v.X(), 'f', 4, 64) + " " + strconv.FormatFloat(v.Y(), 'f', 4, 64)
}

func printCells(out io.Writer, cells []hex.Cube) {
	for _, c := range cells {
		fmt.Fprintln(out, c.String())
	}
}

func cmdProject(l grid.Layout, args []string, out io.Writer) error {
	v, err := parseFloats(args, 2)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatVec(l.Project(hex.Round(v[0], v[1]))))
	return nil
}

func cmdCorners(l grid.Layout, args []string, out io.Writer) error {
	v, err := parseFloats(args, 2)
	if err != nil {
		return err
	}
	for _, c := range l.Corners(hex.Round(v[0], v[1])) {
		fmt.Fprintln(out, formatVec(c))
	}
	return nil
}

func cmdNearest(l grid.Layout, args []string, out io.Writer) error {
	v, err := parseFloats(args, 2)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, l.NearestHex(mgl64.Vec2{v[0], v[1]}).String())
	return nil
}

func cmdDisk(args []string, out io.Writer) error {
	v, err := parseFloats(args, 1)
	if err != nil {
		return err
	}
	r, err := checkRadius(v[0])
	if err != nil {
		return err
	}
	printCells(out, hex.Disk(hex.Origin, r))
	return nil
}

func cmdFlood(l grid.Layout, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("flood", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	extend := fs.Bool("extend", false, "add one unconditional border pass")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	v, err := parseFloats(fs.Args(), 4)
	if err != nil {
		return err
	}
	cells, err := l.FloodRect(grid.NewBox(v[0], v[1], v[2], v[3]), *extend)
	if err != nil {
		return err
	}
	printCells(out, cells)
	return nil
}

func cmdQuery(ctx context.Context, l grid.Layout, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	noGrow := fs.Bool("no-grow", false, "return only the seed hexes that pass")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	v, err := parseFloats(fs.Args(), 3)
	if err != nil {
		return err
	}
	opts := cfg.FloodOptions()
	if *noGrow {
		opts = append(opts, grid.WithoutGrowth())
	}
	region, err := l.FloodQueryContext(ctx, grid.WithinRadius(mgl64.Vec2{v[0], v[1]}, v[2]), opts...)
	if err != nil {
		return err
	}
	if region.Truncated() {
		slog.Warn("query result truncated", "reason", region.Stop.String(), "cells", len(region.Cells))
	}
	printCells(out, region.Cells)
	return nil
}

// cmdRender writes the disk under the configured layout and under its
// inverse, one PNG each.
func cmdRender(ctx context.Context, l grid.Layout, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("out", "hexgrid.png", "output PNG path")
	radius := fs.Int("radius", 3, "disk radius around the origin")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if _, err := checkRadius(float64(*radius)); err != nil {
		return err
	}
	cells := hex.Disk(hex.Origin, *radius)

	ext := filepath.Ext(*path)
	targets := map[string]grid.Layout{
		*path: l,
		strings.TrimSuffix(*path, ext) + "-inverse" + ext: l.Inverse(),
	}

	g, gctx := errgroup.WithContext(ctx)
	for p, layout := range targets {
		p, layout := p, layout
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img := render.Draw(layout, cells,
				render.WithPixelsPerUnit(cfg.Render.PixelsPerUnit),
				render.WithPadding(cfg.Render.Padding),
				render.WithLabels(cfg.Render.Labels),
			)
			f, err := os.Create(p)
			if err != nil {
				return fmt.Errorf("creating %s: %w", p, err)
			}
			if err := render.EncodePNG(f, img); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", p, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", p, err)
			}
			slog.Info("rendered", "path", p, "layout", layout.String(), "cells", len(cells))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintln(out, *path)
	return nil
}
