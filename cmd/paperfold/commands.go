package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"paper-fold-renderer/internal/batch"
	"paper-fold-renderer/internal/config"
	"paper-fold-renderer/internal/fold"
	"paper-fold-renderer/internal/imageio"
	"paper-fold-renderer/internal/raster"
)

var (
	extentFlag float64
	framesFlag int

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render one frame at the configured angle or unfold extent",
		RunE:  runRender,
	}

	animateCmd = &cobra.Command{
		Use:   "animate",
		Short: "Render an angle sweep and write manifest.json",
		RunE:  runAnimate,
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Print strips, joints, shadows and footprint",
		RunE:  runInspect,
	}

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Find the fold angle for a target unfold extent",
		RunE:  runSolve,
	}
)

func init() {
	renderCmd.Flags().Float64Var(&extentFlag, "extent", 0, "Solve for this unfold extent in points instead of using --angle")
	animateCmd.Flags().IntVar(&framesFlag, "frames", 0, "Number of frames in the sweep")
	solveCmd.Flags().Float64Var(&extentFlag, "extent", 0, "Target unfold extent in points")
	if err := solveCmd.MarkFlagRequired("extent"); err != nil {
		panic(err)
	}
}

func newEngine(cfg config.Config) (*fold.Engine, error) {
	dir, err := cfg.FoldDirection()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, fold.WithInitialAngle(cfg.Angle))
	return fold.New(imageio.Capture(cfg.Input, cfg.Scale, fold.OrientationUp), cfg.Joints, dir, opts...)
}

func renderOptions(cfg config.Config) raster.Options {
	return raster.Options{Scale: cfg.OutputScale, Supersample: cfg.Supersample}
}

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, 0)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("extent") {
		target := extentFlag
		cfg.UnfoldExtent = &target
	}

	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	if cfg.UnfoldExtent != nil {
		if err := e.SetUnfoldExtent(*cfg.UnfoldExtent); err != nil {
			if !errors.Is(err, fold.ErrNonConvergence) {
				return err
			}
			fmt.Fprintf(os.Stderr, "Warning: %v; rendering the closest angle\n", err)
		}
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}
	img := batch.Compose(e, renderOptions(cfg), cfg.Crop)
	outPath := filepath.Join(cfg.OutputDir, stem(cfg.Input)+format.Ext())
	if err := imageio.Save(outPath, img, format); err != nil {
		return err
	}

	fmt.Printf("Angle: %.3f°, footprint: %s\n", e.Angle(), e.Footprint())
	fmt.Printf("Output: %s (%dx%d)\n", outPath, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, framesFlag)
	if err != nil {
		return err
	}
	dir, err := cfg.FoldDirection()
	if err != nil {
		return err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	// Decode once; workers share the pixels read-only.
	src, err := imageio.Load(cfg.Input)
	if err != nil {
		return err
	}

	angles := batch.Angles(cfg.StartAngle, cfg.EndAngle, cfg.Frames)
	fmt.Printf("Paper fold sweep: %s, %d joints, %s\n", filepath.Base(cfg.Input), cfg.Joints, dir)
	fmt.Printf("Frames: %d (%.1f° → %.1f°), Workers: %d\n", len(angles), cfg.StartAngle, cfg.EndAngle, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		Source:    fold.RasterImage{Pixels: src, Scale: cfg.Scale, Orientation: fold.OrientationUp},
		Joints:    cfg.Joints,
		Direction: dir,
		Options:   opts,
		Render:    renderOptions(cfg),
		Crop:      cfg.Crop,
		Format:    format,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Progress:  os.Stdout,
	}
	results := batch.Run(batchCfg, angles)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), len(results))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, r := range failed[:min(len(failed), 20)] {
			fmt.Printf("  frame %d (%.1f°): %s\n", r.Frame, r.Angle, r.Error)
		}
	}

	// Write manifest
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	manifest := batch.NewManifest(batchCfg, cfg.Input, cfg.Perspective, results)
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d frames failed", len(failed), len(results))
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, 0)
	if err != nil {
		return err
	}
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}

	src := e.Source()
	fmt.Printf("Source: %s (%dx%d px, scale %g)\n", cfg.Input,
		src.Pixels.Bounds().Dx(), src.Pixels.Bounds().Dy(), src.Scale)
	fmt.Printf("Direction: %s, layout: %s\n", e.Direction(), e.Layout())
	fmt.Printf("Container: %s, perspective: %g\n", e.Container().Size(), e.PerspectiveDistance())
	fmt.Printf("Angle: %g°, footprint: %s\n", e.Angle(), e.Footprint())

	fmt.Printf("\nStrips (%d):\n", e.StripCount())
	for _, s := range e.Strips() {
		fmt.Printf("  #%d  source %v  size %s\n", s.Index, s.Source, s.Size())
	}

	joints := e.Joints()
	fmt.Printf("\nJoints (%d):\n", len(joints))
	for _, j := range joints {
		shadow := "-"
		if j.HasShadow {
			shadow = fmt.Sprintf("%.3f", j.ShadowOpacity)
		}
		fmt.Printf("  #%d  parent %2d  strip %d  anchor (%g, %g)  position (%g, %g)  angle %g°  shadow %s\n",
			j.Index, j.Parent, j.Content.Index,
			j.Anchor.X, j.Anchor.Y, j.Position.X, j.Position.Y,
			fold.JointAngle(j.Index, e.Angle()), shadow)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, 0)
	if err != nil {
		return err
	}
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}

	res, err := fold.Solve(e, extentFlag, e.SolverOptions())
	fmt.Printf("Target: %g, extent: %.4f, angle: %.4f°, iterations: %d (%s)\n",
		extentFlag, res.Extent, res.Angle, res.Iterations, e.SolverOptions().Strategy)
	return err
}
