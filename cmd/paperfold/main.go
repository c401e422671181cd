package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"paper-fold-renderer/internal/config"
	"paper-fold-renderer/internal/fold"
)

var (
	configFlag      string
	verboseFlag     bool
	inputFlag       string
	outputFlag      string
	jointsFlag      int
	directionFlag   string
	angleFlag       float64
	perspectiveFlag float64
	formatFlag      string
	supersampleFlag int
	workersFlag     int

	rootCmd = &cobra.Command{
		Use:   "paperfold",
		Short: "Render an image folded like a paper accordion",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verboseFlag {
				level = slog.LevelDebug
			}
			fold.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFlag, "config", "c", "", "Path to config.json file")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug records to stderr")
	pf.StringVarP(&inputFlag, "input", "i", "", "Source image (png, jpeg, gif, tga, webp, bmp, tiff)")
	pf.StringVarP(&outputFlag, "output", "o", "", "Output directory (default: renders)")
	pf.IntVarP(&jointsFlag, "joints", "n", 0, "Number of fold joints (default: 3)")
	pf.StringVarP(&directionFlag, "direction", "d", "", "Fold direction: left-to-right, right-to-left, top-to-bottom, bottom-to-top")
	pf.Float64VarP(&angleFlag, "angle", "a", 0, "Fold angle in degrees")
	pf.Float64Var(&perspectiveFlag, "perspective", 0, "Eye distance of the projection (default: 700)")
	pf.StringVar(&formatFlag, "format", "", "Output format: webp or png (default: webp)")
	pf.IntVar(&supersampleFlag, "supersample", 0, "Render at this multiple and downsample (default: 2)")
	pf.IntVarP(&workersFlag, "workers", "w", 0, "Number of worker goroutines (default: NumCPU)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(animateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(solveCmd)
}

// loadConfig reads the optional config file, applies flag overrides and
// validates the result.
func loadConfig(cmd *cobra.Command, frames int) (config.Config, error) {
	var cfg config.Config
	if configFlag != "" {
		var err error
		cfg, err = config.Load(configFlag)
		if err != nil {
			return cfg, err
		}
	}

	flags := config.Flags{
		Input:       inputFlag,
		OutputDir:   outputFlag,
		Joints:      jointsFlag,
		Direction:   directionFlag,
		Perspective: perspectiveFlag,
		Frames:      frames,
		Format:      formatFlag,
		Supersample: supersampleFlag,
		Workers:     workersFlag,
	}
	if cmd.Flags().Changed("angle") {
		angle := angleFlag
		flags.Angle = &angle
	}
	cfg.Resolve(flags)

	if cfg.Input == "" {
		return cfg, fmt.Errorf("no input image; use --input or config.json")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
