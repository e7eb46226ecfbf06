package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line
type options struct {
	scene    string
	out      string
	samples  int
	depth    int
	workers  int
	tileSize int
	seed     int64
	bias     float64
	quiet    bool
	list     bool
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	errLog := log.New(stderr, "", 0)

	flags := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	defaults := renderer.DefaultSamplingConfig()
	flags.StringVar(&opts.scene, "scene", "default", "Built-in scene ID or path to a .json scene file")
	flags.StringVar(&opts.out, "out", "", "Output PNG path (default output/<scene>-<spp>spp-<timestamp>.png)")
	flags.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = use the scene's num_samples)")
	flags.IntVar(&opts.depth, "depth", defaults.MaxDepth, "Maximum ray bounce depth")
	flags.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count, 1 = sequential)")
	flags.IntVar(&opts.tileSize, "tile", defaults.TileSize, "Tile size in pixels for parallel rendering")
	flags.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed")
	flags.Float64Var(&opts.bias, "bias", 1.0, "Exposure multiplier applied before sRGB conversion")
	flags.BoolVar(&opts.quiet, "quiet", false, "Do not draw the progress bar")
	flags.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	help := flags.Bool("help", false, "Show help information")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *help {
		printHelp(stdout, flags)
		return 0
	}

	if opts.list {
		if err := listScenes(stdout); err != nil {
			errLog.Printf("Error listing scenes: %v", err)
			return 1
		}
		return 0
	}

	// A positional argument names a scene file, like `raytracer scene.json`
	if flags.NArg() > 0 {
		opts.scene = flags.Arg(0)
	}

	if err := render(opts, stdout); err != nil {
		errLog.Printf("Error: %v", err)
		return 1
	}
	return 0
}

func render(opts options, stdout io.Writer) error {
	logger := renderer.NewWriterLogger(stdout)

	logger.Printf("Reading scene: %s\n", opts.scene)
	selectedScene, name, err := createScene(opts.scene)
	if err != nil {
		return err
	}

	raytracer := renderer.NewRaytracer(selectedScene, renderer.SamplingConfig{
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
		Seed:            opts.seed,
		NumWorkers:      opts.workers,
		TileSize:        opts.tileSize,
	}, logger)
	config := raytracer.Config()

	outPath := opts.out
	if outPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outPath = filepath.Join("output", fmt.Sprintf("%s-%dspp-%s.png", name, config.SamplesPerPixel, timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	// The progress bar only observes; rendering never waits on it
	ctx, cancel := context.WithCancel(context.Background())
	reporterDone := make(chan struct{})
	if opts.quiet {
		close(reporterDone)
	} else {
		go func() {
			defer close(reporterDone)
			raytracer.Progress().Report(ctx, 500*time.Millisecond, renderer.NewConsoleProgressBar(logger))
		}()
	}

	img, stats := raytracer.Render()
	cancel()
	<-reporterDone

	logger.Printf("Render completed in %v\n", stats.Duration.Round(time.Millisecond))
	logger.Printf("Samples per pixel: %d (%d samples, %d tiles)\n", stats.SamplesPerPixel, stats.TotalSamples, stats.Tiles)

	if err := img.SavePNG(outPath, opts.bias); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", outPath)
	return nil
}

// createScene resolves a built-in scene ID or a .json file path and returns
// the scene with a short name for output files
func createScene(sceneType string) (*scene.Scene, string, error) {
	if sceneType == "" {
		return nil, "", fmt.Errorf("no scene given")
	}

	if strings.HasSuffix(strings.ToLower(sceneType), ".json") || strings.ContainsAny(sceneType, `/\`) {
		s, err := loaders.LoadSceneFile(sceneType)
		if err != nil {
			return nil, "", err
		}
		base := filepath.Base(sceneType)
		return s, strings.TrimSuffix(base, filepath.Ext(base)), nil
	}

	s, err := scene.NewBuiltinScene(sceneType)
	if err != nil {
		return nil, "", fmt.Errorf("%w (use -list to see available scenes)", err)
	}
	return s, sceneType, nil
}

func listScenes(w io.Writer) error {
	groups, err := scene.ListAllScenes("scenes")
	if err != nil {
		return err
	}

	for _, group := range groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			id := info.ID
			if info.FilePath != "" {
				id = info.FilePath
			}
			if info.Description != "" {
				fmt.Fprintf(w, "  %-24s %s - %s\n", id, info.DisplayName, info.Description)
			} else {
				fmt.Fprintf(w, "  %-24s %s\n", id, info.DisplayName)
			}
		}
	}
	return nil
}

func printHelp(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(w, "Recursive Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options] [scene.json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flags.SetOutput(w)
	flags.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run with -list to see the built-in scenes and scene files under scenes/.")
}
