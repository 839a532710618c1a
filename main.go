package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/df07/go-raycaster/pkg/encoder"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType   string
	output      string
	resolution  int
	workers     int
	compression string
	shading     string
	ascii       bool
	logLevel    string
}

func main() {
	var opts options
	flag.StringVar(&opts.sceneType, "scene", "default", "Built-in scene name, scene name under scenes/, or path to a .yaml scene file")
	flag.StringVar(&opts.output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	flag.IntVar(&opts.resolution, "resolution", 0, "Override the camera resolution (square, pixels)")
	flag.IntVar(&opts.workers, "workers", 0, "Render goroutines (0 = one per CPU, 1 = sequential)")
	flag.StringVar(&opts.compression, "compression", "default", "PNG compression: default, none, speed, best")
	flag.StringVar(&opts.shading, "shading", "", "Override the shading model: lambert, angular")
	flag.BoolVar(&opts.ascii, "ascii", false, "Also print an ASCII preview to stdout")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if level, err := zerolog.ParseLevel(opts.logLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("level", opts.logLevel).Msg("unknown log level; using info")
	}

	if err := run(opts, log.Logger); err != nil {
		log.Error().Err(err).Msg("render failed")
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Raycaster")
	fmt.Println("Usage: raycaster [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-14s %s\n", info.ID, info.Description)
	}
	fileScenes, _ := scene.ListFileScenes("scenes")
	for _, info := range fileScenes {
		name := strings.TrimPrefix(info.ID, scene.FileScenePrefix)
		fmt.Printf("  %-14s %s\n", name, info.Description)
	}
	fmt.Println("  <file>.yaml    Scene description file")
}

func run(opts options, logger zerolog.Logger) error {
	var overrides geometry.CameraConfig
	if opts.resolution > 0 {
		overrides.Width, overrides.Height = opts.resolution, opts.resolution
	}

	selectedScene, err := createScene(opts.sceneType, logger, overrides)
	if err != nil {
		return err
	}
	if opts.shading != "" {
		if selectedScene.Shading, err = scene.ParseShadingModel(opts.shading); err != nil {
			return err
		}
	}

	compression, err := encoder.ParseCompression(opts.compression)
	if err != nil {
		return err
	}

	raytracer := renderer.NewRaytracer(selectedScene, renderer.Config{
		NumWorkers: opts.workers,
		Logger:     logger,
	})
	frame, stats, err := raytracer.RenderPass()
	if err != nil {
		return err
	}

	data, err := encoder.EncodeWithOptions(frame, encoder.Options{Compression: compression})
	if err != nil {
		return err
	}

	filename := opts.output
	if filename == "" {
		outputDir := createOutputDir(opts.sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}

	logger.Info().
		Str("file", filename).
		Int("bytes", len(data)).
		Int("workers", stats.Workers).
		Float64("luminance", renderer.CalculateAverageLuminance(frame)).
		Dur("elapsed", stats.Elapsed).
		Msg("render saved")

	if opts.ascii {
		preview, err := encoder.ASCII(frame)
		if err != nil {
			return err
		}
		fmt.Println(preview)
	}
	return nil
}

// createScene resolves a built-in scene, a scene name under scenes/, or a
// path to a YAML scene file
func createScene(sceneType string, logger zerolog.Logger, overrides geometry.CameraConfig) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if scene.IsBuiltin(sceneType) {
		return scene.CreateBuiltin(sceneType, overrides)
	}

	path := sceneType
	if !strings.HasSuffix(path, ".yaml") {
		path = filepath.Join("scenes", sceneType+".yaml")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("unknown scene %q: %w", sceneType, err)
	}
	return loaders.LoadScene(path, logger, overrides)
}

// createOutputDir returns output/<scene base name>
func createOutputDir(sceneType string) string {
	base := filepath.Base(sceneType)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "scene"
	}
	return filepath.Join("output", base)
}
