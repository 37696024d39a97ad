package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// cliConfig holds the parsed command line
type cliConfig struct {
	Scene     string
	SceneFile string
	Width     int
	Samples   int
	Depth     int
	Workers   int
	TileSize  int
	Seed      int64
	Output    string
	Format    string
	Scale     float64
	Verbose   bool
	Help      bool
}

// errHelp is returned by parseFlags when usage was printed
var errHelp = errors.New("help requested")

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, errHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, time.Now()); err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
}

// parseFlags parses args into a cliConfig, writing usage to stderr
func parseFlags(args []string, stderr io.Writer) (cliConfig, error) {
	var cfg cliConfig
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.Scene, "scene", "default", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	fs.StringVar(&cfg.SceneFile, "scene-file", "", "Path to a JSON scene file (overrides -scene)")
	fs.IntVar(&cfg.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&cfg.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&cfg.Depth, "depth", 0, "Maximum ray bounces (0 = scene default)")
	fs.IntVar(&cfg.Workers, "workers", 0, "Parallel workers (0 = CPU count, 1 = sequential)")
	fs.IntVar(&cfg.TileSize, "tile", renderer.DefaultTileSize, "Tile size in pixels")
	fs.Int64Var(&cfg.Seed, "seed", renderer.DefaultSeed, "Base random seed")
	fs.StringVar(&cfg.Output, "output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&cfg.Format, "format", "", "Image format: ppm, png, bmp or tiff (default from -output extension, else ppm)")
	fs.Float64Var(&cfg.Scale, "scale", 1, "Resize factor applied to the saved image")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Sphere Raytracer")
		fmt.Fprintln(stderr, "Usage: raytracer [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Available scenes:")
		for _, info := range scene.BuiltInScenes() {
			fmt.Fprintf(stderr, "  %-8s %s\n", info.ID, info.Description)
		}
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, errHelp
		}
		return cfg, err
	}
	if cfg.Help {
		fs.Usage()
		return cfg, errHelp
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(stderr, err)
		return cfg, err
	}
	return cfg, nil
}

// createScene loads the scene file when one is given, else the named built-in scene
func createScene(name, file string) (*scene.Scene, error) {
	if file != "" {
		return scene.LoadFile(file)
	}
	return scene.Create(name)
}

// resolveOutput picks the output path and format. An explicit format wins,
// then the output file extension, then PPM.
func resolveOutput(cfg cliConfig, sceneName string, now time.Time) (string, output.Format, error) {
	format := output.FormatPPM
	switch {
	case cfg.Format != "":
		f, err := output.ParseFormat(cfg.Format)
		if err != nil {
			return "", "", err
		}
		format = f
	case cfg.Output != "":
		f, err := output.FormatFromPath(cfg.Output)
		if err != nil {
			return "", "", err
		}
		format = f
	}

	path := cfg.Output
	if path == "" {
		timestamp := now.Format("20060102_150405")
		path = filepath.Join("output", sceneName, "render_"+timestamp+format.Extension())
	}
	return path, format, nil
}

// run renders the configured scene and writes it to disk
func run(ctx context.Context, cfg cliConfig, logger *slog.Logger, now time.Time) error {
	s, err := createScene(cfg.Scene, cfg.SceneFile)
	if err != nil {
		return err
	}

	camera, err := s.NewCamera(renderer.CameraConfig{
		ImageWidth:      cfg.Width,
		SamplesPerPixel: cfg.Samples,
		MaxBounces:      cfg.Depth,
	})
	if err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}

	path, format, err := resolveOutput(cfg, s.Name, now)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	logger.Info("rendering",
		"scene", s.Name,
		"objects", s.ObjectCount(),
		"size", fmt.Sprintf("%dx%d", camera.Width(), camera.Height()),
		"samples", camera.SamplesPerPixel(),
		"depth", camera.MaxBounces(),
		"rays", p.Sprintf("%d", camera.Width()*camera.Height()*camera.SamplesPerPixel()))

	rt := renderer.NewRaytracer(s.World, camera,
		renderer.WithWorkers(cfg.Workers),
		renderer.WithTileSize(cfg.TileSize),
		renderer.WithSeed(cfg.Seed),
		renderer.WithEnvironment(s.Environment),
		renderer.WithLogger(core.NewSlogLogger(logger)),
	)

	buf, stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}
	logger.Debug("render stats", "minSamples", stats.MinSamples, "maxSamples", stats.MaxSamplesUsed)

	if err := output.WriteFile(path, buf, format, cfg.Scale); err != nil {
		return err
	}
	logger.Info("render saved", "path", path, "format", string(format))
	return nil
}
