// Command skeletonize extracts skeletons from raster images.
//
// Usage:
//
//	skeletonize [flags] file...
//
// Each input is decoded (PNG, JPEG, BMP, TIFF, WebP or DICOM), reduced to
// grayscale, binarized and skeletonized. The result is written as
// <name>_skel.png (or .bmp with -format bmp) in the output directory.
// An input of "-" reads one image from standard input and is written as
// stdin_skel.png.
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

	"github.com/gogpu/skel"
	"github.com/gogpu/skel/internal/parallel"
)

// config holds the parsed command line.
type config struct {
	outDir     string
	mode       string
	threshold  int
	dither     string
	invert     bool
	blur       float64
	blurSize   int
	box        int
	format     string
	erase      bool
	foreground int
	maxWidth   int
	frame      int
	workers    int
	verbose    bool
	inputs     []string

	// outputs[i] is the file written for inputs[i].
	outputs []string
	stdin   io.Reader
}

// stdinName is the input argument that reads from standard input.
const stdinName = "-"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "skeletonize:", err)
		}
		return 2
	}
	cfg.stdin = stdin

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	skel.SetLogger(logger)
	defer skel.SetLogger(nil)

	if err := os.MkdirAll(cfg.outDir, 0o750); err != nil {
		logger.Error("create output directory", "dir", cfg.outDir, "err", err)
		return 1
	}

	pool := parallel.NewWorkerPool(cfg.workers)
	defer pool.Close()

	jobs := make([]parallel.Job, len(cfg.inputs))
	for i, path := range cfg.inputs {
		jobs[i] = func(ctx context.Context) error {
			return processFile(ctx, cfg, path, cfg.outputs[i], logger)
		}
	}

	start := time.Now()
	errs := pool.Run(ctx, jobs)

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			logger.Error("skeletonize failed", "file", cfg.inputs[i], "err", err)
		}
	}
	logger.Info("done",
		"files", len(cfg.inputs),
		"failed", failed,
		"workers", pool.Workers(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if failed > 0 {
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("skeletonize", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &config{}
	fs.StringVar(&cfg.outDir, "out", ".", "output directory")
	fs.StringVar(&cfg.mode, "mode", "thin", "skeletonization: thin or midpoint")
	fs.IntVar(&cfg.threshold, "threshold", 128, "binarization level (0-255); ignored with -dither")
	fs.StringVar(&cfg.dither, "dither", "", "dither instead of thresholding: floyd-steinberg, atkinson, stucki or bayer")
	fs.BoolVar(&cfg.invert, "invert", false, "invert after binarization (dark strokes on a light page)")
	fs.Float64Var(&cfg.blur, "blur", 0, "Gaussian blur sigma applied before binarization (0 disables)")
	fs.IntVar(&cfg.blurSize, "blur-size", 0, "Gaussian kernel size for -blur (0 derives it from sigma)")
	fs.IntVar(&cfg.box, "box", 0, "box blur radius applied before binarization (0 disables)")
	fs.StringVar(&cfg.format, "format", "png", "output format: png or bmp")
	fs.BoolVar(&cfg.erase, "erase", false, "hollow out solid regions before skeletonizing")
	fs.IntVar(&cfg.foreground, "foreground", 255, "foreground pixel value (0-255)")
	fs.IntVar(&cfg.maxWidth, "max-width", 0, "downscale inputs wider than this (0 keeps the size)")
	fs.IntVar(&cfg.frame, "frame", 0, "frame index for DICOM inputs")
	fs.IntVar(&cfg.workers, "workers", 0, "number of files processed concurrently (0 uses GOMAXPROCS)")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: skeletonize [flags] file...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.inputs = fs.Args()

	switch {
	case len(cfg.inputs) == 0:
		fs.Usage()
		return nil, fmt.Errorf("%w: no input files", errUsage)
	case cfg.mode != "thin" && cfg.mode != "midpoint":
		return nil, fmt.Errorf("%w: unknown -mode %q", errUsage, cfg.mode)
	case cfg.threshold < 0 || cfg.threshold > 255:
		return nil, fmt.Errorf("%w: -threshold %d out of range", errUsage, cfg.threshold)
	case cfg.foreground < 0 || cfg.foreground > 255:
		return nil, fmt.Errorf("%w: -foreground %d out of range", errUsage, cfg.foreground)
	case cfg.blurSize < 0 || cfg.box < 0:
		return nil, fmt.Errorf("%w: -blur-size and -box must not be negative", errUsage)
	case cfg.format != "png" && cfg.format != "bmp":
		return nil, fmt.Errorf("%w: unknown -format %q", errUsage, cfg.format)
	}
	if cfg.dither != "" {
		if _, err := skel.ParseDitherMethod(cfg.dither); err != nil {
			return nil, err
		}
	}

	// Distinct inputs must not overwrite each other's output.
	cfg.outputs = make([]string, len(cfg.inputs))
	seen := make(map[string]string, len(cfg.inputs))
	for i, in := range cfg.inputs {
		out := outputPath(cfg.outDir, in, cfg.format)
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%w: %q and %q both write %s", errUsage, prev, in, out)
		}
		seen[out] = in
		cfg.outputs[i] = out
	}
	return cfg, nil
}

// processFile runs the whole pipeline for one input.
func processFile(ctx context.Context, cfg *config, path, out string, logger *slog.Logger) error {
	buf, err := load(cfg, path)
	if err != nil {
		return err
	}
	buf = skel.ResizeToWidth(buf, cfg.maxWidth)

	plane := skel.PlaneFromBuf(buf)
	switch {
	case cfg.blur > 0 && cfg.blurSize > 0:
		plane.GaussianBlur(cfg.blur, cfg.blurSize)
	case cfg.blur > 0:
		plane.Blur(cfg.blur)
	}
	plane.BoxBlur(cfg.box)

	opts := []skel.Option{skel.WithForeground(uint8(cfg.foreground))}
	if cfg.dither != "" {
		method, _ := skel.ParseDitherMethod(cfg.dither)
		plane, err = skel.Dither(plane.ToImage(), method, opts...)
		if err != nil {
			return err
		}
	} else {
		skel.Threshold(plane, uint8(cfg.threshold), opts...)
	}
	if cfg.invert {
		plane.Invert()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	fg := uint8(cfg.foreground)
	if cfg.erase {
		skel.RemoveUniformBlocks(plane, fg, 255-fg)
	}

	switch cfg.mode {
	case "midpoint":
		skel.SkeletonizeByMidpoint(plane, opts...)
	default:
		stats := skel.Thin(plane, opts...)
		logger.Debug("thinned", "file", path, "passes", stats.Passes, "deleted", stats.Deleted)
	}

	save := plane.SavePNG
	if cfg.format == "bmp" {
		save = plane.SaveBMP
	}
	if err := save(out); err != nil {
		return err
	}
	logger.Info("wrote skeleton", "file", path, "out", out,
		"size", fmt.Sprintf("%dx%d", plane.Width(), plane.Height()),
		"foreground", skel.CountForeground(plane, fg),
		"components", skel.CountComponents(plane, fg))
	return nil
}

// load decodes one input: standard input, a DICOM frame or an image file.
func load(cfg *config, path string) (*skel.ImageBuf, error) {
	switch {
	case path == stdinName:
		data, err := io.ReadAll(cfg.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return skel.DecodeImage(data)
	case skel.IsDICOM(path):
		return skel.LoadDICOM(path, cfg.frame)
	default:
		return skel.LoadImage(path)
	}
}

// outputPath returns dir/<base>_skel.<format> for the input path.
func outputPath(dir, input, format string) string {
	base := "stdin"
	if input != stdinName {
		base = filepath.Base(input)
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(dir, base+"_skel."+format)
}
