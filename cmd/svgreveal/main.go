// Command svgreveal compiles an SVG image and exports its progressive
// reveal, either as PNG frames or as a PDF storyboard.
//
//	svgreveal [flags] input.svg
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgreveal/config"
	"github.com/benoitkugler/svgreveal/svgdraw"
	"github.com/benoitkugler/svgreveal/svgicon"
	"github.com/benoitkugler/svgreveal/svgpdf"
	"github.com/benoitkugler/svgreveal/svgraster"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

type options struct {
	cfg    config.Config
	input  string
	output string
	stderr io.Writer
	logger *slog.Logger
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("svgreveal", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFile := fs.String("config", "", "YAML configuration file")
	output := fs.String("o", "", "output directory (png) or file (pdf), defaults to the input name")
	format := fs.String("format", "", "output format: png or pdf")
	frames := fs.Int("frames", 0, "number of frames, overriding fps and duration")
	workers := fs.Int("workers", 0, "number of frames rendered in parallel")
	width := fs.Int("width", 0, "output width, in pixels or points")
	height := fs.Int("height", 0, "output height, in pixels or points")
	threshold := fs.Float64("threshold", 0, "samples per unit of path length")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 {
		return options{}, fmt.Errorf("expected one input file, got %d", fs.NArg())
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return options{}, err
	}
	// flags explicitly set win over the file and the environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "frames":
			cfg.Frames = *frames
		case "workers":
			cfg.Workers = *workers
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "threshold":
			cfg.Threshold = *threshold
		}
	})
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}
	level, _ := cfg.Level()

	opts := options{
		cfg:    cfg,
		input:  fs.Arg(0),
		output: *output,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
	if opts.output == "" {
		opts.output = defaultOutput(opts.input, cfg.Format)
	}
	return opts, nil
}

// defaultOutput is next to the input: a .pdf file or a _frames directory
func defaultOutput(input, format string) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	if format == config.PDF {
		return stem + ".pdf"
	}
	return stem + "_frames"
}

// compile returns the artwork and the frames to export
func compile(opts options) (*svgicon.Artwork, [][]svgdraw.Drawable, error) {
	compileOpts, err := opts.cfg.CompileOptions(opts.logger)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(opts.input)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	engine := svgdraw.NewEngine(nil, svgdraw.Options{Compile: compileOpts})
	engine.Subscribe(func(ev svgdraw.Event) {
		opts.logger.Debug("engine event", "kind", ev.Kind, "reason", ev.Reason)
	})
	if err := engine.Compile(f); err != nil {
		return nil, nil, fmt.Errorf("compiling %s: %w", opts.input, err)
	}
	artwork := engine.Artwork()
	opts.logger.Info("artwork compiled", "elements", len(artwork.Elements),
		"points", artwork.PointCount(), "width", artwork.ContentSize[0], "height", artwork.ContentSize[1])

	progresses := opts.cfg.Progresses()
	frames := make([][]svgdraw.Drawable, len(progresses))
	for i, p := range progresses {
		engine.SetProgress(p)
		frames[i] = engine.Frame()
	}
	return artwork, frames, nil
}

func exportPNG(ctx context.Context, opts options, artwork *svgicon.Artwork, frames [][]svgdraw.Drawable) error {
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return err
	}
	view := svgraster.View{
		Width:      opts.cfg.Width,
		Height:     opts.cfg.Height,
		Margin:     opts.cfg.Margin,
		Background: opts.cfg.BackgroundColor(),
	}
	bar := progressbar.NewOptions(len(frames),
		progressbar.OptionSetWriter(opts.stderr),
		progressbar.OptionSetDescription("rendering frames"),
		progressbar.OptionShowCount(),
	)
	defer bar.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.cfg.Workers)
	for i, frame := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := svgraster.RenderFrame(frame, artwork.Bounds, view)
			if err != nil {
				return err
			}
			file := filepath.Join(opts.output, fmt.Sprintf("frame_%04d.png", i))
			out, err := os.Create(file)
			if err != nil {
				return err
			}
			if err := png.Encode(out, img); err != nil {
				out.Close()
				return fmt.Errorf("encoding %s: %w", file, err)
			}
			if err := out.Close(); err != nil {
				return err
			}
			return bar.Add(1)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	opts.logger.Info("frames exported", "count", len(frames), "dir", opts.output)
	return nil
}

func exportPDF(opts options, artwork *svgicon.Artwork, frames [][]svgdraw.Drawable) error {
	out, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	page := svgpdf.Page{
		Width:  float64(opts.cfg.Width),
		Height: float64(opts.cfg.Height),
		Margin: opts.cfg.Margin,
	}
	title := strings.Join(artwork.Titles, " ")
	if err := svgpdf.RenderStoryboard(out, frames, artwork.Bounds, page, title); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	opts.logger.Info("storyboard exported", "pages", len(frames), "file", opts.output)
	return nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	artwork, frames, err := compile(opts)
	if err != nil {
		return err
	}
	if opts.cfg.Format == config.PDF {
		return exportPDF(opts, artwork, frames)
	}
	return exportPNG(ctx, opts, artwork, frames)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "svgreveal: %v\n", err)
		os.Exit(1)
	}
}
