package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for backgrounds and overlays
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	reveal "github.com/mpalenque/brush-sub000"
	"github.com/mpalenque/brush-sub000/internal/pattern"
)

// Background flag values with special meaning.
const (
	backgroundPattern = "pattern"
	backgroundNone    = "none"
)

// SessionFlags are the inputs shared by every command that builds a
// session.
type SessionFlags struct {
	Width             int
	Height            int
	Profile           string
	Background        string
	Brushes           string
	ProceduralBrushes int
	Overlays          []string
	Paper             string
	Seed              uint64

	// AsyncBrushes loads the brush directory in the background. Painters
	// use the procedural brushes, or blobs, until it completes.
	AsyncBrushes bool

	seeded bool
}

// register adds the session flags to cmd.
func (f *SessionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.Width, "width", 1280, "viewport width in pixels")
	fs.IntVar(&f.Height, "height", 720, "viewport height in pixels")
	fs.StringVarP(&f.Profile, "profile", "p", reveal.DefaultProfileName, "profile name or path to a YAML profile")
	fs.StringVar(&f.Background, "background", backgroundPattern,
		`background image (PNG/JPEG), "pattern" for a generated pattern, "none" for paper only`)
	fs.StringVar(&f.Brushes, "brushes", "", "directory of brush images (PNG, JPEG, SVG)")
	fs.IntVar(&f.ProceduralBrushes, "procedural-brushes", 0, "number of procedural brushes to generate")
	fs.StringArrayVar(&f.Overlays, "overlay", nil, "overlay image multiplied over the result, as path[:opacity] (repeatable)")
	fs.StringVar(&f.Paper, "paper", "", "paper colour override (hex)")
	fs.Uint64Var(&f.Seed, "seed", 0, "random seed (clock-seeded when unset)")
}

// viewport returns the requested viewport.
func (f *SessionFlags) viewport() reveal.Viewport {
	return reveal.Viewport{W: f.Width, H: f.Height}
}

// resolve records which flags were set explicitly.
func (f *SessionFlags) resolve(cmd *cobra.Command) {
	f.seeded = cmd.Flags().Changed("seed")
}

// profile resolves the profile flag as a built-in name or a file path.
func (f *SessionFlags) profile() (reveal.Profile, error) {
	p, err := reveal.NamedProfile(f.Profile)
	if err == nil {
		return p, nil
	}
	if _, statErr := os.Stat(f.Profile); statErr != nil {
		return reveal.Profile{}, err
	}
	return reveal.LoadProfile(f.Profile)
}

// background loads or generates the background image. A nil image means
// paper only.
func (f *SessionFlags) background() (image.Image, error) {
	switch f.Background {
	case backgroundNone:
		return nil, nil
	case backgroundPattern, "":
		return pattern.Render(f.Width/2, f.Height/2, pattern.Options{Seed: int64(f.Seed)}), nil
	default:
		return loadImage(f.Background)
	}
}

// options builds the session options, except the profile.
func (f *SessionFlags) options(ctx context.Context) ([]reveal.SessionOption, error) {
	var opts []reveal.SessionOption
	if f.seeded {
		opts = append(opts, reveal.WithSeed(f.Seed))
	}
	if f.Paper != "" {
		opts = append(opts, reveal.WithPaper(f.Paper))
	}

	var brushes []*reveal.Brush
	if f.ProceduralBrushes > 0 {
		brushes = reveal.ProceduralBrushes(int64(f.Seed), f.ProceduralBrushes, 128)
	}
	if f.Brushes != "" && f.AsyncBrushes {
		bs := reveal.NewBrushSet(brushes...)
		bs.LoadAsync(ctx, f.Brushes)
		opts = append(opts, reveal.WithBrushes(bs))
		brushes = nil
	} else if f.Brushes != "" {
		loaded, err := reveal.LoadBrushDir(f.Brushes)
		if len(loaded) == 0 && err != nil {
			return nil, err
		}
		if err != nil {
			reveal.Logger().Warn("some brushes failed to load", "dir", f.Brushes, "error", err)
		}
		brushes = append(brushes, loaded...)
	}
	if len(brushes) > 0 {
		opts = append(opts, reveal.WithBrushes(reveal.NewBrushSet(brushes...)))
	}

	for _, spec := range f.Overlays {
		o, err := parseOverlay(spec)
		if err != nil {
			return nil, err
		}
		opts = append(opts, reveal.WithOverlays(o))
	}
	return opts, nil
}

// inputs resolves the profile, background and session options. Errors
// map to ExitCommandError.
func (f *SessionFlags) inputs(cmd *cobra.Command) (image.Image, []reveal.SessionOption, error) {
	f.resolve(cmd)
	prof, err := f.profile()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load profile", err)
	}
	bg, err := f.background()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load background", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := f.options(ctx)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load session inputs", err)
	}
	return bg, append(opts, reveal.WithProfile(prof)), nil
}

// session builds a session for the requested viewport.
func (f *SessionFlags) session(cmd *cobra.Command) (*reveal.Session, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid viewport %dx%d", f.Width, f.Height))
	}
	bg, opts, err := f.inputs(cmd)
	if err != nil {
		return nil, err
	}
	return reveal.NewSession(f.viewport(), bg, opts...), nil
}

// parseOverlay parses "path[:opacity]".
func parseOverlay(spec string) (reveal.Overlay, error) {
	path, opacity := spec, 1.0
	if i := strings.LastIndexByte(spec, ':'); i > 0 {
		if v, err := strconv.ParseFloat(spec[i+1:], 64); err == nil {
			path, opacity = spec[:i], v
		}
	}
	if opacity < 0 || opacity > 1 {
		return reveal.Overlay{}, fmt.Errorf("overlay %q: opacity must be in [0, 1]", spec)
	}
	img, err := loadImage(path)
	if err != nil {
		return reveal.Overlay{}, err
	}
	return reveal.Overlay{Image: img, Opacity: opacity}, nil
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, errors.New(path + ": empty image")
	}
	return img, nil
}
