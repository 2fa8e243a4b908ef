package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	reveal "github.com/mpalenque/brush-sub000"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	SessionFlags
	FPS       int
	MaxFrames int
	Out       string
	FramesDir string
	Every     int
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a reveal to PNG",
		Long: `Run a reveal on a virtual clock and write the final frame as PNG.
With --frames-dir, every Nth frame is written as frame_00000.png, ...

Example:
  revealctl render --background photo.jpg --out final.png
  revealctl render --profile pattern-reveal --frames-dir frames --every 4`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&opts.FPS, "fps", 60, "virtual frames per second")
	cmd.Flags().IntVar(&opts.MaxFrames, "max-frames", 0, "frame limit (0 derives one from the profile duration)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "reveal.png", "output PNG for the final frame")
	cmd.Flags().StringVar(&opts.FramesDir, "frames-dir", "", "directory for the frame sequence")
	cmd.Flags().IntVar(&opts.Every, "every", 1, "write every Nth frame to --frames-dir")

	return cmd
}

func runRender(opts *RenderOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	step, err := frameStep(opts.FPS)
	if err != nil {
		return formatter.Error(err)
	}
	if opts.Every < 1 {
		return formatter.Error(NewExitError(ExitCommandError, "every must be at least 1"))
	}
	s, err := opts.session(cmd)
	if err != nil {
		return formatter.Error(err)
	}

	var present func(reveal.FrameResult) error
	written := 0
	if opts.FramesDir != "" {
		if err := os.MkdirAll(opts.FramesDir, 0o755); err != nil {
			return formatter.Error(WrapExitError(ExitCommandError, "failed to create frames directory", err))
		}
		present = func(r reveal.FrameResult) error {
			if r.Index%opts.Every != 0 && r.State != reveal.StateFinished {
				return nil
			}
			path := filepath.Join(opts.FramesDir, fmt.Sprintf("frame_%05d.png", r.Index))
			if err := r.Frame.SavePNG(path); err != nil {
				return err
			}
			written++
			formatter.VerboseLog("wrote %s (%.0f%%)", path, r.Progress*100)
			return nil
		}
	}

	began := time.Now()
	res, simErr := s.Simulate(step, frameLimit(s, opts.MaxFrames, step), present)
	if res.Frame == nil {
		res.Frame = s.Render()
	}
	if err := res.Frame.SavePNG(opts.Out); err != nil {
		return formatter.Error(WrapExitError(ExitFailure, "failed to write output", err))
	}

	report := newReport(s, time.Since(began))
	report.Output = opts.Out
	report.FramesWritten = written
	if err := formatter.Success(report); err != nil {
		return WrapExitError(ExitFailure, "failed to write report", err)
	}
	return simulateExit(simErr)
}
