package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	reveal "github.com/mpalenque/brush-sub000"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	SessionFlags
	FPS       int
	MaxFrames int
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a reveal headlessly and print statistics",
		Long: `Run a reveal on a virtual clock without rendering intermediate frames
and report frame count, work units, coverage and finish time.

Example:
  revealctl simulate --width 1920 --height 1080 --profile full-reveal
  revealctl simulate --seed 7 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, cmd)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&opts.FPS, "fps", 60, "virtual frames per second")
	cmd.Flags().IntVar(&opts.MaxFrames, "max-frames", 0, "frame limit (0 derives one from the profile duration)")

	return cmd
}

func runSimulate(opts *SimulateOptions, cmd *cobra.Command) error {
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
	s, err := opts.session(cmd)
	if err != nil {
		return formatter.Error(err)
	}
	formatter.VerboseLog("simulating %s at %d fps", s.Profile().Name, opts.FPS)

	began := time.Now()
	_, simErr := s.Simulate(step, frameLimit(s, opts.MaxFrames, step), nil)
	report := newReport(s, time.Since(began))

	if err := formatter.Success(report); err != nil {
		return WrapExitError(ExitFailure, "failed to write report", err)
	}
	return simulateExit(simErr)
}

// frameStep converts a frame rate into a virtual clock step.
func frameStep(fps int) (time.Duration, error) {
	if fps <= 0 {
		return 0, NewExitError(ExitCommandError, "fps must be positive")
	}
	return time.Second / time.Duration(fps), nil
}

// frameLimit returns limit, or ten times the nominal frame count of the
// profile when limit is 0.
func frameLimit(s *reveal.Session, limit int, step time.Duration) int {
	if limit > 0 {
		return limit
	}
	return int(10*s.Profile().Duration/step) + 600
}

func simulateExit(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, reveal.ErrFrameLimit):
		return WrapExitError(ExitFailure, "reveal did not finish", err)
	default:
		return WrapExitError(ExitFailure, "simulation failed", err)
	}
}
