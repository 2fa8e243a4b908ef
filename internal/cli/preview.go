package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	reveal "github.com/mpalenque/brush-sub000"
	"github.com/mpalenque/brush-sub000/internal/preview"
)

// PreviewOptions holds flags for the preview command.
type PreviewOptions struct {
	*RootOptions
	SessionFlags
	CellPixels int
	LogFile    string
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PreviewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Play a reveal in the terminal",
		Long: `Play a reveal live in the terminal at about 60 frames per second.

Keys: r restarts, q, Esc or Ctrl-C quits. Resizing the terminal resizes
the session. Logs are discarded unless --log-file is given, since they
would draw over the preview.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(opts, cmd)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&opts.CellPixels, "cell-pixels", preview.DefaultCellPixels, "viewport pixels per half cell")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file")
	opts.AsyncBrushes = true

	return cmd
}

func runPreview(opts *PreviewOptions, cmd *cobra.Command) error {
	closeLog, err := previewLogging(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open log file", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	// The preview sizes the session to the terminal.
	bg, sessionOpts, err := opts.inputs(cmd)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open terminal", err)
	}
	if err := screen.Init(); err != nil {
		return WrapExitError(ExitFailure, "failed to initialise terminal", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	p := preview.New(screen, preview.Options{
		Background: bg,
		Session:    sessionOpts,
		CellPixels: opts.CellPixels,
	})
	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "preview failed", err)
	}
	return nil
}

// previewLogging redirects engine logs away from the terminal.
func previewLogging(opts *PreviewOptions) (func(), error) {
	if opts.LogFile == "" {
		reveal.SetLogger(nil)
		return func() {}, nil
	}
	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	reveal.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() { _ = f.Close() }, nil
}
