package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Session SessionOptions
	Steps   int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play a trace headless",
		Long: `Record a trace and play it through the playback controller, printing
one line per comparison, swap, write and focus change.

Without --steps the timed loop runs until the trace is exhausted,
waiting --delay after every delayed step. Ctrl-C pauses playback and
prints how far it got.

Examples:
  sortscope run --algorithm shell -n 32 --delay 10ms
  sortscope run --algorithm quick-median --steps 20
  sortscope run --config ./sortscope.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayback(opts, cmd)
		},
	}

	opts.Session.bind(cmd)
	opts.Session.bindInitial(cmd)
	opts.Session.bindDelay(cmd)
	cmd.Flags().IntVar(&opts.Steps, "steps", 0, "single-step this many times instead of running the timed loop")

	return cmd
}

func runPlayback(opts *RunOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	session, err := sessionFromFlags(opts.RootOptions, opts.Session, cmd)
	if err != nil {
		return err
	}
	rec, err := session.record()
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to record trace", err)
	}
	logger.Debug("recorded", "id", rec.ID, "steps", len(rec.Steps), "seed", rec.Seed)

	ctx, stop := signalContext(cmd)
	defer stop()

	var lines io.Writer = cmd.OutOrStdout()
	if opts.Format == "json" {
		lines = io.Discard
	}
	result, err := playHeadless(ctx, rec, session.Delay, opts.Steps, lines, logger)
	if err != nil {
		return fail(formatter, ExitFailure, "playback failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	writePlaybackSummary(cmd.OutOrStdout(), result)
	return nil
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
}
