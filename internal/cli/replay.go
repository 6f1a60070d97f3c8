package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/sortscope/internal/config"
	"github.com/roach88/sortscope/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	ID       string // optional - list recordings when empty
	Delete   bool
	Delay    time.Duration
	Steps    int

	// Listing filters
	Algorithm string
	Initiator string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Play or manage stored recordings",
		Long: `Load a stored recording and play it headless. The trace hash is
verified before playback.

Without --id the stored recordings are listed, optionally narrowed with
--algorithm and --initiator. With --delete the recording is removed
instead of played.

Exit codes:
  0 - Playback finished or was paused
  1 - Playback failed
  2 - Command error (database not found, unknown ID, hash mismatch)

Examples:
  sortscope replay --db ./traces.db
  sortscope replay --db ./traces.db -a quick -i reverse
  sortscope replay --db ./traces.db --id 0192... --delay 5ms
  sortscope replay --db ./traces.db --id 0192... --delete`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.ID, "id", "", "recording to play")
	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "delete the recording instead of playing it")
	cmd.Flags().DurationVar(&opts.Delay, "delay", config.DefaultDelay, "pause after each delayed step")
	cmd.Flags().IntVar(&opts.Steps, "steps", 0, "single-step this many times instead of running the timed loop")
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "", "list only recordings of this algorithm")
	cmd.Flags().StringVarP(&opts.Initiator, "initiator", "i", "", "list only recordings of this initiator")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := commandContext(cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.ID == "" {
		summaries, err := st.ListRecordings(ctx, store.Filter{
			Algorithm: opts.Algorithm,
			Initiator: opts.Initiator,
		})
		if err != nil {
			return fail(formatter, ExitCommandError, "failed to list recordings", err)
		}
		if opts.Format == "json" {
			return formatter.Success(summaries)
		}
		writeSummaries(cmd.OutOrStdout(), summaries)
		return nil
	}

	if opts.Delete {
		if err := st.DeleteRecording(ctx, opts.ID); err != nil {
			return fail(formatter, ExitCommandError, "failed to delete recording", err)
		}
		if opts.Format == "json" {
			return formatter.Success(map[string]string{"deleted": opts.ID})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", opts.ID)
		return nil
	}

	rec, err := st.ReadRecording(ctx, opts.ID)
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to load recording", err)
	}

	delay := opts.Delay
	if !cmd.Flags().Changed("delay") {
		cfg, err := loadConfig(opts.RootOptions)
		if err != nil {
			return err
		}
		delay = cfg.Delay
	}

	sigCtx, stop := signalContext(cmd)
	defer stop()

	var lines io.Writer = cmd.OutOrStdout()
	if opts.Format == "json" {
		lines = io.Discard
	}
	result, err := playHeadless(sigCtx, rec, delay, opts.Steps, lines, newLogger(opts.RootOptions, cmd.ErrOrStderr()))
	if err != nil {
		return fail(formatter, ExitFailure, "playback failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	writePlaybackSummary(cmd.OutOrStdout(), result)
	return nil
}

func writeSummaries(w io.Writer, summaries []store.Summary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No recordings found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tALGORITHM\tINITIATOR\tN\tSTEPS\tSEED")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n", s.ID, s.Algorithm, s.Initiator, s.N, s.Steps, s.Seed)
	}
	tw.Flush()
}
