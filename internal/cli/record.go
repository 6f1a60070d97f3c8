package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortscope/internal/store"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Session  SessionOptions
	Database string
}

// RecordResult describes a persisted recording.
type RecordResult struct {
	ID    string `json:"id"`
	Steps int    `json:"steps"`
	Hash  string `json:"hash"`
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a trace into a database",
		Long: `Record a trace and store it in a SQLite database (created if it
doesn't exist). Prints the recording ID for use with replay.

Examples:
  sortscope record --db ./traces.db --algorithm heap -n 100 --seed 7
  sortscope record --db ./traces.db --algorithm radix --initial 30,4,112`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, cmd)
		},
	}

	opts.Session.bind(cmd)
	opts.Session.bindInitial(cmd)
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRecord(opts *RecordOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	session, err := sessionFromFlags(opts.RootOptions, opts.Session, cmd)
	if err != nil {
		return err
	}
	rec, err := session.record()
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to record trace", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return fail(formatter, ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if err := st.WriteRecording(commandContext(cmd), rec); err != nil {
		return fail(formatter, ExitFailure, "failed to store recording", err)
	}
	formatter.VerboseLog("stored %s (%d steps) in %s", rec.ID, len(rec.Steps), opts.Database)

	if opts.Format == "json" {
		return formatter.Success(RecordResult{ID: rec.ID, Steps: len(rec.Steps), Hash: rec.Hash})
	}
	fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
	return nil
}
