package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/sortscope/internal/ir"
	"github.com/roach88/sortscope/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Session   SessionOptions
	StatsOnly bool
}

// TraceStats holds summary statistics for a recording.
type TraceStats struct {
	Steps        int            `json:"steps"`
	Comparisons  int            `json:"comparisons"`
	Swaps        int            `json:"swaps"`
	Replacements int            `json:"replacements"`
	Delayed      int            `json:"delayed"`
	ByKind       map[string]int `json:"by_kind"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	ID        string            `json:"id"`
	Initiator string            `json:"initiator"`
	Algorithm string            `json:"algorithm"`
	N         int               `json:"n"`
	Seed      uint64            `json:"seed"`
	Hash      string            `json:"hash"`
	Initial   []int             `json:"initial"`
	Final     []int             `json:"final"`
	Stats     TraceStats        `json:"stats"`
	Steps     []json.RawMessage `json:"steps,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Record and print a trace",
		Long: `Record the steps an algorithm performs on a generated array and
print them without playing them back.

Examples:
  sortscope trace --algorithm bubble --initiator sorted -n 5
  sortscope trace --algorithm merge --initial 3,1,2
  sortscope trace --algorithm quick-random --seed 42 --stats-only
  sortscope trace --algorithm heap -n 8 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	opts.Session.bind(cmd)
	opts.Session.bindInitial(cmd)
	cmd.Flags().BoolVar(&opts.StatsOnly, "stats-only", false, "print statistics without the steps")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
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
	formatter.VerboseLog("recorded %s: %d steps", rec.ID, len(rec.Steps))

	result, err := traceResult(rec, !opts.StatsOnly)
	if err != nil {
		return fail(formatter, ExitFailure, "failed to encode trace", err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	writeTraceText(cmd.OutOrStdout(), rec, result, !opts.StatsOnly)
	return nil
}

func traceResult(rec *trace.Recording, withSteps bool) (*TraceResult, error) {
	st := rec.Stats()
	byKind := make(map[string]int, len(st.ByKind))
	for k, n := range st.ByKind {
		byKind[string(k)] = n
	}

	result := &TraceResult{
		ID:        rec.ID,
		Initiator: rec.Initiator,
		Algorithm: rec.Algorithm,
		N:         rec.N,
		Seed:      rec.Seed,
		Hash:      rec.Hash,
		Initial:   rec.Initial,
		Final:     rec.Final(),
		Stats: TraceStats{
			Steps:        st.Steps,
			Comparisons:  st.Comparisons,
			Swaps:        st.Swaps,
			Replacements: st.Replacements,
			Delayed:      st.Delayed,
			ByKind:       byKind,
		},
	}
	if !withSteps {
		return result, nil
	}

	result.Steps = make([]json.RawMessage, len(rec.Steps))
	for i, s := range rec.Steps {
		data, err := ir.MarshalStep(s)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		result.Steps[i] = data
	}
	return result, nil
}

func writeTraceText(w io.Writer, rec *trace.Recording, result *TraceResult, withSteps bool) {
	st := newTextStyles(w)

	fmt.Fprintf(w, "%s %s on %s (n=%d, seed=%d)\n", st.title.Render(rec.Algorithm), st.label.Render("sorting"), rec.Initiator, rec.N, rec.Seed)
	fmt.Fprintf(w, "%s %v\n", st.label.Render("initial"), result.Initial)

	if withSteps {
		fmt.Fprintln(w)
		for i, s := range rec.Steps {
			fmt.Fprintf(w, "%6d  %s\n", i+1, ir.String(s))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s %v\n", st.label.Render("final"), result.Final)
	fmt.Fprintf(w, "%s %d (%d delayed)\n", st.label.Render("steps"), result.Stats.Steps, result.Stats.Delayed)
	for _, k := range ir.Kinds {
		if n := result.Stats.ByKind[string(k)]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", k, n)
		}
	}
	if !slices.IsSorted(result.Final) {
		fmt.Fprintln(w, st.bad.Render("final array is not sorted"))
	}
	fmt.Fprintf(w, "%s %s\n", st.label.Render("hash"), rec.Hash)
}
