package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortscope/internal/initiator"
	"github.com/roach88/sortscope/internal/sorter"
)

// ListResult holds the registered names.
type ListResult struct {
	Initiators []string `json:"initiators"`
	Algorithms []string `json:"algorithms"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List initiators and algorithms",
		Long: `List the initial array generators and sorting algorithms that
--initiator and --algorithm accept. Names are matched ignoring case.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	result := ListResult{
		Initiators: initiator.Names(),
		Algorithms: sorter.Names(),
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	st := newTextStyles(w)
	fmt.Fprintln(w, st.title.Render("Initiators"))
	for _, name := range result.Initiators {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.title.Render("Algorithms"))
	for _, name := range result.Algorithms {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}
