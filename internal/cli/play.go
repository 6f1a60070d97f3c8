package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/sortscope/internal/playback"
	"github.com/roach88/sortscope/internal/tui"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Session SessionOptions
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Interactive terminal player",
		Long: `Open the interactive player.

Keys:
  space  start or pause
  n      single step
  + / -  faster / slower
  r      new array
  a / i  next algorithm / next initiator
  q      quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	opts.Session.bind(cmd)
	opts.Session.bindDelay(cmd)

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	session, err := sessionFromFlags(opts.RootOptions, opts.Session, cmd)
	if err != nil {
		return err
	}

	var seeds func() uint64
	if session.Seed != 0 {
		seeds = playback.FixedSeed(session.Seed)
	}

	err = tui.Run(tui.Options{
		Initiator: session.Initiator,
		Algorithm: session.Algorithm,
		N:         session.N,
		Delay:     session.Delay,
		Seeds:     seeds,
		Logger:    newLogger(opts.RootOptions, cmd.ErrOrStderr()),
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "player failed", err)
	}
	return nil
}
