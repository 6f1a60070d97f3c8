package cli

import (
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/sortscope/internal/config"
	"github.com/roach88/sortscope/internal/trace"
)

// SessionOptions selects what to record. Flags left unset fall back to the
// config file, then to the built-in defaults.
type SessionOptions struct {
	Initiator string
	Algorithm string
	N         int
	Seed      uint64
	Delay     time.Duration

	// Initial replaces the initiator's output when set.
	Initial []int
}

func (s *SessionOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&s.Initiator, "initiator", "i", config.DefaultInitiator, "initial array generator")
	f.StringVarP(&s.Algorithm, "algorithm", "a", config.DefaultAlgorithm, "sorting algorithm")
	f.IntVarP(&s.N, "size", "n", config.DefaultN, "array size")
	f.Uint64Var(&s.Seed, "seed", 0, "random seed (0 picks a fresh one)")
}

func (s *SessionOptions) bindInitial(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&s.Initial, "initial", nil, "explicit initial array, e.g. 3,1,2 (overrides --initiator)")
}

func (s *SessionOptions) bindDelay(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&s.Delay, "delay", config.DefaultDelay, "pause after each delayed step")
}

// resolve overlays cfg on every flag the user did not set.
func (s SessionOptions) resolve(cmd *cobra.Command, cfg config.Config) SessionOptions {
	f := cmd.Flags()
	if !f.Changed("initiator") {
		s.Initiator = cfg.Initiator
	}
	if !f.Changed("algorithm") {
		s.Algorithm = cfg.Algorithm
	}
	if !f.Changed("size") {
		s.N = cfg.N
	}
	if !f.Changed("seed") {
		s.Seed = cfg.Seed
	}
	if f.Lookup("delay") != nil && !f.Changed("delay") {
		s.Delay = cfg.Delay
	}
	if s.Initial != nil && !f.Changed("initiator") {
		s.Initiator = "custom"
	}
	return s
}

// record produces the recording the options describe. A zero seed is
// replaced by a random one so the recording stays reproducible.
func (s SessionOptions) record() (*trace.Recording, error) {
	seed := s.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return trace.Record(trace.RecordOptions{
		Initiator: s.Initiator,
		Algorithm: s.Algorithm,
		N:         s.N,
		Seed:      seed,
		Initial:   s.Initial,
	})
}

// sessionFromFlags loads the config and resolves opts against it.
func sessionFromFlags(root *RootOptions, opts SessionOptions, cmd *cobra.Command) (SessionOptions, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return SessionOptions{}, err
	}
	return opts.resolve(cmd, cfg), nil
}
