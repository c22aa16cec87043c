package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bracket/internal/compiler"
	"github.com/roach88/bracket/internal/ir"
	"github.com/roach88/bracket/internal/session"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	Name     string
	Entrants []string
	Seed     uint64
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new [tournament.cue]",
		Short: "Create a tournament session",
		Long: `Create a tournament session from a CUE definition or from flags.

Entrants are placed in the order given; BYE slots pad the bracket to a
power of two. Preset results in the definition are recorded immediately.

Examples:
  bracket new ./open.cue
  bracket new --name open --entrants A,B,C,D,E --seed 42`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "tournament name")
	cmd.Flags().StringSliceVar(&opts.Entrants, "entrants", nil, "comma-separated entrants, in slot order")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for randomized results (default random)")

	return cmd
}

func runNew(opts *NewOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	spec, err := newSpec(opts, args, cmd)
	if err != nil {
		return f.Fail("invalid tournament", err)
	}
	if errs := compiler.Validate(spec); len(errs) > 0 {
		return outputValidationErrors(f, errs)
	}

	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	s, err := session.New(commandContext(cmd), st, *spec, opts.sessionOptions(cmd)...)
	if err != nil {
		return f.Fail("failed to create session", err)
	}

	view := newSessionView(s)
	return f.Success(view, func(w io.Writer) {
		renderSession(w, view)
	})
}

// newSpec builds the tournament from a CUE file, or from flags. Flags given
// alongside a file override its fields.
func newSpec(opts *NewOptions, args []string, cmd *cobra.Command) (*ir.TournamentSpec, error) {
	spec := &ir.TournamentSpec{}
	if len(args) == 1 {
		loaded, err := compiler.LoadTournamentFile(args[0])
		if err != nil {
			return nil, err
		}
		spec = loaded
	} else if len(opts.Entrants) == 0 {
		return nil, fmt.Errorf("a tournament file or --entrants is required")
	}

	if opts.Name != "" {
		spec.Name = opts.Name
	}
	if spec.Name == "" {
		spec.Name = session.DefaultName
	}
	if len(opts.Entrants) > 0 {
		spec.Entrants = trimAll(opts.Entrants)
	}
	if cmd.Flags().Changed("seed") {
		seed := opts.Seed
		spec.Seed = &seed
	}
	return spec, nil
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
