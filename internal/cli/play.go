package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/session"
)

// PlayView is the JSON form of a played-out session.
type PlayView struct {
	Outcomes []bracket.Outcome `json:"outcomes"`
	Champion string            `json:"champion,omitempty"`
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <session>",
		Short: "Play every remaining match with random scores",
		Long: `Play every remaining match, lowest match id first, with randomized
scores until the bracket has a champion.

Examples:
  bracket play 0190c3e2-...
  bracket play 0190c3e2-... --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, args[0], runPlay)
		},
	}

	return cmd
}

func runPlay(ctx context.Context, f *OutputFormatter, s *session.Session) error {
	outcomes, err := s.PlayAll(ctx)
	if err != nil {
		return f.Fail("play stopped", err)
	}
	if outcomes == nil {
		outcomes = []bracket.Outcome{}
	}

	champ, _ := s.Champion()
	view := PlayView{Outcomes: outcomes, Champion: champ}
	return f.Success(view, func(w io.Writer) {
		if len(outcomes) == 0 {
			fmt.Fprintln(w, "No matches left to play.")
		}
		for _, o := range outcomes {
			renderOutcome(w, o)
		}
		fmt.Fprintf(w, "Champion: %s\n", label(champ))
	})
}
