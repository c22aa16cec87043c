package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/session"
)

// RecordView is the JSON form of a recorded result.
type RecordView struct {
	Outcome  bracket.Outcome `json:"outcome"`
	Seq      int64           `json:"seq"`
	Champion string          `json:"champion,omitempty"`
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <session> <match> [winner]",
		Short: "Record the result of a match",
		Long: `Record the result of a match.

With a winner, that contender wins. Without one, both sides get a random
score from 0 to 15 and the higher score wins (the left side wins a tie).
A match against a BYE advances the other side regardless of winner.

Exit codes:
  0 - Result recorded
  1 - Result rejected (unknown match, already decided, not ready, bad winner)
  2 - Command error (unknown session, database error)

Examples:
  bracket record 0190c3e2-... 1 A
  bracket record 0190c3e2-... 2`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, err := strconv.Atoi(args[1])
			if err != nil {
				msg := fmt.Sprintf("invalid match id %q", args[1])
				rootOpts.formatter(cmd).Error(ErrCodeGeneric, msg, nil)
				return NewExitError(ExitCommandError, msg)
			}
			winner := ""
			if len(args) == 3 {
				winner = args[2]
			}
			return rootOpts.withSession(cmd, args[0], func(ctx context.Context, f *OutputFormatter, s *session.Session) error {
				return runRecord(ctx, f, s, matchID, winner)
			})
		},
	}

	return cmd
}

func runRecord(ctx context.Context, f *OutputFormatter, s *session.Session, matchID int, winner string) error {
	out, err := s.Record(ctx, matchID, winner)
	if err != nil {
		return f.Fail(fmt.Sprintf("cannot record match %d", matchID), err)
	}

	champ, _ := s.Champion()
	view := RecordView{Outcome: out, Seq: s.Seq(), Champion: champ}
	return f.Success(view, func(w io.Writer) {
		renderOutcome(w, out)
		if champ != "" {
			fmt.Fprintf(w, "Champion: %s\n", champ)
		}
	})
}
