package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/bracket/internal/session"
)

// MeetView is the JSON form of a would-meet query.
type MeetView struct {
	Players [2]string `json:"players"`
	Meet    bool      `json:"meet"`
	Match   int       `json:"match,omitempty"`
	Round   int       `json:"round,omitempty"`
}

// PathView is the JSON form of a path query.
type PathView struct {
	Player  string `json:"player"`
	Matches []int  `json:"matches"`
}

// NewMeetCommand creates the meet command.
func NewMeetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meet <session> <player1> <player2>",
		Short: "Find the match where two players would meet",
		Long: `Find the earliest match at which two players would meet if both
kept winning. Results recorded so far don't change the answer.

Examples:
  bracket meet 0190c3e2-... A D`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p1, p2 := args[1], args[2]
			return rootOpts.withSession(cmd, args[0], func(_ context.Context, f *OutputFormatter, s *session.Session) error {
				view := MeetView{Players: [2]string{p1, p2}}
				if m, ok := s.WouldMeet(p1, p2); ok {
					view.Meet, view.Match, view.Round = true, m.MatchID, m.Round
				}
				return f.Success(view, func(w io.Writer) {
					if !view.Meet {
						fmt.Fprintf(w, "%s and %s never meet\n", p1, p2)
						return
					}
					fmt.Fprintf(w, "%s and %s would meet in match %d (round %d)\n", p1, p2, view.Match, view.Round)
				})
			})
		},
	}

	return cmd
}

// NewPathCommand creates the path command.
func NewPathCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <session> <player>",
		Short: "List the matches on a player's path to the final",
		Long: `List, in ascending order, the ids of the matches above a player's slot:
the matches the player plays if they keep winning.

Examples:
  bracket path 0190c3e2-... A`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			player := args[1]
			return rootOpts.withSession(cmd, args[0], func(_ context.Context, f *OutputFormatter, s *session.Session) error {
				view := PathView{Player: player, Matches: s.PathToFinal(player)}
				return f.Success(view, func(w io.Writer) {
					if len(view.Matches) == 0 {
						fmt.Fprintf(w, "%s: no matches\n", player)
						return
					}
					fmt.Fprintf(w, "%s: %v\n", player, view.Matches)
				})
			})
		},
	}

	return cmd
}
