package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/bracket/internal/ir"
	"github.com/roach88/bracket/internal/session"
)

// SessionSummary is one row of the session listing.
type SessionSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Entrants int    `json:"entrants"`
	Seed     uint64 `json:"seed"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [session]",
		Short: "Show a session's bracket, or list sessions",
		Long: `Show a session's bracket grouped by round. Unset labels print as "?".

Without a session id, lists every session in the database.

Examples:
  bracket show
  bracket show 0190c3e2-...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runList(rootOpts, cmd)
			}
			return rootOpts.withSession(cmd, args[0], func(_ context.Context, f *OutputFormatter, s *session.Session) error {
				view := newSessionView(s)
				return f.Success(view, func(w io.Writer) {
					renderSession(w, view)
				})
			})
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.ListSessions(commandContext(cmd))
	if err != nil {
		return f.Fail("failed to list sessions", err)
	}

	summaries := make([]SessionSummary, len(records))
	for i, r := range records {
		summaries[i] = summarize(r)
	}
	return f.Success(summaries, func(w io.Writer) {
		if len(summaries) == 0 {
			fmt.Fprintln(w, "No sessions found.")
			return
		}
		for _, s := range summaries {
			fmt.Fprintf(w, "%s  %s (%d entrants, seed %d)\n", s.ID, s.Name, s.Entrants, s.Seed)
		}
	})
}

func summarize(r ir.SessionRecord) SessionSummary {
	return SessionSummary{ID: r.ID, Name: r.Name, Entrants: len(r.Entrants), Seed: r.Seed}
}
