package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/bracket/internal/session"
	"github.com/roach88/bracket/internal/store"
)

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Results       int    `json:"results"`
	SnapshotHash  string `json:"snapshot_hash,omitempty"`
	Deterministic bool   `json:"deterministic"`
	Error         string `json:"error,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	TotalSessions    int                   `json:"total_sessions"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [session]",
		Short: "Replay stored sessions and verify determinism",
		Long: `Rebuild sessions from their stored results and verify determinism.

Each session is replayed twice from its stored seed. Every stored result
must produce the stored outcome, and both replays must produce the same
bracket.

Exit codes:
  0 - All sessions replay deterministically
  1 - A session diverged from its log
  2 - Command error (database not found, unknown session, etc.)

Examples:
  bracket replay
  bracket replay 0190c3e2-...
  bracket replay --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := commandContext(cmd)

	var ids []string
	if len(args) == 1 {
		ids = args
	} else {
		records, err := st.ListSessions(ctx)
		if err != nil {
			return f.Fail("failed to list sessions", err)
		}
		for _, r := range records {
			ids = append(ids, r.ID)
		}
	}

	result := ReplayResult{
		Sessions:         make([]ReplaySessionResult, 0, len(ids)),
		TotalSessions:    len(ids),
		AllDeterministic: true,
	}
	for _, id := range ids {
		sr, err := replaySession(ctx, st, id, opts.sessionOptions(cmd))
		if err != nil {
			return f.Fail("failed to replay session "+id, err)
		}
		f.VerboseLog("Replayed %s: %d results", id, sr.Results)
		result.Sessions = append(result.Sessions, sr)
		if !sr.Deterministic {
			result.AllDeterministic = false
		}
	}

	if err := f.Success(result, func(w io.Writer) { outputReplayText(w, result) }); err != nil {
		return err
	}
	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay diverged")
	}
	return nil
}

// replaySession replays id twice and compares the snapshots. Divergence is
// reported in the result; other errors are returned.
func replaySession(ctx context.Context, st *store.Store, id string, opts []session.Option) (ReplaySessionResult, error) {
	rec, err := st.ReadSession(ctx, id)
	if err != nil {
		return ReplaySessionResult{}, err
	}
	results, err := st.ReadResults(ctx, id)
	if err != nil {
		return ReplaySessionResult{}, err
	}
	sr := ReplaySessionResult{ID: id, Name: rec.Name, Results: len(results)}

	var hashes [2]string
	for i := range hashes {
		s, err := session.Resume(ctx, st, id, opts...)
		if session.IsReplayError(err) {
			sr.Error = err.Error()
			return sr, nil
		}
		if err != nil {
			return ReplaySessionResult{}, err
		}
		if hashes[i], err = s.SnapshotHash(); err != nil {
			return ReplaySessionResult{}, err
		}
	}

	sr.SnapshotHash = hashes[0]
	sr.Deterministic = hashes[0] == hashes[1]
	if !sr.Deterministic {
		sr.Error = fmt.Sprintf("snapshot %s differs from %s", hashes[1], hashes[0])
	}
	return sr, nil
}

func outputReplayText(w io.Writer, result ReplayResult) {
	if result.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return
	}
	for _, s := range result.Sessions {
		if s.Deterministic {
			fmt.Fprintf(w, "✓ %s %s (%d results)\n", s.ID, s.Name, s.Results)
			continue
		}
		fmt.Fprintf(w, "✗ %s %s (%d results)\n", s.ID, s.Name, s.Results)
		fmt.Fprintf(w, "  %s\n", s.Error)
	}
	fmt.Fprintf(w, "\nReplayed %d session(s)\n", result.TotalSessions)
}
