package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/ir"
	"github.com/roach88/bracket/internal/store"
)

// DefaultName names sessions whose spec has no name.
const DefaultName = "tournament"

// Session is one tournament: a bracket, its seed and its result log.
type Session struct {
	mu sync.Mutex

	id       string
	name     string
	seed     uint64
	specHash string
	entrants []string

	tree    *bracket.Tree
	applied []request    // accepted requests, in seq order
	store   *store.Store // nil for an unpersisted session
	clock   *Clock
	logger  *slog.Logger
	opts    options

	replaying bool
}

type options struct {
	idGen     IDGenerator
	logger    *slog.Logger
	observers []bracket.Observer
}

// Option configures a Session.
type Option func(*options)

// WithIDGenerator overrides the session id generator (default UUIDv7).
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) {
		o.idGen = g
	}
}

// WithLogger sets the structured logger (default discards).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver receives an event for every randomized result.
func WithObserver(obs bracket.Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.idGen == nil {
		o.idGen = UUIDv7Generator{}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// New creates a session for spec and persists it to st (if non-nil).
//
// If spec.Seed is nil a random seed is chosen and stored. spec.Results are
// recorded in order after the bracket is built; the first failing result
// aborts creation.
func New(ctx context.Context, st *store.Store, spec ir.TournamentSpec, opts ...Option) (*Session, error) {
	o := buildOptions(opts)

	name := spec.Name
	if name == "" {
		name = DefaultName
	}
	seed := rand.Uint64()
	if spec.Seed != nil {
		seed = *spec.Seed
	}

	s := &Session{
		name:     name,
		seed:     seed,
		entrants: append([]string(nil), spec.Entrants...),
		store:    st,
		clock:    NewClock(),
		logger:   o.logger,
		opts:     o,
	}

	tree, err := s.buildTree()
	if err != nil {
		return nil, err
	}
	s.tree = tree

	s.specHash, err = ir.SpecHash(name, s.entrants, seed)
	if err != nil {
		return nil, err
	}
	s.id = o.idGen.Generate()
	s.logger = s.logger.With("session", s.id)

	if st != nil {
		rec := ir.SessionRecord{
			ID:         s.id,
			Name:       name,
			Entrants:   s.entrants,
			Seed:       seed,
			SpecHash:   s.specHash,
			CreatedSeq: s.clock.Next(),
		}
		if err := st.WriteSession(ctx, rec); err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
	}
	s.logger.Info("session created",
		"name", name,
		"entrants", len(s.entrants),
		"rounds", tree.Rounds(),
		"byes", tree.Byes(),
		"seed", seed,
	)

	for i, r := range spec.Results {
		if _, err := s.Record(ctx, r.Match, r.Winner); err != nil {
			return nil, fmt.Errorf("preset result %d: %w", i+1, err)
		}
	}
	return s, nil
}

// Resume rebuilds a stored session by replaying its results.
//
// Returns a *ReplayError if any stored result fails or produces a different
// outcome, and store.ErrSessionNotFound if id is unknown.
func Resume(ctx context.Context, st *store.Store, id string, opts ...Option) (*Session, error) {
	o := buildOptions(opts)

	rec, err := st.ReadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:       rec.ID,
		name:     rec.Name,
		seed:     rec.Seed,
		specHash: rec.SpecHash,
		entrants: rec.Entrants,
		store:    st,
		logger:   o.logger.With("session", rec.ID),
		opts:     o,
	}

	hash, err := ir.SpecHash(rec.Name, rec.Entrants, rec.Seed)
	if err != nil {
		return nil, err
	}
	if hash != rec.SpecHash {
		return nil, &ReplayError{SessionID: id, Expected: "spec hash " + rec.SpecHash, Actual: "spec hash " + hash}
	}

	if err := s.replay(ctx); err != nil {
		return nil, err
	}

	last, err := st.LastSeq(ctx, id)
	if err != nil {
		return nil, err
	}
	s.clock = NewClockAt(last)
	s.logger.Debug("session resumed", "seq", last)
	return s, nil
}

// request is one accepted RecordResult call.
type request struct {
	matchID   int
	requested string
}

// buildTree builds a fresh tree from the session's entrants and seed.
func (s *Session) buildTree() (*bracket.Tree, error) {
	return bracket.New(s.entrants,
		bracket.WithSeed(s.seed),
		bracket.WithObserver(s.notify),
	)
}

// replay rebuilds s.tree from the stored results and verifies each outcome.
// Observers are not notified during replay.
func (s *Session) replay(ctx context.Context) error {
	results, err := s.store.ReadResults(ctx, s.id)
	if err != nil {
		return err
	}

	tree, err := s.buildTree()
	if err != nil {
		return err
	}

	s.replaying = true
	defer func() { s.replaying = false }()

	applied := make([]request, 0, len(results))
	for _, r := range results {
		out, err := tree.RecordResult(r.MatchID, r.Requested)
		if err != nil {
			return &ReplayError{SessionID: s.id, Seq: r.Seq, MatchID: r.MatchID, Err: err}
		}
		if want, got := describeRecord(r), describeOutcome(out); want != got {
			return &ReplayError{SessionID: s.id, Seq: r.Seq, MatchID: r.MatchID, Expected: want, Actual: got}
		}
		applied = append(applied, request{matchID: r.MatchID, requested: r.Requested})
	}
	s.tree = tree
	s.applied = applied
	return nil
}

// rebuild restores s.tree from s.applied without touching the store. The
// seeded source is rebuilt too, so later randomized results draw the same
// values they would have drawn before the discarded request.
func (s *Session) rebuild() error {
	tree, err := s.buildTree()
	if err != nil {
		return err
	}

	s.replaying = true
	defer func() { s.replaying = false }()

	for _, r := range s.applied {
		if _, err := tree.RecordResult(r.matchID, r.requested); err != nil {
			return fmt.Errorf("rebuild match %d: %w", r.matchID, err)
		}
	}
	s.tree = tree
	return nil
}

func describeRecord(r ir.ResultRecord) string {
	if r.Scored {
		return fmt.Sprintf("%s %s (%d-%d)", r.Kind, r.Winner, r.LeftScore, r.RightScore)
	}
	return fmt.Sprintf("%s %s", r.Kind, r.Winner)
}

func describeOutcome(o bracket.Outcome) string {
	if o.Kind == bracket.OutcomeScored {
		return fmt.Sprintf("%s %s (%d-%d)", o.Kind, o.Winner, o.LeftScore, o.RightScore)
	}
	return fmt.Sprintf("%s %s", o.Kind, o.Winner)
}

// notify logs a randomized result and forwards it to observers.
func (s *Session) notify(e bracket.ResultEvent) {
	if s.replaying {
		return
	}
	s.logger.Info("match scored",
		"match", e.MatchID,
		"left", e.Left,
		"left_score", e.LeftScore,
		"right", e.Right,
		"right_score", e.RightScore,
		"winner", e.Winner,
	)
	for _, obs := range s.opts.observers {
		obs(e)
	}
}
