package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/bracket/internal/session"
	"github.com/roach88/bracket/internal/store"
)

// DatabaseEnv names the environment variable that sets the default --db.
const DatabaseEnv = "BRACKET_DB"

// DefaultDatabase is used when neither --db nor BRACKET_DB is set.
const DefaultDatabase = "bracket.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string

	// IDGenerator overrides session ids (for testing).
	// If nil, sessions use UUIDv7 ids.
	IDGenerator session.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the bracket CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bracket",
		Short: "Single-elimination tournament brackets",
		Long: `Build single-elimination brackets, record results and query them.

Sessions are stored in a SQLite database and rebuilt by replaying their
results, so every command after "new" names the session it works on.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	defaultDB := os.Getenv(DatabaseEnv)
	if defaultDB == "" {
		defaultDB = DefaultDatabase
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", defaultDB, "path to SQLite database (env "+DatabaseEnv+")")

	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewMeetCommand(opts))
	cmd.AddCommand(NewPathCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// logger builds the session logger: Debug with --verbose, Warn otherwise,
// always on stderr.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// sessionOptions returns the options every session opened by the CLI uses.
func (o *RootOptions) sessionOptions(cmd *cobra.Command) []session.Option {
	opts := []session.Option{session.WithLogger(o.logger(cmd))}
	if o.IDGenerator != nil {
		opts = append(opts, session.WithIDGenerator(o.IDGenerator))
	}
	return opts
}

// openStore opens the --db database.
func (o *RootOptions) openStore(f *OutputFormatter) (*store.Store, error) {
	st, err := store.Open(o.Database)
	if err != nil {
		f.Error(ErrCodeDatabase, fmt.Sprintf("failed to open database: %v", err), nil)
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	f.VerboseLog("Opened database %s", o.Database)
	return st, nil
}

// withSession opens the store, resumes session id and calls fn.
func (o *RootOptions) withSession(cmd *cobra.Command, id string, fn func(ctx context.Context, f *OutputFormatter, s *session.Session) error) error {
	f := o.formatter(cmd)
	st, err := o.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := commandContext(cmd)
	s, err := session.Resume(ctx, st, id, o.sessionOptions(cmd)...)
	if err != nil {
		return f.Fail("failed to load session "+id, err)
	}
	f.VerboseLog("Resumed session %s at seq %d", s.ID(), s.Seq())
	return fn(ctx, f, s)
}

// commandContext returns the command's context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
