package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/bracket/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                       `json:"valid"`
	Name     string                     `json:"name,omitempty"`
	Entrants int                        `json:"entrants,omitempty"`
	Errors   []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <tournament.cue>",
		Short: "Validate a tournament definition without creating a session",
		Long: `Compile and validate a CUE tournament definition.

Reports every problem found: empty or reserved entrant ids, preset results
for matches that don't exist, duplicate results and unknown winners.

Exit codes:
  0 - Definition is valid
  1 - Definition has validation errors
  2 - Command error (file not found, CUE compile error)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	spec, err := compiler.LoadTournamentFile(path)
	if err != nil {
		return f.Fail("failed to compile "+path, err)
	}
	f.VerboseLog("Compiled %s: %d entrant(s), %d preset result(s)", path, len(spec.Entrants), len(spec.Results))

	if errs := compiler.Validate(spec); len(errs) > 0 {
		return outputValidationErrors(f, errs)
	}

	result := ValidationResult{Valid: true, Name: spec.Name, Entrants: len(spec.Entrants)}
	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s is valid (%d entrants)\n", spec.Name, len(spec.Entrants))
	})
}

// outputValidationErrors reports validation errors and returns ExitFailure.
func outputValidationErrors(f *OutputFormatter, errs []compiler.ValidationError) error {
	message := fmt.Sprintf("%d validation error(s)", len(errs))
	if f.Format == "json" {
		if err := f.Error(ErrCodeInvalid, message, ValidationResult{Valid: false, Errors: errs}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "✗ %s\n", message)
		for _, e := range errs {
			fmt.Fprintf(f.Writer, "  %s\n", e.Error())
		}
	}
	return NewExitError(ExitFailure, message)
}
