package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verityhq/verity/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Validate a configuration file",
		Long: `Validate a verity configuration file.

Checks YAML syntax and rejects unknown fields, so typos in option names
fail loudly instead of silently falling back to defaults.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if _, err := config.Load(path); err != nil {
		if formatter.Format == "json" {
			_ = formatter.Success(ValidationResult{Valid: false, Path: path, Error: err.Error()})
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s: %v\n", path, err)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed: %v", err))
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Path: path})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", path)
	return nil
}
