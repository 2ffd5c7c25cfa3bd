package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verityhq/verity/assert"
	"github.com/verityhq/verity/config"
	"github.com/verityhq/verity/console"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview rendered assertion output",
		Long: `Render a sample passing chain, failing chain, and session summary
with the given configuration, so symbol and color settings can be checked
without running a test session.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(configPath, cmd)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file to preview (defaults apply when omitted)")

	return cmd
}

func runPreview(configPath string, cmd *cobra.Command) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}

	renderer := console.NewWithWriter(cfg, cmd.OutOrStdout())

	passing := assert.Snapshot{
		Label: "response",
		Steps: []assert.Step{
			{Sentence: assert.NewSentence("have", "status 200"), Passed: true},
		},
	}
	failing := assert.Snapshot{
		Label: "count",
		Steps: []assert.Step{
			{Sentence: assert.NewSentence("be", "positive"), Passed: true, Op: assert.OpAnd},
			{Sentence: assert.NewSentence("be", "even").WithActual("3"), Passed: false},
		},
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Sample output:")
	renderer.PrintSuccess(passing)
	renderer.PrintFailure(failing)
	renderer.PrintSessionSummary(1, 1, []assert.Snapshot{failing})
	return nil
}
