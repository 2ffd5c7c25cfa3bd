// Package console renders assertion outcomes and session summaries for
// terminal output. It is a pure formatter: the reporter decides what gets
// rendered, this package decides how it looks.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verityhq/verity/assert"
	"github.com/verityhq/verity/config"
)

// Renderer formats chain snapshots and session summaries according to a
// read-only config.
type Renderer struct {
	cfg config.Config
	out io.Writer

	success lipgloss.Style
	failure lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
}

// New creates a renderer writing to stdout.
func New(cfg config.Config) *Renderer {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a renderer writing to w. Tests pass a buffer here.
func NewWithWriter(cfg config.Config, w io.Writer) *Renderer {
	r := &Renderer{cfg: cfg, out: w}
	if cfg.UseColors {
		r.success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		r.failure = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		r.pass = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		r.fail = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	} else {
		r.success = lipgloss.NewStyle()
		r.failure = lipgloss.NewStyle()
		r.pass = lipgloss.NewStyle()
		r.fail = lipgloss.NewStyle()
	}
	return r
}

func (r *Renderer) successPrefix() string {
	if r.cfg.UseUnicodeSymbols {
		return "✓ "
	}
	return "+ "
}

func (r *Renderer) failurePrefix() string {
	if r.cfg.UseUnicodeSymbols {
		return "✗ "
	}
	return "- "
}

func (r *Renderer) passSymbol() string {
	if r.cfg.UseUnicodeSymbols {
		return "✓"
	}
	return "+"
}

func (r *Renderer) failSymbol() string {
	if r.cfg.UseUnicodeSymbols {
		return "✗"
	}
	return "-"
}

// RenderSuccess formats a passing chain. Returns the empty string when
// success details are disabled.
func (r *Renderer) RenderSuccess(snap assert.Snapshot) string {
	if !r.cfg.ShowSuccessDetails {
		return ""
	}
	return r.success.Render(r.successPrefix() + snap.Message())
}

// RenderFailure formats a failing chain: a one-line header plus per-step
// detail lines.
func (r *Renderer) RenderFailure(snap assert.Snapshot) (header, details string) {
	header = r.failure.Render(r.failurePrefix() + snap.Message())
	details = r.failureDetails(snap)
	return header, details
}

// failureDetails renders one line per step: the pass/fail symbol followed by
// the conjugated sentence, with the observed value appended on failing steps.
func (r *Renderer) failureDetails(snap assert.Snapshot) string {
	var b strings.Builder
	for _, step := range snap.Steps {
		symbol := r.passSymbol()
		if !step.Passed {
			symbol = r.failSymbol()
		}

		line := step.Sentence.Conjugated(snap.Label)
		if !step.Passed && step.Sentence.Actual != "" {
			line = fmt.Sprintf("%s (got %s)", line, step.Sentence.Actual)
		}

		fmt.Fprintf(&b, "  %s %s\n", symbol, line)
	}
	return b.String()
}

// RenderSessionSummary formats the aggregate session result: the pass/fail
// counts followed by numbered failure details.
func (r *Renderer) RenderSessionSummary(passed, failed uint64, failures []assert.Snapshot) string {
	var b strings.Builder
	b.WriteString("\nTest Results:\n")

	passedMsg := fmt.Sprintf("%d passed", passed)
	failedMsg := fmt.Sprintf("%d failed", failed)
	if passed > 0 {
		passedMsg = r.pass.Render(passedMsg)
	}
	if failed > 0 {
		failedMsg = r.failure.Render(failedMsg)
	}
	fmt.Fprintf(&b, "  %s / %s\n", passedMsg, failedMsg)

	if len(failures) > 0 {
		b.WriteString("\nFailure Details:\n")
		for i, snap := range failures {
			header, details := r.RenderFailure(snap)
			fmt.Fprintf(&b, "  %d. %s\n", i+1, header)
			for _, line := range strings.Split(strings.TrimRight(details, "\n"), "\n") {
				fmt.Fprintf(&b, "     %s\n", line)
			}
		}
	}

	return b.String()
}

// PrintSuccess writes a passing chain to the output, if anything is to be
// shown.
func (r *Renderer) PrintSuccess(snap assert.Snapshot) {
	if msg := r.RenderSuccess(snap); msg != "" {
		fmt.Fprintln(r.out, msg)
	}
}

// PrintFailure writes a failing chain's header and details to the output.
func (r *Renderer) PrintFailure(snap assert.Snapshot) {
	header, details := r.RenderFailure(snap)
	fmt.Fprintln(r.out, header)
	if details != "" {
		fmt.Fprint(r.out, details)
	}
}

// PrintSessionSummary writes the aggregate session result to the output.
func (r *Renderer) PrintSessionSummary(passed, failed uint64, failures []assert.Snapshot) {
	fmt.Fprintln(r.out, r.RenderSessionSummary(passed, failed, failures))
}
