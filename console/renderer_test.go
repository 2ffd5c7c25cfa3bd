package console

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	vassert "github.com/verityhq/verity/assert"
	"github.com/verityhq/verity/config"
)

// plainConfig keeps output deterministic for golden comparison: no ANSI
// escapes, unicode symbols on.
func plainConfig() config.Config {
	return config.Config{
		UseColors:          false,
		UseUnicodeSymbols:  true,
		ShowSuccessDetails: true,
		EnhancedOutput:     true,
	}
}

func sampleFailure() vassert.Snapshot {
	return vassert.Snapshot{
		Label: "n",
		Steps: []vassert.Step{
			{
				Sentence: vassert.Sentence{Subject: "n", Verb: "be", Object: "positive"},
				Passed:   true,
				Op:       vassert.OpAnd,
			},
			{
				Sentence: vassert.Sentence{Subject: "n", Verb: "be", Object: "even", Actual: "5"},
				Passed:   false,
				Op:       vassert.OpNone,
			},
		},
	}
}

func TestRenderSuccess(t *testing.T) {
	r := NewWithWriter(plainConfig(), &bytes.Buffer{})

	snap := vassert.Snapshot{
		Label: "n",
		Steps: []vassert.Step{
			{Sentence: vassert.Sentence{Subject: "n", Verb: "be", Object: "positive"}, Passed: true},
		},
	}

	assert.Equal(t, "✓ n is positive", r.RenderSuccess(snap))
}

func TestRenderSuccess_DetailsDisabled(t *testing.T) {
	cfg := plainConfig()
	cfg.ShowSuccessDetails = false
	r := NewWithWriter(cfg, &bytes.Buffer{})

	assert.Equal(t, "", r.RenderSuccess(sampleFailure()))
}

func TestRenderSuccess_AsciiSymbols(t *testing.T) {
	cfg := plainConfig()
	cfg.UseUnicodeSymbols = false
	r := NewWithWriter(cfg, &bytes.Buffer{})

	snap := vassert.Snapshot{
		Label: "n",
		Steps: []vassert.Step{
			{Sentence: vassert.Sentence{Subject: "n", Verb: "be", Object: "positive"}, Passed: true},
		},
	}

	assert.Equal(t, "+ n is positive", r.RenderSuccess(snap))
}

func TestRenderFailure_Golden(t *testing.T) {
	r := NewWithWriter(plainConfig(), &bytes.Buffer{})

	header, details := r.RenderFailure(sampleFailure())
	out := header + "\n" + details

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "failure_chain", []byte(out))
}

func TestRenderSessionSummary_Golden(t *testing.T) {
	r := NewWithWriter(plainConfig(), &bytes.Buffer{})

	out := r.RenderSessionSummary(2, 1, []vassert.Snapshot{sampleFailure()})

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "session_summary", []byte(out))
}

func TestRenderSessionSummary_NoFailures(t *testing.T) {
	r := NewWithWriter(plainConfig(), &bytes.Buffer{})

	out := r.RenderSessionSummary(3, 0, nil)

	assert.Contains(t, out, "3 passed / 0 failed")
	assert.NotContains(t, out, "Failure Details")
}

func TestPrintFailure(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(plainConfig(), &buf)

	r.PrintFailure(sampleFailure())

	assert.Equal(t,
		"✗ n is positive AND is even\n  ✓ is positive\n  ✗ is even (got 5)\n",
		buf.String())
}

func TestPrintSuccess_SilentWhenDisabled(t *testing.T) {
	cfg := plainConfig()
	cfg.ShowSuccessDetails = false

	var buf bytes.Buffer
	r := NewWithWriter(cfg, &buf)

	r.PrintSuccess(sampleFailure())

	assert.Empty(t, buf.String())
}
