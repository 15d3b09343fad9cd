package advisory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/intelligrit/incident-atlas/internal/model"
)

type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

func testRequest() model.AdvisoryRequest {
	return model.AdvisoryRequest{
		Country:     "Afghanistan",
		Year:        "2021",
		SummaryText: "Explosion near a market in Kabul.",
		AttackType:  "Bombing/Explosion",
	}
}

func TestAdviseWithoutCredentialFallsBack(t *testing.T) {
	g := New(nil, 30, time.Second)

	result := g.Advise(context.Background(), testRequest())
	if result.Source != model.SourceFallback {
		t.Errorf("expected fallback source, got %q", result.Source)
	}
	if result.Advisory == "" {
		t.Fatal("fallback advisory must not be empty")
	}
	if !strings.Contains(result.Advisory, "Afghanistan") {
		t.Errorf("fallback should embed the country, got %q", result.Advisory)
	}
	if !strings.Contains(result.Advisory, "2021") {
		t.Errorf("fallback should embed the year, got %q", result.Advisory)
	}
	if !strings.Contains(result.Advisory, "Bombing/Explosion") {
		t.Errorf("fallback should embed the attack type, got %q", result.Advisory)
	}
}

func TestAdviseRemoteFailureFallsBack(t *testing.T) {
	g := New(&stubGenerator{err: errors.New("boom")}, 30, time.Second)

	result := g.Advise(context.Background(), testRequest())
	if result.Source != model.SourceFallback {
		t.Errorf("expected fallback source on remote error, got %q", result.Source)
	}
	if !strings.Contains(result.Advisory, "Afghanistan") {
		t.Errorf("fallback should embed the country, got %q", result.Advisory)
	}
}

func TestAdviseRemoteSuccess(t *testing.T) {
	g := New(&stubGenerator{text: "- Threat Level: Medium"}, 30, time.Second)

	result := g.Advise(context.Background(), testRequest())
	if result.Source != model.SourcePrimary {
		t.Errorf("expected primary source, got %q", result.Source)
	}
	if result.Advisory != "- Threat Level: Medium" {
		t.Errorf("unexpected advisory text %q", result.Advisory)
	}
}

func TestAdviseRateBudgetExhaustedFallsBack(t *testing.T) {
	// Zero refill rate: the single burst token is spent on the first call.
	g := New(&stubGenerator{text: "ok"}, 0, time.Second)

	first := g.Advise(context.Background(), testRequest())
	if first.Source != model.SourcePrimary {
		t.Fatalf("first call should reach the remote, got %q", first.Source)
	}

	second := g.Advise(context.Background(), testRequest())
	if second.Source != model.SourceFallback {
		t.Errorf("second call should fall back, got %q", second.Source)
	}
}

func TestAdviseDefaultsMissingCountryAndYear(t *testing.T) {
	g := New(nil, 30, time.Second)

	result := g.Advise(context.Background(), model.AdvisoryRequest{})
	if !strings.Contains(result.Advisory, "Unknown Country") {
		t.Errorf("expected 'Unknown Country' placeholder, got %q", result.Advisory)
	}
	if !strings.Contains(result.Advisory, "Unknown Year") {
		t.Errorf("expected 'Unknown Year' placeholder, got %q", result.Advisory)
	}
	// No attack type supplied: the generic risk wording applies.
	if !strings.Contains(result.Advisory, "violent") {
		t.Errorf("expected generic risk wording, got %q", result.Advisory)
	}
}

func TestBuildAdvisoryPromptEmbedsContext(t *testing.T) {
	prompt := buildAdvisoryPrompt(testRequest())
	for _, want := range []string{"Afghanistan", "2021", "Explosion near a market"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
