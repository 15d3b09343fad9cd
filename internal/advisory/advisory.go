// Package advisory generates short travel safety advisories from incident
// context. A remote text-generation service supplies the primary text; every
// failure path resolves to a deterministic templated fallback, never an
// error, because the feature is a non-essential enrichment.
package advisory

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/intelligrit/incident-atlas/internal/model"
)

// Generator composes a remote text generator with the fallback template.
// A nil Gen means no credential was configured; every request then falls
// back immediately.
type Generator struct {
	Gen     TextGenerator
	Limiter *rate.Limiter
	Timeout time.Duration
}

// New creates a Generator. gen may be nil. requestsPerMinute bounds calls to
// the remote service; requests over the budget fall back rather than queue.
func New(gen TextGenerator, requestsPerMinute float64, timeout time.Duration) *Generator {
	return &Generator{
		Gen:     gen,
		Limiter: rate.NewLimiter(rate.Limit(requestsPerMinute/60), 1),
		Timeout: timeout,
	}
}

// Advise produces an advisory for the given incident context. It never
// returns an error: any problem with the remote call (no credential, rate
// budget exhausted, timeout, API failure) degrades to the fallback template.
func (g *Generator) Advise(ctx context.Context, req model.AdvisoryRequest) model.AdvisoryResult {
	if req.Country == "" {
		req.Country = "Unknown Country"
	}
	if req.Year == "" {
		req.Year = "Unknown Year"
	}

	if g.Gen == nil || !g.Limiter.Allow() {
		return model.AdvisoryResult{Advisory: fallbackAdvisory(req), Source: model.SourceFallback}
	}

	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	text, err := g.Gen.Generate(ctx, buildAdvisoryPrompt(req))
	if err != nil || text == "" {
		return model.AdvisoryResult{Advisory: fallbackAdvisory(req), Source: model.SourceFallback}
	}

	return model.AdvisoryResult{Advisory: text, Source: model.SourcePrimary}
}
