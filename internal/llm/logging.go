package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/certquiz/internal/eventlog"
)

// LoggingProvider is a decorator that records every LLM request as an event
// in the append-only JSONL log.
type LoggingProvider struct {
	inner Provider
	repo  eventlog.Repo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, repo eventlog.Repo) Provider {
	return &LoggingProvider{inner: p, repo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	e := eventlog.Event{
		Timestamp: start,
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		e.InputTokens = resp.Usage.InputTokens
		e.OutputTokens = resp.Usage.OutputTokens
		e.Model = resp.Model
	}

	if err != nil {
		e.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.repo.Append(ctx, e); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
