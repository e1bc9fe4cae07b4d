package coach

import (
	"context"
	"time"

	"career-coach/internal/llm"
	"career-coach/internal/shared/telemetry"
)

const (
	defaultCallTimeout = 30 * time.Second
	retryBaseDelay     = 300 * time.Millisecond
)

// retryingClient bounds every gateway call with a timeout and retries once
// after a transport failure. Provider and empty failures are returned as is.
type retryingClient struct {
	base    llm.Client
	timeout time.Duration
	delay   time.Duration
	process string
}

func (r retryingClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	text, err := r.call(ctx, req)
	if err == nil || llm.KindOf(err) != llm.KindTransport {
		return text, err
	}

	telemetry.Warn("coach.llm_retry", map[string]any{
		"process": r.process,
		"attempt": 1,
		"error":   telemetry.Truncate(err.Error(), 300),
	})
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return "", llm.Transport("caller", ctx.Err())
	}
	return r.call(ctx, req)
}

func (r retryingClient) call(ctx context.Context, req llm.Request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	text, err := r.base.Complete(callCtx, req)
	if err != nil && llm.KindOf(err) == "" {
		// Clients outside internal/llm may return bare errors.
		return "", llm.Transport("caller", err)
	}
	return text, err
}
