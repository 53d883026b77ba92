package reqctx

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type key int

const runKey key = 0

// RunContext identifies one crawl run
type RunContext struct {
	RunID     string
	StartTime time.Time
	Logger    zerolog.Logger
}

// WithRun attaches a new RunContext to ctx. The logger gains a run_id field.
func WithRun(ctx context.Context, logger zerolog.Logger) context.Context {
	id := uuid.NewString()
	return context.WithValue(ctx, runKey, &RunContext{
		RunID:     id,
		StartTime: time.Now(),
		Logger:    logger.With().Str("run_id", id).Logger(),
	})
}

// FromContext returns the RunContext in ctx, or a placeholder when absent
func FromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runKey).(*RunContext); ok {
		return rc
	}
	return &RunContext{
		RunID:     "unknown",
		StartTime: time.Now(),
		Logger:    zerolog.Nop(),
	}
}

// RunError wraps an error with the run that produced it
type RunError struct {
	RunID string
	Err   error
}

// Error implements the error interface
func (e *RunError) Error() string {
	return fmt.Sprintf("[%s] %v", e.RunID, e.Err)
}

// Unwrap returns the underlying error
func (e *RunError) Unwrap() error {
	return e.Err
}

// NewRunError creates a new RunError from context
func NewRunError(ctx context.Context, err error) error {
	return &RunError{
		RunID: FromContext(ctx).RunID,
		Err:   err,
	}
}
