package reqctx

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRun(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithRun(context.Background(), zerolog.New(&buf))

	rc := FromContext(ctx)
	_, err := uuid.Parse(rc.RunID)
	require.NoError(t, err)

	rc.Logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"run_id":"`+rc.RunID+`"`)
}

func TestFromContextMissing(t *testing.T) {
	assert.Equal(t, "unknown", FromContext(context.Background()).RunID)
}

func TestRunError(t *testing.T) {
	ctx := WithRun(context.Background(), zerolog.Nop())
	base := errors.New("write failed")
	err := NewRunError(ctx, base)

	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), FromContext(ctx).RunID)
}
