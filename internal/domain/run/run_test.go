package run

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewRun(t *testing.T) {
	start := time.Date(2026, time.October, 18, 6, 0, 0, 0, time.UTC)
	r := New(start)

	require.NotEqual(t, uuid.Nil, r.ID)
	require.Equal(t, StateConfigLoaded, r.State)
	require.False(t, r.State.Terminal())
	require.False(t, r.FinishedAt.Valid)
}

func TestFinishRecordsError(t *testing.T) {
	start := time.Date(2026, time.October, 18, 6, 0, 0, 0, time.UTC)
	r := New(start)
	r.Advance(StateFetched)
	r.Finish(StateAborted, start.Add(time.Second), errors.New("boom"))

	require.True(t, r.State.Terminal())
	require.True(t, r.FinishedAt.Valid)
	require.Equal(t, "boom", r.Error.String)
}

func TestFinishWithoutError(t *testing.T) {
	r := New(time.Now())
	r.Finish(StatePublished, time.Now(), nil)

	require.False(t, r.Error.Valid)
	require.True(t, r.State.Terminal())
}
