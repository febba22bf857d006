package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerDeliversSubmittedJobs(t *testing.T) {
	t.Parallel()

	b := NewBroker(4)
	ctx := context.Background()

	first := NewJob("process", "one")
	second := NewJob("process", "two")
	require.NoError(t, b.Submit(ctx, first))
	require.NoError(t, b.Submit(ctx, second))
	b.Close()

	var got []Job
	for job := range b.Jobs() {
		got = append(got, job)
	}
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestBrokerSubmitAfterCloseFails(t *testing.T) {
	t.Parallel()

	b := NewBroker(1)
	b.Close()

	err := b.Submit(context.Background(), NewJob("process", "late"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBrokerCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	b := NewBroker(1)
	b.Close()
	assert.NotPanics(t, b.Close)
}

func TestBrokerSubmitBlocksUntilConsumedOrCanceled(t *testing.T) {
	t.Parallel()

	b := NewBroker(1)
	ctx := context.Background()
	require.NoError(t, b.Submit(ctx, NewJob("process", "fills the buffer")))

	blockedCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := b.Submit(blockedCtx, NewJob("process", "overflow"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
