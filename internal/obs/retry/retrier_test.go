package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noWait struct{}

func (noWait) Next(int) time.Duration { return 0 }

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("broker unavailable")
		}
		return nil
	}, Policy{Name: "test", Attempts: 5, Backoff: noWait{}})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnPermanent(t *testing.T) {
	calls := 0
	var exhausted error
	p := DefaultMailPolicy(nil)
	p.Backoff = noWait{}
	p.OnExhaust = func(err error) { exhausted = err }

	cause := errors.New("bad payload")
	err := Do(context.Background(), func() error {
		calls++
		return Permanent(cause)
	}, p)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, exhausted, cause)
}

func TestDo_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errors.New("nope")
	}, Policy{Attempts: 4, Backoff: noWait{}})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
}

func TestDo_HonorsContextWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, func() error { return errors.New("x") },
		Policy{Attempts: 3, Backoff: ExpoJitter{Base: time.Hour}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExpoJitter_CapsAtMax(t *testing.T) {
	b := ExpoJitter{Base: time.Second, Max: 4 * time.Second}
	assert.Equal(t, time.Second, b.Next(0))
	assert.Equal(t, 2*time.Second, b.Next(1))
	assert.Equal(t, 4*time.Second, b.Next(5))
}
