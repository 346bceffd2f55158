package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_SettlesOnce(t *testing.T) {
	f := NewFuture()
	assert.False(t, f.Settled())
	assert.NoError(t, f.Err())

	f.Reject(errors.New("404"))
	f.Resolve()
	f.Reject(errors.New("second"))

	require.True(t, f.Settled())
	assert.EqualError(t, f.Err(), "404")
	assert.EqualError(t, f.Wait(context.Background()), "404")
}

func TestFuture_WaitCancelled(t *testing.T) {
	f := NewFuture()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.Settled())
}

func TestAsync(t *testing.T) {
	release := make(chan struct{})
	f := Async(func() error {
		<-release
		return nil
	})

	assert.False(t, f.Settled())
	close(release)

	require.NoError(t, f.Wait(context.Background()))
	assert.True(t, f.Settled())

	failed := Async(func() error { return errors.New("boom") })
	assert.EqualError(t, failed.Wait(context.Background()), "boom")
}
