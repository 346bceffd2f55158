package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitAssets_NoAssets(t *testing.T) {
	s := newFakeSurface("c1")

	done := make(chan error, 1)
	go func() { done <- AwaitAssets(context.Background(), s) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("gate with no assets must resolve immediately")
	}
}

func TestAwaitAssets_WaitsForAll(t *testing.T) {
	assets := []*fakeAsset{pendingAsset("a.png"), pendingAsset("b.png"), pendingAsset("c.png")}
	s := newFakeSurface("c1", assets[0], assets[1], assets[2])

	done := make(chan error, 1)
	go func() { done <- AwaitAssets(context.Background(), s) }()

	for _, a := range assets[:2] {
		a.future.Resolve()
		select {
		case <-done:
			t.Fatalf("gate resolved before all assets loaded")
		case <-time.After(20 * time.Millisecond):
		}
	}

	assets[2].future.Resolve()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("gate did not resolve after the last asset loaded")
	}
}

func TestAwaitAssets_FirstFailureFailsGate(t *testing.T) {
	ok := loadedAsset("logo.png")
	broken := pendingAsset("https://cdn.example.org/photo.jpg")
	stuck := pendingAsset("never.png")
	s := newFakeSurface("c1", ok, broken, stuck)

	broken.future.Reject(errors.New("net::ERR_NAME_NOT_RESOLVED"))

	err := AwaitAssets(context.Background(), s)
	require.ErrorIs(t, err, ErrAssetLoadFailed)
	assert.Contains(t, err.Error(), "photo.jpg")
}

func TestAwaitAssets_ContextCancellation(t *testing.T) {
	s := newFakeSurface("c1", pendingAsset("never.png"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := AwaitAssets(ctx, s)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrAssetLoadFailed)
}
