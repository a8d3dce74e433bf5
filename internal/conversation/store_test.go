package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	caption := "release day"
	want := Data{
		MusicID:                123,
		PromptMessageID:        45,
		ChannelCaption:         &caption,
		CaptionPromptMessageID: 46,
	}
	require.NoError(t, store.Set(ctx, 7, StateWaitingForChannelCaption, want))

	state, data, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, StateWaitingForChannelCaption, state)
	assert.Equal(t, want, data)
}

func TestMemoryStoreGetAbsent(t *testing.T) {
	store := NewMemoryStore()
	state, data, err := store.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrNoState)
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, Data{}, data)
}

func TestMemoryStoreClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, 1, StateWaitingForLyrics, Data{MusicID: 5}))
	require.NoError(t, store.Clear(ctx, 1))
	require.NoError(t, store.Clear(ctx, 1))

	_, _, err := store.Get(ctx, 1)
	assert.True(t, errors.Is(err, ErrNoState))
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, 3, StateWaitingForLyrics, Data{MusicID: 10}))
	require.NoError(t, store.Set(ctx, 3, StateWaitingForTitleName, Data{MusicID: 20}))

	state, data, err := store.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, StateWaitingForTitleName, state)
	assert.Equal(t, int64(20), data.MusicID)
}

// Concurrent writers race on one admin key; the store must stay consistent
// and end up with exactly one of the written values.
func TestMemoryStoreLastWriterWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	states := []State{StateWaitingForLyrics, StateWaitingForNewFile, StateWaitingForArtistName}
	for i, st := range states {
		wg.Add(1)
		go func(st State, id int64) {
			defer wg.Done()
			_ = store.Set(ctx, 42, st, Data{MusicID: id})
		}(st, int64(i+1))
	}
	wg.Wait()

	state, data, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Contains(t, states, state)
	assert.Contains(t, []int64{1, 2, 3}, data.MusicID)
}

func TestStateExpectedInput(t *testing.T) {
	assert.Equal(t, InputAudio, StateWaitingForMusicFile.ExpectedInput())
	assert.Equal(t, InputAudio, StateWaitingForNewFile.ExpectedInput())
	assert.Equal(t, InputText, StateWaitingForLyrics.ExpectedInput())
	assert.Equal(t, InputText, StateWaitingForChannelCaption.ExpectedInput())
	assert.Equal(t, InputNone, StateConfirmChannelPost.ExpectedInput())
	assert.Equal(t, InputNone, State("bogus").ExpectedInput())
}

func TestStateKnown(t *testing.T) {
	assert.True(t, StateIdle.Known())
	assert.True(t, StateConfirmChannelPost.Known())
	assert.False(t, State("waitingForSomethingElse").Known())
}
