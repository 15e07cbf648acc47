package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAppendAndHistory(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RolePatient, Content: "I have a headache"}))
	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RoleAssistant, Content: "How long has it lasted?"}))

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, RolePatient, turns[0].Role)
	assert.Equal(t, "How long has it lasted?", turns[1].Content)
}

func TestMemoryStoreEvictsOldestBeyondWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < MaxTurns+2; i++ {
		require.NoError(t, store.Append(ctx, "s1", Turn{
			Role:    RolePatient,
			Content: fmt.Sprintf("turn %d", i),
		}))
	}

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, MaxTurns)
	assert.Equal(t, "turn 2", turns[0].Content, "oldest turns are evicted first")
	assert.Equal(t, fmt.Sprintf("turn %d", MaxTurns+1), turns[len(turns)-1].Content)
}

func TestMemoryStoreSessionsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "a", Turn{Role: RolePatient, Content: "fever"}))
	require.NoError(t, store.Append(ctx, "b", Turn{Role: RolePatient, Content: "cough"}))

	turnsA, err := store.History(ctx, "a")
	require.NoError(t, err)
	turnsB, err := store.History(ctx, "b")
	require.NoError(t, err)

	require.Len(t, turnsA, 1)
	require.Len(t, turnsB, 1)
	assert.Equal(t, "fever", turnsA[0].Content)
	assert.Equal(t, "cough", turnsB[0].Content)
}

func TestMemoryStoreHistoryReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RolePatient, Content: "original"}))

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	turns[0].Content = "mutated"

	again, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Content)
}

func TestMemoryStoreClearIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", Turn{Role: RolePatient, Content: "hello"}))
	require.NoError(t, store.Clear(ctx, "s1"))
	require.NoError(t, store.Clear(ctx, "s1"))
	require.NoError(t, store.Clear(ctx, "never-existed"))

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestMemoryStoreConcurrentSessions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const sessions = 8
	const appends = 25

	var wg sync.WaitGroup
	for s := 0; s < sessions; s++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < appends; i++ {
				_ = store.Append(ctx, id, Turn{Role: RolePatient, Content: fmt.Sprintf("%s-%d", id, i)})
			}
		}(fmt.Sprintf("session-%d", s))
	}
	wg.Wait()

	for s := 0; s < sessions; s++ {
		id := fmt.Sprintf("session-%d", s)
		turns, err := store.History(ctx, id)
		require.NoError(t, err)
		require.Len(t, turns, MaxTurns)
		for i, turn := range turns {
			assert.Equal(t, fmt.Sprintf("%s-%d", id, appends-MaxTurns+i), turn.Content)
		}
	}
}
