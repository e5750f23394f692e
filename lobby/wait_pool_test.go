package lobby

import (
	"anon-chat/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitPool_FIFO(t *testing.T) {
	req := require.New(t)
	pool := NewWaitPool()
	at := time.Now()

	req.True(pool.Push(alice, at))
	req.True(pool.Push(bob, at.Add(time.Second)))
	req.True(pool.Push(clara, at.Add(2*time.Second)))

	// Duplicates are refused
	req.False(pool.Push(alice, at.Add(3*time.Second)))
	req.Equal(3, pool.Len())

	w, ok := pool.Pop()
	req.True(ok)
	req.Equal(alice, w.ID)
	req.Equal(at, w.EnqueuedAt)
	req.False(pool.Contains(alice))

	req.True(pool.Remove(clara))
	req.False(pool.Remove(clara))

	w, ok = pool.Pop()
	req.True(ok)
	req.Equal(bob, w.ID)

	_, ok = pool.Pop()
	req.False(ok)
}

func TestWaitPool_OlderThan(t *testing.T) {
	req := require.New(t)
	pool := NewWaitPool()
	at := time.Now()

	pool.Push(alice, at)
	pool.Push(bob, at.Add(time.Minute))
	pool.Push(clara, at.Add(2*time.Minute))

	req.Equal([]domain.ParticipantID{alice, bob}, pool.OlderThan(at.Add(90*time.Second)))
	req.Empty(pool.OlderThan(at))
	req.Len(pool.Snapshot(), 3)
}
