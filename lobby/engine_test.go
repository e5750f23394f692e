package lobby

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"anon-chat/errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const (
	alice domain.ParticipantID = 1
	bob   domain.ParticipantID = 2
	clara domain.ParticipantID = 3
	dave  domain.ParticipantID = 4
)

func newTestEngine(t *testing.T) (*Engine, chan event.DomainEvent) {
	t.Helper()
	events := make(chan event.DomainEvent, 64)
	engine := NewEngine(logs.GetLoggerFromLevel(slog.LevelDebug), events)
	return engine, events
}

func registerAll(e *Engine) {
	e.Register(alice, "a")
	e.Register(bob, "b")
	e.Register(clara, "c")
	e.Register(dave, "d")
}

func recipients(actions []event.Action) map[domain.ParticipantID]int {
	res := make(map[domain.ParticipantID]int)
	for _, a := range actions {
		res[a.Recipient()]++
	}
	return res
}

func state(t *testing.T, e *Engine, id domain.ParticipantID) domain.State {
	t.Helper()
	p, ok := e.Participant(id)
	require.True(t, ok)
	return p.State
}

func TestEngine_Scenario_Pairing_And_Mutual_Match(t *testing.T) {
	req := require.New(t)
	engine, _ := newTestEngine(t)
	registerAll(engine)

	// Given Alice is searching
	actions, err := engine.RequestPartner(alice)
	req.NoError(err)
	req.Equal([]event.Action{event.Notify{To: alice, Template: event.Searching}}, actions)
	req.Equal([]domain.ParticipantID{alice}, engine.Waiting())

	// When Bob searches, he is paired with Alice
	actions, err = engine.RequestPartner(bob)
	req.NoError(err)
	req.Empty(engine.Waiting())
	req.Contains(actions, event.Notify{To: alice, Template: event.Connected})
	req.Contains(actions, event.Notify{To: bob, Template: event.Connected})
	req.Contains(actions, event.OfferResponseControls{To: alice, Choices: []domain.Choice{domain.Like, domain.Dislike}})
	req.Contains(actions, event.OfferResponseControls{To: bob, Choices: []domain.Choice{domain.Like, domain.Dislike}})

	// And Clara waits alone
	_, err = engine.RequestPartner(clara)
	req.NoError(err)
	req.Equal([]domain.ParticipantID{clara}, engine.Waiting())

	// When Alice then Bob like each other
	actions, err = engine.Signal(alice, domain.Like)
	req.NoError(err)
	req.Equal([]event.Action{event.Notify{To: alice, Template: event.LikeRecorded}}, actions)

	actions, err = engine.Signal(bob, domain.Like)
	req.NoError(err)

	// Then both get the reveal with both handles
	handles := []string{"b", "a"}
	req.Contains(actions, event.Notify{To: alice, Template: event.MutualMatch, Handles: handles})
	req.Contains(actions, event.Notify{To: bob, Template: event.MutualMatch, Handles: handles})
	req.Contains(actions, event.ClearResponseControls{To: alice})
	req.Contains(actions, event.ClearResponseControls{To: bob})

	// And the session is gone
	req.Equal(domain.Idle, state(t, engine, alice))
	req.Equal(domain.Idle, state(t, engine, bob))
	_, ok := engine.Partner(alice)
	req.False(ok)
	req.Equal(domain.Waiting, state(t, engine, clara))
	req.Equal(Stats{Participants: 4, Waiting: 1, Sessions: 0}, engine.Stats())
}

func TestEngine_RequestPartner_Is_FIFO(t *testing.T) {
	req := require.New(t)
	engine, _ := newTestEngine(t)
	registerAll(engine)

	// Given A, B, C queued in that order
	at := time.Now()
	for i, id := range []domain.ParticipantID{alice, bob, clara} {
		engine.participants.SetState(id, domain.Waiting)
		engine.pool.Push(id, at.Add(time.Duration(i)*time.Second))
	}

	// When D searches
	_, err := engine.RequestPartner(dave)
	req.NoError(err)

	// Then D is paired with A and B, C keep their order
	partner, ok := engine.Partner(dave)
	req.True(ok)
	req.Equal(alice, partner)
	req.Equal([]domain.ParticipantID{bob, clara}, engine.Waiting())
}

func TestEngine_RequestPartner_Skips_Stale_Waiters(t *testing.T) {
	req := require.New(t)
	engine, _ := newTestEngine(t)
	registerAll(engine)

	// Given a stale entry for Alice (idle) and the requester itself in the pool
	engine.pool.Push(alice, time.Now())
	engine.pool.Push(dave, time.Now())
	engine.participants.SetState(bob, domain.Waiting)
	engine.pool.Push(bob, time.Now())

	// When Dave searches
	_, err := engine.RequestPartner(dave)
	req.NoError(err)

	// Then stale entries are discarded and Bob is chosen
	partner, ok := engine.Partner(dave)
	req.True(ok)
	req.Equal(bob, partner)
	req.Empty(engine.Waiting())
	req.Equal(domain.Idle, state(t, engine, alice))
}

func TestEngine_RequestPartner_Preconditions(t *testing.T) {
	req := require.New(t)
	engine, _ := newTestEngine(t)

	// Unknown participant
	_, err := engine.RequestPartner(alice)
	req.ErrorIs(err, errors.ErrMissingIdentity)

	// Registered without handle
	engine.Register(alice, "")
	_, err = engine.RequestPartner(alice)
	req.ErrorIs(err, errors.ErrMissingIdentity)
	req.Empty(engine.Waiting())

	// Handle filled later
	engine.Register(alice, "a")
	_, err = engine.RequestPartner(alice)
	req.NoError(err)

	// Already waiting
	actions, err := engine.RequestPartner(alice)
	req.ErrorIs(err, errors.ErrAlreadyWaiting)
	req.Empty(actions)
	req.Equal([]domain.ParticipantID{alice}, engine.Waiting())

	// Already active
	engine.Register(bob, "b")
	_, err = engine.RequestPartner(bob)
	req.NoError(err)
	_, err = engine.RequestPartner(bob)
	req.ErrorIs(err, errors.ErrAlreadyActive)
}

func TestEngine_Like_Is_Sealed_Until_Mutual(t *testing.T) {
	req := require.New(t)
	engine, _ := newTestEngine(t)
	registerAll(engine)
	_, _ = engine.RequestPartner(alice)
	_, _ = engine.RequestPartner(bob)

	// When only Alice likes, twice
	for range 2 {
		actions, err := engine.Signal(alice, domain.Like)
		req.NoError(err)

		// Then nothing is addressed to Bob
		req.NotContains(recipients(actions), bob)
	}
	req.Equal(domain.Active, state(t, engine, alice))
	req.Equal(domain.Active, state(t, engine, bob))
}

func TestEngine_Dislike_Terminates_Regardless_Of_Likes(t *testing.T) {
	req := require.New(t)
	engine, events := newTestEngine(t)
	registerAll(engine)
	_, _ = engine.RequestPartner(alice)
	_, _ = engine.RequestPartner(bob)
	<-events

	// Given Bob already liked
	_, err := engine.Signal(bob, domain.Like)
	req.NoError(err)

	// When Alice dislikes
	actions, err := engine.Signal(alice, domain.Dislike)
	req.NoError(err)

	// Then both are told and both are idle
	req.Equal([]event.Action{
		event.Notify{To: alice, Template: event.Declined},
		event.ClearResponseControls{To: alice},
		event.Notify{To: bob, Template: event.PartnerDeclined},
		event.ClearResponseControls{To: bob},
	}, actions)
	req.Equal(domain.Idle, state(t, engine, alice))
	req.Equal(domain.Idle, state(t, engine, bob))

	evt := (<-events).(event.SessionEnded)
	req.Equal(event.EndDeclined, evt.Reason)

	// And a stale like cannot leak into a new pairing
	_, _ = engine.RequestPartner(bob)
	_, _ = engine.RequestPartner(clara)
	actions, err = engine.Signal(clara, domain.Like)
	req.NoError(err)
	req.Equal([]event.Action{event.Notify{To: clara, Template: event.LikeRecorded}}, actions)

	// And a second dislike finds nothing
	_, err = engine.Signal(alice, domain.Dislike)
	req.ErrorIs(err, errors.ErrNoActiveSession)
}

func TestEngine_Forward_Relays_Identical_Content(t *testing.T) {
	req := require.New(t)
	engine, events := newTestEngine(t)
	registerAll(engine)
	_, _ = engine.RequestPartner(alice)
	_, _ = engine.RequestPartner(bob)

	photo := domain.Media(domain.KindPhoto, "AgACAgIAAxkBAAIB", "sunset")
	actions, err := engine.Forward(alice, photo)
	req.NoError(err)
	req.Equal([]event.Action{event.DeliverContent{To: bob, Content: photo}}, actions)

	actions, err = engine.Forward(bob, domain.Text("hi"))
	req.NoError(err)
	req.Equal([]event.Action{event.DeliverContent{To: alice, Content: domain.Text("hi")}}, actions)

	// Reserved phrases never travel as chat
	_, err = engine.Forward(alice, domain.Text(domain.LikePhrase))
	req.ErrorIs(err, errors.ErrReservedContent)

	// Invalid descriptors are refused
	_, err = engine.Forward(alice, domain.Content{Kind: "document", Payload: "x"})
	req.ErrorIs(err, errors.ErrInvalidContent)

	// The relay count reaches the ledger event
	engine.Terminate(alice)
	<-events
	evt := (<-events).(event.SessionEnded)
	req.Equal(2, evt.Relayed)
	req.Equal(event.EndStopped, evt.Reason)

	_, err = engine.Forward(alice, photo)
	req.ErrorIs(err, errors.ErrNoActiveSession)
}

func TestEngine_Terminate(t *testing.T) {
	engine, _ := newTestEngine(t)
	registerAll(engine)

	goodbye := func(id domain.ParticipantID) []event.Action {
		return []event.Action{
			event.Notify{To: id, Template: event.Goodbye},
			event.ClearResponseControls{To: id},
		}
	}

	t.Run("idle participant twice is a no-op", func(t *testing.T) {
		req := require.New(t)
		req.Equal(goodbye(clara), engine.Terminate(clara))
		req.Equal(goodbye(clara), engine.Terminate(clara))
		req.Equal(domain.Idle, state(t, engine, clara))
		req.Equal(goodbye(99), engine.Terminate(99))
	})

	t.Run("waiting participant leaves the pool", func(t *testing.T) {
		req := require.New(t)
		_, err := engine.RequestPartner(alice)
		req.NoError(err)
		req.Equal(goodbye(alice), engine.Terminate(alice))
		req.Empty(engine.Waiting())
		req.Equal(domain.Idle, state(t, engine, alice))

		// And a new request starts a fresh search
		actions, err := engine.RequestPartner(alice)
		req.NoError(err)
		req.Equal([]event.Action{event.Notify{To: alice, Template: event.Searching}}, actions)
		engine.Terminate(alice)
	})

	t.Run("active participant ends both sides", func(t *testing.T) {
		req := require.New(t)
		_, _ = engine.RequestPartner(alice)
		_, _ = engine.RequestPartner(bob)

		actions := engine.Terminate(bob)
		req.Equal(append(goodbye(bob),
			event.Notify{To: alice, Template: event.PartnerLeft},
			event.ClearResponseControls{To: alice},
		), actions)
		req.Equal(domain.Idle, state(t, engine, alice))
		req.Equal(domain.Idle, state(t, engine, bob))
		req.Equal(0, engine.Stats().Sessions)

		// Partner stopping afterwards is harmless
		req.Equal(goodbye(alice), engine.Terminate(alice))
	})
}

func TestEngine_Half_Session_Is_Cleaned_Up(t *testing.T) {
	req := require.New(t)
	engine, _ := newTestEngine(t)
	registerAll(engine)
	_, _ = engine.RequestPartner(alice)
	_, _ = engine.RequestPartner(bob)

	// Given Bob's side vanished
	delete(engine.sessions.bySide, bob)

	// When Alice likes
	_, err := engine.Signal(alice, domain.Like)

	// Then the half session is dropped
	req.ErrorIs(err, errors.ErrNoActiveSession)
	req.Equal(0, engine.Stats().Sessions)
	req.Equal(domain.Idle, state(t, engine, alice))
	req.Equal(domain.Idle, state(t, engine, bob))

	// And a dangling Active state is reset too
	engine.participants.SetState(clara, domain.Active)
	_, err = engine.Forward(clara, domain.Text("hello?"))
	req.ErrorIs(err, errors.ErrNoActiveSession)
	req.Equal(domain.Idle, state(t, engine, clara))
}

func TestEngine_ExpireWaiting(t *testing.T) {
	req := require.New(t)
	engine, _ := newTestEngine(t)
	registerAll(engine)

	now := time.Now()
	engine.now = func() time.Time { return now.Add(-time.Hour) }
	_, _ = engine.RequestPartner(alice)
	engine.now = func() time.Time { return now }
	_, _ = engine.RequestPartner(clara) // pairs with Alice
	_, _ = engine.RequestPartner(bob)

	// Only entries older than the cutoff go
	req.Empty(engine.ExpireWaiting(now.Add(-time.Minute)))

	engine.now = func() time.Time { return now.Add(time.Hour) }
	actions := engine.ExpireWaiting(now.Add(time.Minute))
	req.Equal([]event.Action{event.Notify{To: bob, Template: event.WaitExpired}}, actions)
	req.Empty(engine.Waiting())
	req.Equal(domain.Idle, state(t, engine, bob))
	req.Equal(domain.Active, state(t, engine, alice))
}

func TestEngine_Concurrent_Requests_Pair_At_Most_Once(t *testing.T) {
	req := require.New(t)
	engine := NewEngine(slog.Default(), nil)

	const n = 200
	for i := 1; i <= n; i++ {
		engine.Register(domain.ParticipantID(i), fmt.Sprintf("user%d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(id domain.ParticipantID) {
			defer wg.Done()
			if _, err := engine.RequestPartner(id); err != nil {
				errs <- err
			}
			if id%7 == 0 {
				engine.Terminate(id)
			}
		}(domain.ParticipantID(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()

	active := 0
	for i := 1; i <= n; i++ {
		id := domain.ParticipantID(i)
		p, _ := engine.participants.Get(id)
		s, inSession := engine.sessions.Lookup(id)
		inPool := engine.pool.Contains(id)

		// Exclusivity
		req.False(inSession && inPool, "participant %d in pool and session", id)

		switch p.State {
		case domain.Active:
			active++
			req.True(inSession)
			// Symmetry
			back, ok := engine.sessions.Lookup(s.Other(id))
			req.True(ok)
			req.Same(s, back)
			other, _ := engine.participants.Get(s.Other(id))
			req.Equal(domain.Active, other.State)
		case domain.Waiting:
			req.True(inPool)
		case domain.Idle:
			req.False(inSession)
			req.False(inPool)
		}
	}
	req.Equal(2*engine.sessions.Len(), active)
}
