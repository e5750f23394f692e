package lobby

import (
	"anon-chat/domain"
	"container/list"
	"time"

	"github.com/samber/lo"
)

// Waiter is a WaitPool entry.
type Waiter struct {
	ID         domain.ParticipantID
	EnqueuedAt time.Time
}

// WaitPool is a FIFO queue of participants seeking a partner.
// An id appears at most once. Not safe for concurrent use.
type WaitPool struct {
	order *list.List
	index map[domain.ParticipantID]*list.Element
}

func NewWaitPool() *WaitPool {
	return &WaitPool{order: list.New(), index: make(map[domain.ParticipantID]*list.Element)}
}

// Push appends id at the tail. It returns false if id is already queued.
func (w *WaitPool) Push(id domain.ParticipantID, at time.Time) bool {
	if _, ok := w.index[id]; ok {
		return false
	}
	w.index[id] = w.order.PushBack(Waiter{ID: id, EnqueuedAt: at})
	return true
}

// Pop removes and returns the longest waiting entry.
func (w *WaitPool) Pop() (Waiter, bool) {
	front := w.order.Front()
	if front == nil {
		return Waiter{}, false
	}
	waiter := w.order.Remove(front).(Waiter)
	delete(w.index, waiter.ID)
	return waiter, true
}

func (w *WaitPool) Remove(id domain.ParticipantID) bool {
	elem, ok := w.index[id]
	if !ok {
		return false
	}
	w.order.Remove(elem)
	delete(w.index, id)
	return true
}

func (w *WaitPool) Contains(id domain.ParticipantID) bool {
	_, ok := w.index[id]
	return ok
}

func (w *WaitPool) Len() int {
	return w.order.Len()
}

// Snapshot returns the queue content, head first.
func (w *WaitPool) Snapshot() []Waiter {
	res := make([]Waiter, 0, w.order.Len())
	for e := w.order.Front(); e != nil; e = e.Next() {
		res = append(res, e.Value.(Waiter))
	}
	return res
}

// OlderThan lists the ids enqueued strictly before cutoff, head first.
func (w *WaitPool) OlderThan(cutoff time.Time) []domain.ParticipantID {
	expired := lo.Filter(w.Snapshot(), func(item Waiter, _ int) bool {
		return item.EnqueuedAt.Before(cutoff)
	})
	return lo.Map(expired, func(item Waiter, _ int) domain.ParticipantID {
		return item.ID
	})
}
