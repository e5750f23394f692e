//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"context"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	return typeName(w)
}

// GetSinkName is the EventSink counterpart of GetWorkerName.
func GetSinkName(s EventSink) string {
	if s == nil {
		return "NilSink"
	}
	return typeName(s)
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Dispatcher delivers the actions addressed to one participant, in order.
type Dispatcher interface {
	Deliver(ctx context.Context, to domain.ParticipantID, actions []event.Action) error
}

// Expirer drops waiters enqueued before cutoff and returns how many went.
type Expirer interface {
	ExpireWaiting(ctx context.Context, cutoff time.Time) int
}

// Deduplicator reports whether an inbound update is seen for the first time.
type Deduplicator interface {
	FirstSeen(ctx context.Context, updateID int64) (bool, error)
}

// IChatService is the inbound surface of the core offered to transports.
type IChatService interface {
	Identify(id domain.ParticipantID, handle string) error
	OnIdentityEstablished(ctx context.Context, id domain.ParticipantID, handle string) error
	OnRequestPartner(ctx context.Context, id domain.ParticipantID) error
	OnLikeSignal(ctx context.Context, id domain.ParticipantID) error
	OnDislikeSignal(ctx context.Context, id domain.ParticipantID) error
	OnContent(ctx context.Context, id domain.ParticipantID, content domain.Content) error
	OnStop(ctx context.Context, id domain.ParticipantID) error
}
