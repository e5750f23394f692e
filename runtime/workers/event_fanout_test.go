package workers

import (
	"anon-chat/contract"
	"anon-chat/domain/event"
	"anon-chat/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Fanout(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	first := mocks.NewMockEventSink(ctrl)
	second := mocks.NewMockEventSink(ctrl)

	evt := event.SessionEnded{ID: uuid.New(), Reason: event.EndStopped}

	// Given two sinks, each consumes the event once
	first.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)
	second.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

	fanout := NewEventFanout(log, nil, time.Second, first, second)

	// When the event is fanned out
	fanout.Fanout(context.Background(), evt)
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	slow := mocks.NewMockEventSink(ctrl)
	fast := mocks.NewMockEventSink(ctrl)

	// Given a sink blocking until its deadline
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ event.DomainEvent) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)
	fast.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	fanout := NewEventFanout(log, nil, 20*time.Millisecond, slow, fast)

	// When an event is fanned out
	start := time.Now()
	fanout.Fanout(context.Background(), event.SessionStarted{ID: uuid.New(), At: start})

	// Then the slow sink was cut at its deadline
	req.Less(time.Since(start), time.Second)
}

func TestEventFanout_Run_Until_Channel_Closed(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockEventSink(ctrl)

	events := make(chan event.DomainEvent, 2)
	events <- event.SessionStarted{ID: uuid.New()}
	events <- event.SessionEnded{ID: uuid.New(), Reason: event.EndRevealed}
	close(events)

	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	var worker contract.Worker = NewEventFanout(log, events, time.Second, sink)
	req.NoError(worker.Run(context.Background()))
}
