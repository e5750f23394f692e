package telegram

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"anon-chat/errors"
	"anon-chat/mocks"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingAnswerer struct {
	answered []string
}

func (a *recordingAnswerer) AnswerCallback(_ context.Context, id string) error {
	a.answered = append(a.answered, id)
	return nil
}

func newRouter(t *testing.T) (*Router, *mocks.MockIChatService, *mocks.MockDispatcher, *recordingAnswerer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockIChatService(ctrl)
	dispatcher := mocks.NewMockDispatcher(ctrl)
	answerer := &recordingAnswerer{}
	return NewRouter(logs.GetLoggerFromLevel(slog.LevelDebug), service, dispatcher, answerer), service, dispatcher, answerer
}

func message(text string) Update {
	return Update{UpdateID: 1, Message: &Message{MessageID: 1, Chat: Chat{ID: 5, Type: "private", Username: "ali"}, Text: text}}
}

func TestRouter_Commands(t *testing.T) {
	ctx := context.Background()

	t.Run("start establishes identity", func(t *testing.T) {
		req := require.New(t)
		router, service, _, _ := newRouter(t)
		service.EXPECT().OnIdentityEstablished(gomock.Any(), domain.ParticipantID(5), "ali").Return(nil).Times(1)
		req.NoError(router.Handle(ctx, message("/start")))
	})

	t.Run("start without username is answered", func(t *testing.T) {
		req := require.New(t)
		router, service, dispatcher, _ := newRouter(t)
		u := message("/start")
		u.Message.Chat.Username = ""
		service.EXPECT().OnIdentityEstablished(gomock.Any(), domain.ParticipantID(5), "").
			Return(fmt.Errorf("%w: empty", errors.ErrMissingIdentity)).Times(1)
		dispatcher.EXPECT().
			Deliver(gomock.Any(), domain.ParticipantID(5), []event.Action{event.Notify{To: 5, Template: event.MissingIdentity}}).
			Return(nil).Times(1)
		req.NoError(router.Handle(ctx, u))
	})

	t.Run("stop", func(t *testing.T) {
		req := require.New(t)
		router, service, _, _ := newRouter(t)
		service.EXPECT().OnStop(gomock.Any(), domain.ParticipantID(5)).Return(nil).Times(1)
		req.NoError(router.Handle(ctx, message("/stop@AnonBot")))
	})
}

func TestRouter_NewChat_Callback(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	router, service, dispatcher, answerer := newRouter(t)

	u := Update{UpdateID: 2, CallbackQuery: &CallbackQuery{
		ID:      "cb-1",
		From:    User{ID: 5, Username: "ali"},
		Message: &Message{Chat: Chat{ID: 5}},
		Data:    NewChatCallback,
	}}

	gomock.InOrder(
		service.EXPECT().Identify(domain.ParticipantID(5), "ali").Return(nil),
		service.EXPECT().OnRequestPartner(gomock.Any(), domain.ParticipantID(5)).Return(errors.ErrAlreadyWaiting),
	)
	dispatcher.EXPECT().
		Deliver(gomock.Any(), domain.ParticipantID(5), []event.Action{event.Notify{To: 5, Template: event.StillSearching}}).
		Return(nil).Times(1)

	req.NoError(router.Handle(ctx, u))
	req.Equal([]string{"cb-1"}, answerer.answered)
}

func TestRouter_Signals_And_Content(t *testing.T) {
	ctx := context.Background()

	t.Run("like phrase", func(t *testing.T) {
		req := require.New(t)
		router, service, _, _ := newRouter(t)
		service.EXPECT().OnLikeSignal(gomock.Any(), domain.ParticipantID(5)).Return(nil).Times(1)
		req.NoError(router.Handle(ctx, message(domain.LikePhrase)))
	})

	t.Run("dislike phrase outside a conversation", func(t *testing.T) {
		req := require.New(t)
		router, service, dispatcher, _ := newRouter(t)
		service.EXPECT().OnDislikeSignal(gomock.Any(), domain.ParticipantID(5)).Return(errors.ErrNoActiveSession).Times(1)
		dispatcher.EXPECT().
			Deliver(gomock.Any(), domain.ParticipantID(5), []event.Action{
				event.Notify{To: 5, Template: event.NoConversation},
				event.ClearResponseControls{To: 5},
			}).
			Return(nil).Times(1)
		req.NoError(router.Handle(ctx, message(domain.DislikePhrase)))
	})

	t.Run("content outside a conversation", func(t *testing.T) {
		req := require.New(t)
		router, service, dispatcher, _ := newRouter(t)
		service.EXPECT().OnContent(gomock.Any(), domain.ParticipantID(5), domain.Text("salom")).Return(errors.ErrNoActiveSession).Times(1)
		dispatcher.EXPECT().
			Deliver(gomock.Any(), domain.ParticipantID(5), []event.Action{event.Notify{To: 5, Template: event.NotInConversation}}).
			Return(nil).Times(1)
		req.NoError(router.Handle(ctx, message("salom")))
	})

	t.Run("partner unreachable", func(t *testing.T) {
		req := require.New(t)
		router, service, dispatcher, _ := newRouter(t)
		service.EXPECT().OnContent(gomock.Any(), domain.ParticipantID(5), gomock.Any()).
			Return(fmt.Errorf("%w: blocked", errors.ErrPartnerUnreachable)).Times(1)
		dispatcher.EXPECT().
			Deliver(gomock.Any(), domain.ParticipantID(5), []event.Action{event.Notify{To: 5, Template: event.PartnerUnreachable}}).
			Return(nil).Times(1)
		req.NoError(router.Handle(ctx, message("are you there?")))
	})

	t.Run("unexpected error is returned", func(t *testing.T) {
		req := require.New(t)
		router, service, _, _ := newRouter(t)
		boom := fmt.Errorf("boom")
		service.EXPECT().OnContent(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom).Times(1)
		req.ErrorIs(router.Handle(ctx, message("x")), boom)
	})

	t.Run("unsupported message is ignored", func(t *testing.T) {
		req := require.New(t)
		router, _, _, _ := newRouter(t)
		req.NoError(router.Handle(ctx, message("")))
	})
}
