package telegram

import (
	"anon-chat/contract"
	"anon-chat/domain"
	"anon-chat/domain/event"
	"anon-chat/errors"
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
)

// CallbackAnswerer acknowledges inline button presses.
type CallbackAnswerer interface {
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Router maps one webhook update to one chat service call and turns the
// expected failures into a message for the participant.
type Router struct {
	log        *slog.Logger
	service    contract.IChatService
	dispatcher contract.Dispatcher
	answerer   CallbackAnswerer
}

func NewRouter(log *slog.Logger, service contract.IChatService, dispatcher contract.Dispatcher, answerer CallbackAnswerer) *Router {
	return &Router{log: log, service: service, dispatcher: dispatcher, answerer: answerer}
}

func (r *Router) Handle(ctx context.Context, u Update) error {
	switch {
	case u.CallbackQuery != nil:
		return r.onCallback(ctx, u.CallbackQuery)
	case u.Message != nil:
		return r.onMessage(ctx, u.Message)
	default:
		r.log.Debug("Update ignored", "update_id", u.UpdateID)
		return nil
	}
}

func (r *Router) onCallback(ctx context.Context, cq *CallbackQuery) error {
	if err := r.answerer.AnswerCallback(ctx, cq.ID); err != nil {
		r.log.Debug("Callback not answered", "callback_id", cq.ID, "error", err)
	}
	id := domain.ParticipantID(cq.From.ID)
	if cq.Message != nil {
		id = domain.ParticipantID(cq.Message.Chat.ID)
	}
	if cq.Data != NewChatCallback {
		r.log.Debug("Unknown callback", "participant_id", id, "data", cq.Data)
		return nil
	}
	if err := r.service.Identify(id, cq.From.Username); err != nil {
		return r.recover(ctx, id, err, false)
	}
	return r.recover(ctx, id, r.service.OnRequestPartner(ctx, id), false)
}

func (r *Router) onMessage(ctx context.Context, m *Message) error {
	id := domain.ParticipantID(m.Chat.ID)
	switch command(m.Text) {
	case "/start":
		return r.recover(ctx, id, r.service.OnIdentityEstablished(ctx, id, m.Chat.Username), false)
	case "/stop":
		return r.recover(ctx, id, r.service.OnStop(ctx, id), false)
	}

	content, ok := m.Content()
	if !ok {
		r.log.Debug("Unsupported message", "participant_id", id, "message_id", m.MessageID)
		return nil
	}
	if choice, ok := domain.ChoiceFromContent(content); ok {
		var err error
		if choice == domain.Like {
			err = r.service.OnLikeSignal(ctx, id)
		} else {
			err = r.service.OnDislikeSignal(ctx, id)
		}
		return r.recover(ctx, id, err, true)
	}
	return r.recover(ctx, id, r.service.OnContent(ctx, id, content), false)
}

// recover tells the participant about an expected failure and swallows it.
// Unexpected errors are returned untouched.
func (r *Router) recover(ctx context.Context, id domain.ParticipantID, err error, signal bool) error {
	if err == nil {
		return nil
	}
	var actions []event.Action
	switch {
	case stderrors.Is(err, errors.ErrMissingIdentity):
		actions = notify(id, event.MissingIdentity)
	case stderrors.Is(err, errors.ErrAlreadyWaiting):
		actions = notify(id, event.StillSearching)
	case stderrors.Is(err, errors.ErrAlreadyActive):
		actions = notify(id, event.AlreadyPaired)
	case stderrors.Is(err, errors.ErrNoActiveSession) && signal:
		actions = append(notify(id, event.NoConversation), event.ClearResponseControls{To: id})
	case stderrors.Is(err, errors.ErrNoActiveSession):
		actions = notify(id, event.NotInConversation)
	case stderrors.Is(err, errors.ErrPartnerUnreachable):
		actions = notify(id, event.PartnerUnreachable)
	case stderrors.Is(err, errors.ErrInvalidContent), stderrors.Is(err, errors.ErrDeliveryFailed):
		r.log.Warn("Update dropped", "participant_id", id, "error", err)
		return nil
	default:
		return err
	}
	r.log.Debug("Answering failed request", "participant_id", id, "error", err)
	if derr := r.dispatcher.Deliver(ctx, id, actions); derr != nil {
		r.log.Warn("Failure notice not delivered", "participant_id", id, "error", derr)
	}
	return nil
}

func notify(id domain.ParticipantID, t event.Template) []event.Action {
	return []event.Action{event.Notify{To: id, Template: t}}
}

// command extracts "/start" from "/start", "/start payload" or "/start@bot".
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd
}
