package services

import (
	"anon-chat/contract"
	"anon-chat/domain"
	"anon-chat/domain/event"
	"anon-chat/errors"
	"anon-chat/lobby"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// identity is the only thing checked about a participant.
type identity struct {
	Handle string `validate:"required,max=64"`
}

// Ensure *ChatService implements the inbound contract at compile time.
var (
	_ contract.IChatService = (*ChatService)(nil)
	_ contract.Expirer      = (*ChatService)(nil)
)

// ChatService runs one core operation per inbound call, then delivers the
// resulting actions once the engine lock is released.
type ChatService struct {
	log             *slog.Logger
	engine          *lobby.Engine
	dispatcher      contract.Dispatcher
	deliveryTimeout time.Duration
}

func NewChatService(log *slog.Logger, engine *lobby.Engine, dispatcher contract.Dispatcher, deliveryTimeout time.Duration) *ChatService {
	return &ChatService{log: log, engine: engine, dispatcher: dispatcher, deliveryTimeout: deliveryTimeout}
}

// Identify registers id without notifying anyone.
func (s *ChatService) Identify(id domain.ParticipantID, handle string) error {
	if err := validate.Struct(identity{Handle: handle}); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrMissingIdentity, err)
	}
	s.engine.Register(id, handle)
	return nil
}

func (s *ChatService) OnIdentityEstablished(ctx context.Context, id domain.ParticipantID, handle string) error {
	if err := s.Identify(id, handle); err != nil {
		return err
	}
	return s.deliver(ctx, id, []event.Action{event.Notify{To: id, Template: event.Welcome}})
}

func (s *ChatService) OnRequestPartner(ctx context.Context, id domain.ParticipantID) error {
	actions, err := s.engine.RequestPartner(id)
	if err != nil {
		return err
	}
	return s.deliver(ctx, id, actions)
}

func (s *ChatService) OnLikeSignal(ctx context.Context, id domain.ParticipantID) error {
	return s.signal(ctx, id, domain.Like)
}

func (s *ChatService) OnDislikeSignal(ctx context.Context, id domain.ParticipantID) error {
	return s.signal(ctx, id, domain.Dislike)
}

// OnContent relays content, except the reserved phrases which are signals.
func (s *ChatService) OnContent(ctx context.Context, id domain.ParticipantID, content domain.Content) error {
	if choice, ok := domain.ChoiceFromContent(content); ok {
		return s.signal(ctx, id, choice)
	}
	actions, err := s.engine.Forward(id, content)
	if err != nil {
		return err
	}
	return s.deliver(ctx, id, actions)
}

func (s *ChatService) OnStop(ctx context.Context, id domain.ParticipantID) error {
	return s.deliver(ctx, id, s.engine.Terminate(id))
}

func (s *ChatService) ExpireWaiting(ctx context.Context, cutoff time.Time) int {
	actions := s.engine.ExpireWaiting(cutoff)
	for _, to := range orderedRecipients(actions) {
		if err := s.deliverTo(ctx, to, actions); err != nil {
			s.log.Warn("Wait expiry notice not delivered", "participant_id", to, "error", err)
		}
	}
	return len(actions)
}

func (s *ChatService) Stats() lobby.Stats {
	return s.engine.Stats()
}

func (s *ChatService) signal(ctx context.Context, id domain.ParticipantID, choice domain.Choice) error {
	actions, err := s.engine.Signal(id, choice)
	if err != nil {
		return err
	}
	return s.deliver(ctx, id, actions)
}

// deliver sends every action, grouped per recipient in emission order.
// The state transition is already committed: a failed delivery to the partner
// is reported to the initiator only and never rolls anything back.
func (s *ChatService) deliver(ctx context.Context, initiator domain.ParticipantID, actions []event.Action) error {
	var initiatorErr, partnerErr error
	for _, to := range orderedRecipients(actions) {
		err := s.deliverTo(ctx, to, actions)
		if err == nil {
			continue
		}
		if to == initiator {
			s.log.Warn("Delivery to initiator failed", "participant_id", to, "error", err)
			initiatorErr = err
			continue
		}
		s.log.Warn("Partner unreachable", "participant_id", to, "error", err)
		partnerErr = err
	}
	if partnerErr != nil {
		return fmt.Errorf("%w: %v", errors.ErrPartnerUnreachable, partnerErr)
	}
	return initiatorErr
}

func (s *ChatService) deliverTo(ctx context.Context, to domain.ParticipantID, actions []event.Action) error {
	ctx, cancel := context.WithTimeout(ctx, s.deliveryTimeout)
	defer cancel()
	own := lo.Filter(actions, func(a event.Action, _ int) bool {
		return a.Recipient() == to
	})
	return s.dispatcher.Deliver(ctx, to, own)
}

func orderedRecipients(actions []event.Action) []domain.ParticipantID {
	return lo.Uniq(lo.Map(actions, func(a event.Action, _ int) domain.ParticipantID {
		return a.Recipient()
	}))
}
