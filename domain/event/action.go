package event

import "anon-chat/domain"

// Action is an outbound instruction produced by the core.
// The transport decides how each one reaches the participant.
type Action interface {
	Recipient() domain.ParticipantID
}

// Notify asks the transport to show a templated message.
// Handles is only set for MutualMatch and lists the caller's handle first.
type Notify struct {
	To       domain.ParticipantID
	Template Template
	Handles  []string
}

type DeliverContent struct {
	To      domain.ParticipantID
	Content domain.Content
}

type OfferResponseControls struct {
	To      domain.ParticipantID
	Choices []domain.Choice
}

type ClearResponseControls struct {
	To domain.ParticipantID
}

func (a Notify) Recipient() domain.ParticipantID                { return a.To }
func (a DeliverContent) Recipient() domain.ParticipantID        { return a.To }
func (a OfferResponseControls) Recipient() domain.ParticipantID { return a.To }
func (a ClearResponseControls) Recipient() domain.ParticipantID { return a.To }
