// Package domain contains core concepts of the anonymous chat system.
// This file defines Participant entities and their lifecycle states.
// No runtime, network, or UI logic should be added here.
package domain

import "fmt"

// ParticipantID identifies one end user. The Telegram transport uses the chat id.
type ParticipantID int64

type State int

const (
	Idle State = iota
	Waiting
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Waiting:
		return "waiting"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Participant is a snapshot of a registered user.
// A participant without a Handle cannot enter matchmaking.
type Participant struct {
	ID     ParticipantID
	Handle string
	State  State
}

func (p Participant) HasIdentity() bool {
	return p.Handle != ""
}
