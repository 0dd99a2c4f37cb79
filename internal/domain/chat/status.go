package chat

import "github.com/BruksfildServices01/plant-decor/internal/httperr"

type Status string

const (
	StatusAIOnly  Status = "ai-only"
	StatusWaiting Status = "waiting"
	StatusActive  Status = "active"
	StatusClosed  Status = "closed"
)

func InitialStatus() Status {
	return StatusAIOnly
}

func (s Status) Open() bool {
	return s != StatusClosed
}

// AwaitingStaff reports whether the assistant still answers the customer.
func (s Status) AwaitingStaff() bool {
	return s == StatusAIOnly || s == StatusWaiting
}

var (
	ErrInvalidState    = httperr.ErrBusiness("invalid_state")
	ErrSessionNotFound = httperr.ErrNotFound("chat_session_not_found")
	ErrSessionClosed   = httperr.ErrBusiness("chat_session_closed")
	ErrEmptyMessage    = httperr.ErrBusiness("empty_message")
)

func CanPost(current Status) error {
	if current == StatusClosed {
		return ErrSessionClosed
	}
	return nil
}

func CanRequestHuman(current Status) error {
	if current != StatusAIOnly {
		return ErrInvalidState
	}
	return nil
}

func CanJoin(current Status) error {
	if current != StatusWaiting {
		return ErrInvalidState
	}
	return nil
}

func CanClose(current Status) error {
	if current == StatusClosed {
		return ErrInvalidState
	}
	return nil
}
