package careservice

import "github.com/BruksfildServices01/plant-decor/internal/httperr"

// ===============================
// Care Service Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"

	// Declared by the product but never produced by any transition.
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Active reports whether a caretaker is attached and working the request.
func (s Status) Active() bool {
	return s == StatusAssigned || s == StatusInProgress
}

// Pending reports whether the request still waits for staff action.
func (s Status) Pending() bool {
	return s == StatusPending || s == StatusConfirmed
}

func InitialStatus() Status {
	return StatusPending
}

var (
	ErrInvalidState        = httperr.ErrBusiness("invalid_state")
	ErrRequestNotFound     = httperr.ErrNotFound("care_request_not_found")
	ErrAddOnNotFound       = httperr.ErrNotFound("add_on_not_found")
	ErrCaretakerNotFound   = httperr.ErrNotFound("caretaker_not_found")
	ErrNotCurrentCaretaker = httperr.ErrForbidden("not_current_caretaker")
	ErrNotMainCaretaker    = httperr.ErrForbidden("not_main_caretaker")
	ErrSameCaretaker       = httperr.ErrBusiness("same_caretaker")
)

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return ErrInvalidState
	}
	return nil
}

func CanAssign(current Status) error {
	if current != StatusConfirmed {
		return ErrInvalidState
	}
	return nil
}

func CanCheckIn(current Status) error {
	if current != StatusAssigned {
		return ErrInvalidState
	}
	return nil
}

// CanWorkOn guards actions performed during a visit: progress logs and add-on suggestions.
func CanWorkOn(current Status) error {
	if current != StatusInProgress {
		return ErrInvalidState
	}
	return nil
}

func CanDelegate(current Status) error {
	if !current.Active() {
		return ErrInvalidState
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusInProgress {
		return ErrInvalidState
	}
	return nil
}

func CanCancel(current Status) error {
	if current.Terminal() || current == StatusApproved || current == StatusRejected {
		return ErrInvalidState
	}
	return nil
}

func CanReschedule(current Status) error {
	if current.Terminal() {
		return ErrInvalidState
	}
	return nil
}

func CanDecideAddOn(current Status) error {
	if current == StatusCancelled {
		return ErrInvalidState
	}
	return nil
}
