package careservice

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/plant-decor/internal/models"
)

const (
	ActionCheckIn  = "Check-in"
	ActionHandover = "Handover"
	ActionReclaim  = "Reclaim"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(r *models.CareServiceRequest, confirmedBy string, now time.Time) error {
	if err := CanConfirm(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusConfirmed)
	r.ConfirmedBy = confirmedBy
	r.ConfirmedAt = &now
	r.UpdatedAt = now
	return nil
}

func Assign(r *models.CareServiceRequest, caretakerID, caretakerName string, now time.Time) error {
	if err := CanAssign(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusAssigned)
	r.MainCaretakerID = caretakerID
	r.MainCaretakerName = caretakerName
	r.CurrentCaretakerID = caretakerID
	r.CurrentCaretakerName = caretakerName
	r.UpdatedAt = now
	return nil
}

func CheckIn(r *models.CareServiceRequest, caretakerID, caretakerName, logID string, now time.Time) error {
	if err := CanCheckIn(Status(r.Status)); err != nil {
		return err
	}
	if r.CurrentCaretakerID != caretakerID {
		return ErrNotCurrentCaretaker
	}

	r.Status = string(StatusInProgress)
	r.CheckInTime = &now
	r.ProgressLogs = append(r.ProgressLogs, models.ServiceProgressLog{
		ID:               logID,
		ServiceRequestID: r.ID,
		CaretakerID:      caretakerID,
		CaretakerName:    caretakerName,
		Action:           ActionCheckIn,
		Description:      "Arrived on site, work started",
		Timestamp:        now,
	})
	r.UpdatedAt = now
	return nil
}

func AddLog(r *models.CareServiceRequest, log models.ServiceProgressLog, now time.Time) error {
	if err := CanWorkOn(Status(r.Status)); err != nil {
		return err
	}

	log.ServiceRequestID = r.ID
	log.Timestamp = now
	r.ProgressLogs = append(r.ProgressLogs, log)
	r.UpdatedAt = now
	return nil
}

func UpdateEstimatedCompletion(r *models.CareServiceRequest, date time.Time, now time.Time) error {
	if err := CanReschedule(Status(r.Status)); err != nil {
		return err
	}

	r.EstimatedCompletionDate = &date
	r.UpdatedAt = now
	return nil
}

// Handover moves current responsibility to another caretaker. Only the main
// caretaker may hand a request over; the main assignment never changes.
func Handover(r *models.CareServiceRequest, actorID, newID, newName, logID string, now time.Time) error {
	if err := CanDelegate(Status(r.Status)); err != nil {
		return err
	}
	if actorID != r.MainCaretakerID {
		return ErrNotMainCaretaker
	}
	if newID == r.CurrentCaretakerID {
		return ErrSameCaretaker
	}

	r.ProgressLogs = append(r.ProgressLogs, models.ServiceProgressLog{
		ID:               logID,
		ServiceRequestID: r.ID,
		CaretakerID:      newID,
		CaretakerName:    newName,
		Action:           ActionHandover,
		Description:      fmt.Sprintf("Task handed over from %s to %s", r.CurrentCaretakerName, newName),
		Timestamp:        now,
	})
	r.CurrentCaretakerID = newID
	r.CurrentCaretakerName = newName
	r.UpdatedAt = now
	return nil
}

func Reclaim(r *models.CareServiceRequest, mainCaretakerID, logID string, now time.Time) error {
	if err := CanDelegate(Status(r.Status)); err != nil {
		return err
	}
	if r.MainCaretakerID == "" || r.MainCaretakerID != mainCaretakerID {
		return ErrNotMainCaretaker
	}
	if r.CurrentCaretakerID == r.MainCaretakerID {
		return ErrSameCaretaker
	}

	r.ProgressLogs = append(r.ProgressLogs, models.ServiceProgressLog{
		ID:               logID,
		ServiceRequestID: r.ID,
		CaretakerID:      mainCaretakerID,
		CaretakerName:    r.MainCaretakerName,
		Action:           ActionReclaim,
		Description:      fmt.Sprintf("%s reclaimed the task from %s", r.MainCaretakerName, r.CurrentCaretakerName),
		Timestamp:        now,
	})
	r.CurrentCaretakerID = r.MainCaretakerID
	r.CurrentCaretakerName = r.MainCaretakerName
	r.UpdatedAt = now
	return nil
}

func Complete(r *models.CareServiceRequest, now time.Time) error {
	if err := CanComplete(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCompleted)
	r.CheckOutTime = &now
	r.ActualCompletionDate = &now
	r.UpdatedAt = now
	return nil
}

func Cancel(r *models.CareServiceRequest, now time.Time) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCancelled)
	r.UpdatedAt = now
	return nil
}
