package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/plant-decor/internal/domain/careservice"
	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
	"github.com/BruksfildServices01/plant-decor/internal/events"
	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/scheduler"
)

const (
	JobCaretakerRelease    = "caretaker:release"
	DefaultCaretakerBuffer = 30 * time.Minute
)

var (
	ErrInvalidCaretakerStatus = httperr.ErrBusiness("invalid_caretaker_status")
	ErrCaretakerBusy          = httperr.ErrBusiness("caretaker_busy")
	ErrCaretakerUnavailable   = httperr.ErrBusiness("caretaker_unavailable")
	ErrCaretakerInBuffer      = httperr.ErrBusiness("caretaker_in_buffer")
)

type NewCareRequest struct {
	CustomerID      string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	CustomerAddress string
	WorkAddress     string

	PackageID   string
	PackageName string
	PackageType models.PackageType
	PlantIDs    []string
	PlantNames  []string

	ScheduledDate time.Time
	BasePrice     int64
	CustomerNotes string
}

type NewProgressLog struct {
	CaretakerID   string
	CaretakerName string
	Action        string
	Description   string
	Photos        []string
}

type NewAddOn struct {
	Name        string
	Description string
	Price       int64
	SuggestedBy string
}

type releasePayload struct {
	CaretakerID string    `json:"caretaker_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type careServiceState struct {
	Requests   []models.CareServiceRequest `json:"requests"`
	Caretakers []models.CaretakerInfo      `json:"caretakers"`
	// caretaker id -> pending release job id
	ReleaseJobs map[string]string `json:"release_jobs,omitempty"`
}

// CareServiceStore owns care requests and the caretaker roster.
type CareServiceStore struct {
	mu     sync.Mutex
	data   careServiceState
	opts   Options
	snap   snapshot
	jobs   scheduler.Scheduler
	buffer time.Duration
}

func NewCareServiceStore(
	ctx context.Context,
	opts Options,
	jobs scheduler.Scheduler,
	buffer time.Duration,
) (*CareServiceStore, error) {

	opts = opts.withDefaults()
	if buffer <= 0 {
		buffer = DefaultCaretakerBuffer
	}

	s := &CareServiceStore{
		opts:   opts,
		snap:   snapshot{repo: opts.Repo, key: state.KeyCareService, log: opts.Log},
		jobs:   jobs,
		buffer: buffer,
	}
	if _, err := s.snap.restore(ctx, &s.data); err != nil {
		return nil, err
	}
	if s.data.ReleaseJobs == nil {
		s.data.ReleaseJobs = map[string]string{}
	}

	jobs.Handle(JobCaretakerRelease, s.handleRelease)
	return s, nil
}

func (s *CareServiceStore) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.Requests) == 0 && len(s.data.Caretakers) == 0
}

// --------------------------------------------------
// Requests
// --------------------------------------------------

func (s *CareServiceStore) CreateRequest(
	ctx context.Context,
	in NewCareRequest,
) (models.CareServiceRequest, error) {

	now := s.opts.Clock.Now()
	r := models.CareServiceRequest{
		ID:              newID("service"),
		CustomerID:      in.CustomerID,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
		CustomerAddress: in.CustomerAddress,
		WorkAddress:     in.WorkAddress,
		PackageID:       in.PackageID,
		PackageName:     in.PackageName,
		PackageType:     in.PackageType,
		PlantIDs:        append([]string(nil), in.PlantIDs...),
		PlantNames:      append([]string(nil), in.PlantNames...),
		Status:          string(domain.InitialStatus()),
		ScheduledDate:   in.ScheduledDate,
		ProgressLogs:    []models.ServiceProgressLog{},
		AddOnServices:   []models.AddOnService{},
		BasePrice:       in.BasePrice,
		TotalPrice:      in.BasePrice,
		CustomerNotes:   in.CustomerNotes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.mu.Lock()
	s.data.Requests = append(s.data.Requests, r)
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, "created", r.ID, now, map[string]any{"package_type": string(r.PackageType)})
	return r.Clone(), nil
}

func (s *CareServiceStore) ConfirmRequest(
	ctx context.Context,
	id string,
	confirmedBy string,
) (models.CareServiceRequest, error) {
	return s.update(ctx, id, "confirmed", nil, func(r *models.CareServiceRequest, now time.Time) error {
		return domain.Confirm(r, confirmedBy, now)
	})
}

// AssignCaretaker makes the caretaker both main and current and marks them
// busy. The caretaker must be available when the lock is taken.
func (s *CareServiceStore) AssignCaretaker(
	ctx context.Context,
	id string,
	caretakerID string,
	caretakerName string,
) (models.CareServiceRequest, error) {

	meta := map[string]any{"caretaker_id": caretakerID}
	return s.update(ctx, id, "assigned", meta, func(r *models.CareServiceRequest, now time.Time) error {
		c := s.caretaker(caretakerID)
		if c == nil {
			return domain.ErrCaretakerNotFound
		}
		if caretakerName == "" {
			caretakerName = c.Name
		}
		if err := domain.Assign(r, caretakerID, caretakerName, now); err != nil {
			return err
		}
		if c.Status != models.CaretakerAvailable {
			return ErrCaretakerUnavailable
		}
		s.occupy(ctx, c, r.ID)
		return nil
	})
}

func (s *CareServiceStore) CheckIn(
	ctx context.Context,
	id string,
	caretakerID string,
	caretakerName string,
) (models.CareServiceRequest, error) {
	return s.update(ctx, id, "checked_in", nil, func(r *models.CareServiceRequest, now time.Time) error {
		if caretakerName == "" {
			caretakerName = r.CurrentCaretakerName
		}
		return domain.CheckIn(r, caretakerID, caretakerName, newID("log"), now)
	})
}

func (s *CareServiceStore) AddProgressLog(
	ctx context.Context,
	id string,
	in NewProgressLog,
) (models.CareServiceRequest, error) {

	meta := map[string]any{"action": in.Action}
	return s.update(ctx, id, "progress_logged", meta, func(r *models.CareServiceRequest, now time.Time) error {
		return domain.AddLog(r, models.ServiceProgressLog{
			ID:            newID("log"),
			CaretakerID:   in.CaretakerID,
			CaretakerName: in.CaretakerName,
			Action:        in.Action,
			Description:   in.Description,
			Photos:        append([]string(nil), in.Photos...),
		}, now)
	})
}

func (s *CareServiceStore) UpdateEstimatedCompletion(
	ctx context.Context,
	id string,
	date time.Time,
) (models.CareServiceRequest, error) {
	return s.update(ctx, id, "estimate_updated", nil, func(r *models.CareServiceRequest, now time.Time) error {
		return domain.UpdateEstimatedCompletion(r, date, now)
	})
}

func (s *CareServiceStore) SuggestAddOn(
	ctx context.Context,
	id string,
	in NewAddOn,
) (models.CareServiceRequest, error) {

	meta := map[string]any{"price": in.Price}
	return s.update(ctx, id, "add_on_suggested", meta, func(r *models.CareServiceRequest, now time.Time) error {
		return domain.SuggestAddOn(r, models.AddOnService{
			ID:          newID("addon"),
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			SuggestedBy: in.SuggestedBy,
		}, now)
	})
}

func (s *CareServiceStore) ApproveAddOn(
	ctx context.Context,
	id string,
	addOnID string,
) (models.CareServiceRequest, error) {

	meta := map[string]any{"add_on_id": addOnID}
	return s.update(ctx, id, "add_on_approved", meta, func(r *models.CareServiceRequest, now time.Time) error {
		return domain.ApproveAddOn(r, addOnID, now)
	})
}

func (s *CareServiceStore) RejectAddOn(
	ctx context.Context,
	id string,
	addOnID string,
) (models.CareServiceRequest, error) {

	meta := map[string]any{"add_on_id": addOnID}
	return s.update(ctx, id, "add_on_rejected", meta, func(r *models.CareServiceRequest, now time.Time) error {
		return domain.RejectAddOn(r, addOnID, now)
	})
}

// HandoverToCaretaker moves current responsibility to an available
// caretaker. Busy status follows the current caretaker.
func (s *CareServiceStore) HandoverToCaretaker(
	ctx context.Context,
	id string,
	actorID string,
	newCaretakerID string,
	newCaretakerName string,
) (models.CareServiceRequest, error) {

	meta := map[string]any{"to_caretaker_id": newCaretakerID}
	return s.update(ctx, id, "handed_over", meta, func(r *models.CareServiceRequest, now time.Time) error {
		next := s.caretaker(newCaretakerID)
		if next == nil {
			return domain.ErrCaretakerNotFound
		}
		if newCaretakerName == "" {
			newCaretakerName = next.Name
		}
		previous := r.CurrentCaretakerID
		if err := domain.Handover(r, actorID, newCaretakerID, newCaretakerName, newID("log"), now); err != nil {
			return err
		}
		if next.Status != models.CaretakerAvailable {
			return ErrCaretakerUnavailable
		}
		meta["from_caretaker_id"] = previous
		s.vacate(previous, r.ID)
		s.occupy(ctx, next, r.ID)
		return nil
	})
}

func (s *CareServiceStore) ReclaimTask(
	ctx context.Context,
	id string,
	mainCaretakerID string,
) (models.CareServiceRequest, error) {
	return s.update(ctx, id, "reclaimed", nil, func(r *models.CareServiceRequest, now time.Time) error {
		previous := r.CurrentCaretakerID
		if err := domain.Reclaim(r, mainCaretakerID, newID("log"), now); err != nil {
			return err
		}
		main := s.caretaker(mainCaretakerID)
		if main != nil && main.Status != models.CaretakerAvailable {
			return ErrCaretakerUnavailable
		}
		s.vacate(previous, r.ID)
		if main != nil {
			s.occupy(ctx, main, r.ID)
		}
		return nil
	})
}

// CompleteService closes the visit and puts the current caretaker into
// buffer. A deferred job returns them to available once the buffer elapses.
func (s *CareServiceStore) CompleteService(
	ctx context.Context,
	id string,
) (models.CareServiceRequest, error) {

	meta := map[string]any{}
	return s.update(ctx, id, "completed", meta, func(r *models.CareServiceRequest, now time.Time) error {
		if err := domain.Complete(r, now); err != nil {
			return err
		}
		meta["caretaker_id"] = r.CurrentCaretakerID
		meta["total_price"] = r.TotalPrice

		c := s.caretaker(r.CurrentCaretakerID)
		if c == nil {
			return nil
		}
		c.Status = models.CaretakerBuffer
		c.CurrentTaskID = ""
		c.LastTaskCompletedAt = &now
		s.scheduleRelease(ctx, c.UserID, now)
		return nil
	})
}

// CancelRequest cancels from any non-terminal state. The reason is recorded in
// the published event only.
func (s *CareServiceStore) CancelRequest(
	ctx context.Context,
	id string,
	reason string,
) (models.CareServiceRequest, error) {

	meta := map[string]any{}
	if reason != "" {
		meta["reason"] = reason
	}
	return s.update(ctx, id, "cancelled", meta, func(r *models.CareServiceRequest, now time.Time) error {
		if err := domain.Cancel(r, now); err != nil {
			return err
		}
		s.vacate(r.CurrentCaretakerID, r.ID)
		return nil
	})
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (s *CareServiceStore) GetRequestByID(id string) (models.CareServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.CareServiceRequest{}, domain.ErrRequestNotFound
	}
	return s.data.Requests[i].Clone(), nil
}

func (s *CareServiceStore) ListRequests() []models.CareServiceRequest {
	return s.filter(func(models.CareServiceRequest) bool { return true })
}

func (s *CareServiceStore) GetRequestsByCustomer(customerID string) []models.CareServiceRequest {
	return s.filter(func(r models.CareServiceRequest) bool { return r.CustomerID == customerID })
}

func (s *CareServiceStore) GetRequestsByStatus(status domain.Status) []models.CareServiceRequest {
	return s.filter(func(r models.CareServiceRequest) bool { return domain.Status(r.Status) == status })
}

// GetRequestsByCaretaker matches either the main or the current caretaker.
func (s *CareServiceStore) GetRequestsByCaretaker(caretakerID string) []models.CareServiceRequest {
	return s.filter(func(r models.CareServiceRequest) bool {
		return r.MainCaretakerID == caretakerID || r.CurrentCaretakerID == caretakerID
	})
}

func (s *CareServiceStore) GetPendingRequests() []models.CareServiceRequest {
	return s.filter(func(r models.CareServiceRequest) bool { return domain.Status(r.Status).Pending() })
}

func (s *CareServiceStore) GetActiveRequests() []models.CareServiceRequest {
	return s.filter(func(r models.CareServiceRequest) bool { return domain.Status(r.Status).Active() })
}

func (s *CareServiceStore) filter(keep func(models.CareServiceRequest) bool) []models.CareServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.CareServiceRequest{}
	for _, r := range s.data.Requests {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// --------------------------------------------------
// Caretakers
// --------------------------------------------------

// UpsertCaretaker registers a caretaker, or updates the profile of a known one.
func (s *CareServiceStore) UpsertCaretaker(
	ctx context.Context,
	c models.CaretakerInfo,
) (models.CaretakerInfo, error) {

	if c.Status == "" {
		c.Status = models.CaretakerAvailable
	}
	if !c.Status.Valid() {
		return models.CaretakerInfo{}, ErrInvalidCaretakerStatus
	}

	s.mu.Lock()
	if existing := s.caretaker(c.UserID); existing != nil {
		// profile only; status and task are owned by the workflow
		existing.Name = c.Name
		existing.Phone = c.Phone
		existing.Skills = append([]models.PackageType{}, c.Skills...)
		c = existing.Clone()
	} else {
		s.data.Caretakers = append(s.data.Caretakers, c.Clone())
	}
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, "caretaker_updated", c.UserID, s.opts.Clock.Now(), map[string]any{"status": string(c.Status)})
	return c.Clone(), nil
}

// UpdateCaretakerStatus sets a caretaker's status. A caretaker holding a task
// cannot leave busy by hand, and buffer only ends through a release or leave.
func (s *CareServiceStore) UpdateCaretakerStatus(
	ctx context.Context,
	caretakerID string,
	status models.CaretakerStatus,
) (models.CaretakerInfo, error) {

	if !status.Valid() {
		return models.CaretakerInfo{}, ErrInvalidCaretakerStatus
	}

	s.mu.Lock()
	c := s.caretaker(caretakerID)
	if c == nil {
		s.mu.Unlock()
		return models.CaretakerInfo{}, domain.ErrCaretakerNotFound
	}
	if c.CurrentTaskID != "" && status != models.CaretakerBusy {
		s.mu.Unlock()
		return models.CaretakerInfo{}, ErrCaretakerBusy
	}
	if c.Status == models.CaretakerBuffer && status != models.CaretakerBuffer {
		if status != models.CaretakerOnLeave {
			s.mu.Unlock()
			return models.CaretakerInfo{}, ErrCaretakerInBuffer
		}
		s.cancelRelease(ctx, caretakerID)
	}
	c.Status = status
	out := c.Clone()
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, "caretaker_updated", caretakerID, s.opts.Clock.Now(), map[string]any{"status": string(status)})
	return out, nil
}

func (s *CareServiceStore) GetCaretaker(caretakerID string) (models.CaretakerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.caretaker(caretakerID)
	if c == nil {
		return models.CaretakerInfo{}, domain.ErrCaretakerNotFound
	}
	return c.Clone(), nil
}

func (s *CareServiceStore) ListCaretakers() []models.CaretakerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CaretakerInfo, 0, len(s.data.Caretakers))
	for _, c := range s.data.Caretakers {
		out = append(out, c.Clone())
	}
	return out
}

// GetAvailableCaretakers lists available caretakers skilled for packageType.
// An empty packageType matches any skill.
func (s *CareServiceStore) GetAvailableCaretakers(packageType models.PackageType) []models.CaretakerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.CaretakerInfo{}
	for _, c := range s.data.Caretakers {
		if c.Status != models.CaretakerAvailable {
			continue
		}
		if packageType != "" && !c.HasSkill(packageType) {
			continue
		}
		out = append(out, c.Clone())
	}
	return out
}

// ReleaseCaretaker moves a caretaker from buffer to available. It reports
// false when the caretaker is no longer in buffer.
func (s *CareServiceStore) ReleaseCaretaker(ctx context.Context, caretakerID string) (bool, error) {
	s.mu.Lock()
	c := s.caretaker(caretakerID)
	if c == nil {
		s.mu.Unlock()
		return false, domain.ErrCaretakerNotFound
	}
	if c.Status != models.CaretakerBuffer {
		s.mu.Unlock()
		return false, nil
	}
	c.Status = models.CaretakerAvailable
	delete(s.data.ReleaseJobs, caretakerID)
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, "caretaker_released", caretakerID, s.opts.Clock.Now(), nil)
	return true, nil
}

// ReleaseExpiredBuffers releases every caretaker whose buffer window ended at
// or before now. It recovers releases lost by a restart.
func (s *CareServiceStore) ReleaseExpiredBuffers(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	var released []string
	for i := range s.data.Caretakers {
		c := &s.data.Caretakers[i]
		if c.Status != models.CaretakerBuffer {
			continue
		}
		if c.LastTaskCompletedAt != nil && now.Before(c.LastTaskCompletedAt.Add(s.buffer)) {
			continue
		}
		c.Status = models.CaretakerAvailable
		s.cancelRelease(ctx, c.UserID)
		released = append(released, c.UserID)
	}
	if len(released) > 0 {
		s.snap.persist(ctx, s.data)
	}
	s.mu.Unlock()

	for _, id := range released {
		s.publish(ctx, "caretaker_released", id, now, map[string]any{"swept": true})
	}
	return len(released), nil
}

func (s *CareServiceStore) handleRelease(ctx context.Context, payload []byte) error {
	var p releasePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode release payload: %w", err)
	}

	s.mu.Lock()
	c := s.caretaker(p.CaretakerID)
	stale := c == nil ||
		c.Status != models.CaretakerBuffer ||
		c.LastTaskCompletedAt == nil ||
		!c.LastTaskCompletedAt.Equal(p.CompletedAt)
	s.mu.Unlock()

	if stale {
		s.opts.Log.Debug("skipping stale caretaker release", zap.String("caretaker_id", p.CaretakerID))
		return nil
	}
	_, err := s.ReleaseCaretaker(ctx, p.CaretakerID)
	return err
}

// --------------------------------------------------
// helpers (callers hold s.mu)
// --------------------------------------------------

func (s *CareServiceStore) update(
	ctx context.Context,
	id string,
	action string,
	meta map[string]any,
	fn func(r *models.CareServiceRequest, now time.Time) error,
) (models.CareServiceRequest, error) {

	now := s.opts.Clock.Now()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.CareServiceRequest{}, domain.ErrRequestNotFound
	}

	// work on a copy so a rejected transition leaves no partial changes
	r := s.data.Requests[i].Clone()
	if err := fn(&r, now); err != nil {
		s.mu.Unlock()
		return models.CareServiceRequest{}, err
	}
	s.data.Requests[i] = r
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, action, id, now, meta)
	return r.Clone(), nil
}

func (s *CareServiceStore) publish(ctx context.Context, action, entityID string, at time.Time, meta map[string]any) {
	s.opts.Bus.Publish(events.Event{
		Store:    events.StoreCareService,
		Action:   action,
		EntityID: entityID,
		ActorID:  events.ActorFrom(ctx),
		Metadata: meta,
		At:       at,
	})
}

func (s *CareServiceStore) indexOf(id string) int {
	for i := range s.data.Requests {
		if s.data.Requests[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *CareServiceStore) caretaker(id string) *models.CaretakerInfo {
	if id == "" {
		return nil
	}
	for i := range s.data.Caretakers {
		if s.data.Caretakers[i].UserID == id {
			return &s.data.Caretakers[i]
		}
	}
	return nil
}

func (s *CareServiceStore) occupy(ctx context.Context, c *models.CaretakerInfo, requestID string) {
	if c.Status == models.CaretakerBuffer {
		s.cancelRelease(ctx, c.UserID)
	}
	c.Status = models.CaretakerBusy
	c.CurrentTaskID = requestID
}

// vacate frees a caretaker only while they are busy on requestID.
func (s *CareServiceStore) vacate(caretakerID, requestID string) {
	c := s.caretaker(caretakerID)
	if c == nil || c.CurrentTaskID != requestID {
		return
	}
	c.Status = models.CaretakerAvailable
	c.CurrentTaskID = ""
}

func (s *CareServiceStore) scheduleRelease(ctx context.Context, caretakerID string, completedAt time.Time) {
	s.cancelRelease(ctx, caretakerID)

	payload, err := json.Marshal(releasePayload{CaretakerID: caretakerID, CompletedAt: completedAt})
	if err != nil {
		s.opts.Log.Error("encode release payload", zap.Error(err))
		return
	}
	jobID, err := s.jobs.Schedule(ctx, JobCaretakerRelease, payload, s.buffer)
	if err != nil {
		// the sweeper releases the caretaker instead
		s.opts.Log.Warn("schedule caretaker release", zap.String("caretaker_id", caretakerID), zap.Error(err))
		return
	}
	s.data.ReleaseJobs[caretakerID] = jobID
}

func (s *CareServiceStore) cancelRelease(ctx context.Context, caretakerID string) {
	jobID, ok := s.data.ReleaseJobs[caretakerID]
	if !ok {
		return
	}
	delete(s.data.ReleaseJobs, caretakerID)
	if err := s.jobs.Cancel(ctx, jobID); err != nil {
		s.opts.Log.Warn("cancel caretaker release", zap.String("job_id", jobID), zap.Error(err))
	}
}
