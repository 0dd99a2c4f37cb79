package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/plant-decor/internal/clock"
	domain "github.com/BruksfildServices01/plant-decor/internal/domain/careservice"
	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
	"github.com/BruksfildServices01/plant-decor/internal/events"
	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/infra/repository"
	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/scheduler"
)

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type careFixture struct {
	store *CareServiceStore
	clock *clock.Fake
	jobs  *scheduler.Local
	repo  state.Repository

	mu   sync.Mutex
	seen []events.Event
}

func newCareFixture(t *testing.T) *careFixture {
	t.Helper()
	f := &careFixture{
		clock: clock.NewFake(t0),
		repo:  repository.NewSnapshotMemoryRepository(),
	}
	f.store = f.open(t)
	return f
}

// open builds a store over the fixture's repository, as a restarted process would.
func (f *careFixture) open(t *testing.T) *CareServiceStore {
	t.Helper()
	bus := events.NewBus()
	bus.Subscribe(func(e events.Event) {
		f.mu.Lock()
		f.seen = append(f.seen, e)
		f.mu.Unlock()
	})
	f.jobs = scheduler.NewLocal(f.clock, zap.NewNop())

	s, err := NewCareServiceStore(context.Background(), Options{
		Repo:  f.repo,
		Bus:   bus,
		Clock: f.clock,
	}, f.jobs, 30*time.Minute)
	require.NoError(t, err)
	return s
}

func (f *careFixture) seedCaretakers(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, c := range []models.CaretakerInfo{
		{UserID: "ct-a", Name: "An", Skills: []models.PackageType{models.PackagePlantDoctor, models.PackagePlantSpa}},
		{UserID: "ct-b", Name: "Binh", Skills: []models.PackageType{models.PackagePlantDoctor}},
		{UserID: "ct-c", Name: "Cuong", Skills: []models.PackageType{models.PackageConsultation}, Status: models.CaretakerOnLeave},
	} {
		_, err := f.store.UpsertCaretaker(ctx, c)
		require.NoError(t, err)
	}
}

// inProgress drives a new request up to in_progress with ct-a as main caretaker.
func (f *careFixture) inProgress(t *testing.T) models.CareServiceRequest {
	t.Helper()
	ctx := context.Background()

	r, err := f.store.CreateRequest(ctx, NewCareRequest{
		CustomerID:    "cus-1",
		CustomerName:  "Lan",
		PackageType:   models.PackagePlantDoctor,
		PackageName:   "Plant Doctor",
		ScheduledDate: t0.Add(72 * time.Hour),
		BasePrice:     500000,
	})
	require.NoError(t, err)

	_, err = f.store.ConfirmRequest(ctx, r.ID, "staff-1")
	require.NoError(t, err)
	_, err = f.store.AssignCaretaker(ctx, r.ID, "ct-a", "An")
	require.NoError(t, err)
	r, err = f.store.CheckIn(ctx, r.ID, "ct-a", "An")
	require.NoError(t, err)
	return r
}

// confirmed creates a request and confirms it, ready for assignment.
func (f *careFixture) confirmed(t *testing.T, customerID string) models.CareServiceRequest {
	t.Helper()
	ctx := context.Background()

	r, err := f.store.CreateRequest(ctx, NewCareRequest{
		CustomerID:    customerID,
		PackageType:   models.PackagePlantDoctor,
		ScheduledDate: t0.Add(72 * time.Hour),
		BasePrice:     500000,
	})
	require.NoError(t, err)
	r, err = f.store.ConfirmRequest(ctx, r.ID, "staff-1")
	require.NoError(t, err)
	return r
}

func (f *careFixture) caretakerStatus(t *testing.T, id string) models.CaretakerStatus {
	t.Helper()
	c, err := f.store.GetCaretaker(id)
	require.NoError(t, err)
	return c.Status
}

func TestCareWorkflowAdvancesOneStepAtATime(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()

	r, err := f.store.CreateRequest(ctx, NewCareRequest{CustomerID: "cus-1", BasePrice: 300000, PackageType: models.PackagePlantSpa})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), r.Status)
	assert.Equal(t, int64(300000), r.TotalPrice)
	assert.Empty(t, r.ProgressLogs)
	assert.Equal(t, t0, r.CreatedAt)

	_, err = f.store.AssignCaretaker(ctx, r.ID, "ct-a", "An")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	r, err = f.store.ConfirmRequest(ctx, r.ID, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), r.Status)
	assert.Equal(t, "staff-1", r.ConfirmedBy)

	_, err = f.store.CheckIn(ctx, r.ID, "ct-a", "An")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	r, err = f.store.AssignCaretaker(ctx, r.ID, "ct-a", "An")
	require.NoError(t, err)
	assert.Equal(t, "ct-a", r.MainCaretakerID)
	assert.Equal(t, "ct-a", r.CurrentCaretakerID)
	assert.Equal(t, models.CaretakerBusy, f.caretakerStatus(t, "ct-a"))

	_, err = f.store.CompleteService(ctx, r.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	r, err = f.store.CheckIn(ctx, r.ID, "ct-a", "An")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), r.Status)
	require.Len(t, r.ProgressLogs, 1)
	assert.Equal(t, "Check-in", r.ProgressLogs[0].Action)

	r, err = f.store.CompleteService(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), r.Status)
	assert.NotNil(t, r.CheckOutTime)

	_, err = f.store.CancelRequest(ctx, r.ID, "")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestMissingIDsReturnNotFound(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()

	_, err := f.store.ConfirmRequest(ctx, "nope", "staff-1")
	assert.True(t, httperr.IsNotFound(err))
	_, err = f.store.CancelRequest(ctx, "nope", "")
	assert.True(t, httperr.IsNotFound(err))
	_, err = f.store.GetRequestByID("nope")
	assert.True(t, httperr.IsNotFound(err))

	r := f.inProgress(t)
	_, err = f.store.ApproveAddOn(ctx, r.ID, "addon-missing")
	assert.True(t, httperr.IsNotFound(err))
	_, err = f.store.HandoverToCaretaker(ctx, r.ID, "ct-a", "ct-missing", "")
	assert.True(t, httperr.IsNotFound(err))
	_, err = f.store.UpdateCaretakerStatus(ctx, "ct-missing", models.CaretakerAvailable)
	assert.True(t, httperr.IsNotFound(err))
}

func TestAddOnTotals(t *testing.T) {
	ctx := context.Background()

	t.Run("approve both", func(t *testing.T) {
		f := newCareFixture(t)
		f.seedCaretakers(t)
		r := f.inProgress(t)

		r, err := f.store.SuggestAddOn(ctx, r.ID, NewAddOn{Name: "Repot", Price: 100000, SuggestedBy: "ct-a"})
		require.NoError(t, err)
		r, err = f.store.SuggestAddOn(ctx, r.ID, NewAddOn{Name: "Pest treatment", Price: 200000, SuggestedBy: "ct-a"})
		require.NoError(t, err)
		require.Len(t, r.AddOnServices, 2)
		assert.Equal(t, int64(500000), r.TotalPrice)

		first, second := r.AddOnServices[0].ID, r.AddOnServices[1].ID
		_, err = f.store.ApproveAddOn(ctx, r.ID, first)
		require.NoError(t, err)
		r, err = f.store.ApproveAddOn(ctx, r.ID, second)
		require.NoError(t, err)
		assert.Equal(t, int64(300000), r.AddOnTotal)
		assert.Equal(t, int64(800000), r.TotalPrice)

		again, err := f.store.ApproveAddOn(ctx, r.ID, second)
		require.NoError(t, err)
		assert.Equal(t, r.AddOnTotal, again.AddOnTotal)
		assert.Equal(t, r.TotalPrice, again.TotalPrice)
	})

	t.Run("reject one", func(t *testing.T) {
		f := newCareFixture(t)
		f.seedCaretakers(t)
		r := f.inProgress(t)

		r, err := f.store.SuggestAddOn(ctx, r.ID, NewAddOn{Name: "Repot", Price: 100000})
		require.NoError(t, err)
		r, err = f.store.SuggestAddOn(ctx, r.ID, NewAddOn{Name: "Pest treatment", Price: 200000})
		require.NoError(t, err)

		_, err = f.store.ApproveAddOn(ctx, r.ID, r.AddOnServices[0].ID)
		require.NoError(t, err)
		r, err = f.store.RejectAddOn(ctx, r.ID, r.AddOnServices[1].ID)
		require.NoError(t, err)

		assert.Equal(t, models.AddOnRejected, r.AddOnServices[1].Status)
		assert.Equal(t, int64(100000), r.AddOnTotal)
		assert.Equal(t, int64(600000), r.TotalPrice)
	})
}

func TestHandoverThenCompleteBuffersCurrentCaretaker(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()
	r := f.inProgress(t)

	_, err := f.store.HandoverToCaretaker(ctx, r.ID, "ct-b", "ct-b", "Binh")
	assert.True(t, httperr.IsForbidden(err))

	r, err = f.store.HandoverToCaretaker(ctx, r.ID, "ct-a", "ct-b", "Binh")
	require.NoError(t, err)
	assert.Equal(t, "ct-a", r.MainCaretakerID)
	assert.Equal(t, "ct-b", r.CurrentCaretakerID)
	assert.Equal(t, models.CaretakerAvailable, f.caretakerStatus(t, "ct-a"))
	assert.Equal(t, models.CaretakerBusy, f.caretakerStatus(t, "ct-b"))

	_, err = f.store.CompleteService(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CaretakerBuffer, f.caretakerStatus(t, "ct-b"))
	assert.Equal(t, models.CaretakerAvailable, f.caretakerStatus(t, "ct-a"))
	assert.Equal(t, 1, f.jobs.Pending())

	f.clock.Advance(29 * time.Minute)
	assert.Equal(t, models.CaretakerBuffer, f.caretakerStatus(t, "ct-b"))

	f.clock.Advance(time.Minute)
	assert.Equal(t, models.CaretakerAvailable, f.caretakerStatus(t, "ct-b"))

	c, err := f.store.GetCaretaker("ct-b")
	require.NoError(t, err)
	assert.Empty(t, c.CurrentTaskID)
	require.NotNil(t, c.LastTaskCompletedAt)
	assert.Equal(t, t0, *c.LastTaskCompletedAt)
}

func TestHandoverThenReclaimRestoresCurrent(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()
	r := f.inProgress(t)
	logsBefore := len(r.ProgressLogs)

	_, err := f.store.HandoverToCaretaker(ctx, r.ID, "ct-a", "ct-b", "Binh")
	require.NoError(t, err)

	_, err = f.store.ReclaimTask(ctx, r.ID, "ct-b")
	assert.True(t, httperr.IsForbidden(err))

	r, err = f.store.ReclaimTask(ctx, r.ID, "ct-a")
	require.NoError(t, err)
	assert.Equal(t, "ct-a", r.CurrentCaretakerID)
	require.Len(t, r.ProgressLogs, logsBefore+2)
	assert.Equal(t, "Handover", r.ProgressLogs[logsBefore].Action)
	assert.Equal(t, "Reclaim", r.ProgressLogs[logsBefore+1].Action)
	assert.Equal(t, models.CaretakerBusy, f.caretakerStatus(t, "ct-a"))
	assert.Equal(t, models.CaretakerAvailable, f.caretakerStatus(t, "ct-b"))
}

func TestCheckInRejectsOtherCaretaker(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()

	r, err := f.store.CreateRequest(ctx, NewCareRequest{CustomerID: "cus-1", BasePrice: 1})
	require.NoError(t, err)
	_, err = f.store.ConfirmRequest(ctx, r.ID, "staff-1")
	require.NoError(t, err)
	_, err = f.store.AssignCaretaker(ctx, r.ID, "ct-a", "")
	require.NoError(t, err)

	_, err = f.store.CheckIn(ctx, r.ID, "ct-b", "Binh")
	assert.True(t, httperr.IsForbidden(err))

	got, err := f.store.GetRequestByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAssigned), got.Status)
	assert.Equal(t, "An", got.MainCaretakerName)
}

func TestCancelReleasesCaretakerAndKeepsReasonOffRequest(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := events.WithActor(context.Background(), "staff-1")

	r, err := f.store.CreateRequest(ctx, NewCareRequest{CustomerID: "cus-1", BasePrice: 1})
	require.NoError(t, err)
	_, err = f.store.ConfirmRequest(ctx, r.ID, "staff-1")
	require.NoError(t, err)
	_, err = f.store.AssignCaretaker(ctx, r.ID, "ct-a", "An")
	require.NoError(t, err)

	r, err = f.store.CancelRequest(ctx, r.ID, "customer travelling")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), r.Status)
	assert.NotContains(t, r.InternalNotes, "travelling")
	assert.Equal(t, models.CaretakerAvailable, f.caretakerStatus(t, "ct-a"))

	last := f.seen[len(f.seen)-1]
	assert.Equal(t, "cancelled", last.Action)
	assert.Equal(t, "staff-1", last.ActorID)
	assert.Equal(t, "customer travelling", last.Metadata["reason"])
}

func TestQueries(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()

	active := f.inProgress(t)
	pending, err := f.store.CreateRequest(ctx, NewCareRequest{CustomerID: "cus-2", BasePrice: 1})
	require.NoError(t, err)
	_, err = f.store.HandoverToCaretaker(ctx, active.ID, "ct-a", "ct-b", "Binh")
	require.NoError(t, err)

	ids := func(rs []models.CareServiceRequest) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{active.ID, pending.ID}, ids(f.store.ListRequests()))
	assert.Equal(t, []string{pending.ID}, ids(f.store.GetPendingRequests()))
	assert.Equal(t, []string{active.ID}, ids(f.store.GetActiveRequests()))
	assert.Equal(t, []string{active.ID}, ids(f.store.GetRequestsByCustomer("cus-1")))
	assert.Equal(t, []string{active.ID}, ids(f.store.GetRequestsByCaretaker("ct-a")))
	assert.Equal(t, []string{active.ID}, ids(f.store.GetRequestsByCaretaker("ct-b")))
	assert.Empty(t, f.store.GetRequestsByCaretaker("ct-c"))
	assert.Equal(t, []string{pending.ID}, ids(f.store.GetRequestsByStatus(domain.StatusPending)))
	assert.Empty(t, f.store.GetRequestsByStatus(domain.StatusApproved))
}

func TestAvailableCaretakers(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)

	names := func(cs []models.CaretakerInfo) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.UserID)
		}
		return out
	}

	assert.Equal(t, []string{"ct-a", "ct-b"}, names(f.store.GetAvailableCaretakers("")))
	assert.Equal(t, []string{"ct-a"}, names(f.store.GetAvailableCaretakers(models.PackagePlantSpa)))
	assert.Empty(t, f.store.GetAvailableCaretakers(models.PackageConsultation))
}

func TestUpdateCaretakerStatus(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()

	_, err := f.store.UpdateCaretakerStatus(ctx, "ct-c", "sleeping")
	assert.ErrorIs(t, err, ErrInvalidCaretakerStatus)

	c, err := f.store.UpdateCaretakerStatus(ctx, "ct-c", models.CaretakerAvailable)
	require.NoError(t, err)
	assert.Equal(t, models.CaretakerAvailable, c.Status)

	f.inProgress(t)
	_, err = f.store.UpdateCaretakerStatus(ctx, "ct-a", models.CaretakerOnLeave)
	assert.ErrorIs(t, err, ErrCaretakerBusy)
}

func TestUpsertCaretakerKeepsWorkflowState(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()
	r := f.inProgress(t)

	c, err := f.store.UpsertCaretaker(ctx, models.CaretakerInfo{
		UserID: "ct-a",
		Name:   "An Nguyen",
		Skills: []models.PackageType{models.PackagePlantSpa},
	})
	require.NoError(t, err)
	assert.Equal(t, "An Nguyen", c.Name)
	assert.Equal(t, models.CaretakerBusy, c.Status)
	assert.Equal(t, r.ID, c.CurrentTaskID)
	assert.Equal(t, []models.PackageType{models.PackagePlantSpa}, c.Skills)
}

func TestManualReleaseCancelsPendingJob(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()
	r := f.inProgress(t)

	_, err := f.store.CompleteService(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, 1, f.jobs.Pending())

	_, err = f.store.UpdateCaretakerStatus(ctx, "ct-a", models.CaretakerOnLeave)
	require.NoError(t, err)
	assert.Zero(t, f.jobs.Pending())

	f.clock.Advance(time.Hour)
	assert.Equal(t, models.CaretakerOnLeave, f.caretakerStatus(t, "ct-a"))
}

func TestSnapshotSurvivesRestartAndSweepRecoversBuffer(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()
	r := f.inProgress(t)

	_, err := f.store.CompleteService(ctx, r.ID)
	require.NoError(t, err)

	// restart: the pending timer belonged to the old scheduler
	restarted := f.open(t)
	got, err := restarted.GetRequestByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)

	c, err := restarted.GetCaretaker("ct-a")
	require.NoError(t, err)
	assert.Equal(t, models.CaretakerBuffer, c.Status)

	n, err := restarted.ReleaseExpiredBuffers(ctx, t0.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = restarted.ReleaseExpiredBuffers(ctx, t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	c, err = restarted.GetCaretaker("ct-a")
	require.NoError(t, err)
	assert.Equal(t, models.CaretakerAvailable, c.Status)
}

func TestStaleReleaseJobIsIgnored(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()
	first := f.inProgress(t)

	_, err := f.store.CompleteService(ctx, first.ID)
	require.NoError(t, err)

	payload := []byte(`{"caretaker_id":"ct-a","completed_at":"2020-01-01T00:00:00Z"}`)
	require.NoError(t, f.store.handleRelease(ctx, payload))
	assert.Equal(t, models.CaretakerBuffer, f.caretakerStatus(t, "ct-a"))

	assert.Error(t, f.store.handleRelease(ctx, []byte("not json")))
}

func TestEventsPublishedAfterEachMutation(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	f.seen = nil
	r := f.inProgress(t)

	var actions []string
	for _, e := range f.seen {
		assert.Equal(t, events.StoreCareService, e.Store)
		assert.Equal(t, r.ID, e.EntityID)
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []string{"created", "confirmed", "assigned", "checked_in"}, actions)
}

func TestHandoverRequiresAvailableTarget(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()
	r1 := f.inProgress(t)

	r2 := f.confirmed(t, "cus-2")
	_, err := f.store.AssignCaretaker(ctx, r2.ID, "ct-b", "")
	require.NoError(t, err)

	_, err = f.store.HandoverToCaretaker(ctx, r1.ID, "ct-a", "ct-b", "Binh")
	assert.ErrorIs(t, err, ErrCaretakerUnavailable)

	_, err = f.store.HandoverToCaretaker(ctx, r1.ID, "ct-a", "ct-c", "Cuong")
	assert.ErrorIs(t, err, ErrCaretakerUnavailable)
	assert.Equal(t, models.CaretakerOnLeave, f.caretakerStatus(t, "ct-c"))

	got, err := f.store.GetRequestByID(r1.ID)
	require.NoError(t, err)
	assert.Equal(t, "ct-a", got.CurrentCaretakerID)

	b, err := f.store.GetCaretaker("ct-b")
	require.NoError(t, err)
	assert.Equal(t, models.CaretakerBusy, b.Status)
	assert.Equal(t, r2.ID, b.CurrentTaskID)

	// finishing r1 must not free ct-b while r2 is still theirs
	_, err = f.store.CompleteService(ctx, r1.ID)
	require.NoError(t, err)
	f.clock.Advance(30 * time.Minute)
	assert.Equal(t, models.CaretakerBusy, f.caretakerStatus(t, "ct-b"))
	for _, c := range f.store.GetAvailableCaretakers("") {
		assert.NotEqual(t, "ct-b", c.UserID)
	}
}

func TestReclaimRequiresAvailableMainCaretaker(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()
	r1 := f.inProgress(t)

	_, err := f.store.HandoverToCaretaker(ctx, r1.ID, "ct-a", "ct-b", "Binh")
	require.NoError(t, err)

	r2 := f.confirmed(t, "cus-2")
	_, err = f.store.AssignCaretaker(ctx, r2.ID, "ct-a", "")
	require.NoError(t, err)

	_, err = f.store.ReclaimTask(ctx, r1.ID, "ct-a")
	assert.ErrorIs(t, err, ErrCaretakerUnavailable)

	got, err := f.store.GetRequestByID(r1.ID)
	require.NoError(t, err)
	assert.Equal(t, "ct-b", got.CurrentCaretakerID)
	assert.Equal(t, models.CaretakerBusy, f.caretakerStatus(t, "ct-b"))

	a, err := f.store.GetCaretaker("ct-a")
	require.NoError(t, err)
	assert.Equal(t, r2.ID, a.CurrentTaskID)
}

func TestBufferEndsOnlyThroughRelease(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()
	r := f.inProgress(t)

	_, err := f.store.CompleteService(ctx, r.ID)
	require.NoError(t, err)

	_, err = f.store.UpdateCaretakerStatus(ctx, "ct-a", models.CaretakerAvailable)
	assert.ErrorIs(t, err, ErrCaretakerInBuffer)
	_, err = f.store.UpdateCaretakerStatus(ctx, "ct-a", models.CaretakerBusy)
	assert.ErrorIs(t, err, ErrCaretakerInBuffer)
	assert.Equal(t, models.CaretakerBuffer, f.caretakerStatus(t, "ct-a"))
	assert.Equal(t, 1, f.jobs.Pending())

	f.clock.Advance(30 * time.Minute)
	assert.Equal(t, models.CaretakerAvailable, f.caretakerStatus(t, "ct-a"))
}

func TestAssignChecksAvailabilityUnderLock(t *testing.T) {
	f := newCareFixture(t)
	f.seedCaretakers(t)
	ctx := context.Background()

	onLeave := f.confirmed(t, "cus-1")
	_, err := f.store.AssignCaretaker(ctx, onLeave.ID, "ct-c", "")
	assert.ErrorIs(t, err, ErrCaretakerUnavailable)

	got, err := f.store.GetRequestByID(onLeave.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)

	first := f.confirmed(t, "cus-2")
	second := f.confirmed(t, "cus-3")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, id := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.store.AssignCaretaker(ctx, id, "ct-b", "")
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	var ok, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, "caretaker_unavailable"):
			unavailable++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, unavailable)
}
