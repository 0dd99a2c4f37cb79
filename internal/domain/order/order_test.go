package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/models"
)

func TestOrderMovesThroughDelivery(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	o := &models.Order{ID: "order-1", Status: string(InitialStatus())}

	assert.ErrorIs(t, Ship(o, "ship-1", "Tuan", "TRK", now), ErrInvalidState)
	require.NoError(t, Confirm(o, now))
	assert.ErrorIs(t, Confirm(o, now), ErrInvalidState)
	require.NoError(t, StartProcessing(o, now))
	require.NoError(t, Ship(o, "ship-1", "Tuan", "TRK-1", now))
	assert.Equal(t, "TRK-1", o.TrackingNumber)

	assert.ErrorIs(t, Cancel(o, now), ErrInvalidState)
	assert.True(t, httperr.IsForbidden(Deliver(o, "ship-2", "", now)))

	later := now.Add(2 * time.Hour)
	require.NoError(t, Deliver(o, "ship-1", "Left with the guard", later))
	assert.Equal(t, string(StatusDelivered), o.Status)
	require.NotNil(t, o.DeliveryDate)
	assert.Equal(t, later, *o.DeliveryDate)
}

func TestCancelBeforeShipping(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusProcessing} {
		o := &models.Order{Status: string(s)}
		assert.NoError(t, Cancel(o, now), s)
		assert.Equal(t, string(StatusCancelled), o.Status)
	}
	for _, s := range []Status{StatusShipped, StatusDelivered, StatusCancelled} {
		assert.ErrorIs(t, Cancel(&models.Order{Status: string(s)}, now), ErrInvalidState, s)
	}
}

func TestTotal(t *testing.T) {
	items := []models.OrderItem{{Subtotal: 500000}, {Subtotal: 1800000}}
	assert.Equal(t, int64(2300000), Total(items))
	assert.Zero(t, Total(nil))
}
