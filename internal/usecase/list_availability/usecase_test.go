package list_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

type fakeBookingRepo struct {
	items      []*domain.BookingItem
	err        error
	lastFilter domain.LineItemFilter
}

func (f *fakeBookingRepo) GetOverlappingItems(_ context.Context, filter domain.LineItemFilter) ([]*domain.BookingItem, error) {
	f.lastFilter = filter
	return f.items, f.err
}

type fakeCatalogRepo struct {
	resources []*domain.Resource
	err       error
}

func (f *fakeCatalogRepo) List(_ context.Context, _ domain.ResourceType) ([]*domain.Resource, error) {
	return f.resources, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func room(id uuid.UUID, total int) *domain.Resource {
	return &domain.Resource{
		ID:             id,
		Type:           domain.ResourceRoom,
		Name:           "Standard Double",
		TotalInventory: total,
		Price:          120,
	}
}

func TestExecute_NoBookings(t *testing.T) {
	id := uuid.New()
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{resources: []*domain.Resource{room(id, 5)}},
		domain.CapacityStatuses(false),
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Type: domain.ResourceRoom,
		From: day(1),
		To:   day(5),
	})
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)

	assert.Equal(t, 0, resp.Resources[0].BookedCount)
	assert.Equal(t, 5, resp.Resources[0].RemainingCount)
}

func TestExecute_PeakBookedNotSum(t *testing.T) {
	id := uuid.New()

	// три пересекающихся позиции, пик занятости на 3 июня: 2+1 = 3
	repo := &fakeBookingRepo{items: []*domain.BookingItem{
		{ResourceType: domain.ResourceRoom, ResourceID: id, Quantity: 2, StartDate: day(1), EndDate: day(4)},
		{ResourceType: domain.ResourceRoom, ResourceID: id, Quantity: 1, StartDate: day(3), EndDate: day(6)},
		{ResourceType: domain.ResourceRoom, ResourceID: id, Quantity: 1, StartDate: day(5), EndDate: day(7)},
	}}

	uc := NewUseCase(
		repo,
		&fakeCatalogRepo{resources: []*domain.Resource{room(id, 5)}},
		domain.CapacityStatuses(false),
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Type: domain.ResourceRoom,
		From: day(1),
		To:   day(7),
	})
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)

	assert.Equal(t, 3, resp.Resources[0].BookedCount, "peak occupancy, not a sum of quantities")
	assert.Equal(t, 2, resp.Resources[0].RemainingCount)
	assert.Equal(t, domain.CapacityStatuses(false), repo.lastFilter.Statuses)
}

func TestExecute_ReversedRangeSkipsFetch(t *testing.T) {
	id := uuid.New()
	repo := &fakeBookingRepo{err: errors.New("must not be called")}

	uc := NewUseCase(
		repo,
		&fakeCatalogRepo{resources: []*domain.Resource{room(id, 4)}},
		domain.CapacityStatuses(false),
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Type: domain.ResourceRoom,
		From: day(10),
		To:   day(5),
	})
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)

	assert.Equal(t, 0, resp.Resources[0].BookedCount)
	assert.Equal(t, 4, resp.Resources[0].RemainingCount)
}

func TestExecute_OverbookedClampsToZero(t *testing.T) {
	id := uuid.New()
	repo := &fakeBookingRepo{items: []*domain.BookingItem{
		{ResourceType: domain.ResourceMeal, ResourceID: id, Quantity: 7, StartDate: day(2), EndDate: day(2)},
	}}

	uc := NewUseCase(
		repo,
		&fakeCatalogRepo{resources: []*domain.Resource{{
			ID:             id,
			Type:           domain.ResourceMeal,
			Name:           "Breakfast",
			TotalInventory: 5,
			Price:          15,
		}}},
		domain.CapacityStatuses(false),
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Type: domain.ResourceMeal,
		From: day(1),
		To:   day(3),
	})
	require.NoError(t, err)

	assert.Equal(t, 7, resp.Resources[0].BookedCount)
	assert.Equal(t, 0, resp.Resources[0].RemainingCount)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{}, domain.CapacityStatuses(false), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Type: "cabin", From: day(1), To: day(2)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Type: domain.ResourceRoom})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StorageErrors(t *testing.T) {
	id := uuid.New()

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{err: errors.New("connection refused")},
		domain.CapacityStatuses(false),
		nopLogger{},
	)
	_, err := uc.Execute(context.Background(), &Request{Type: domain.ResourceRoom, From: day(1), To: day(2)})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	uc = NewUseCase(
		&fakeBookingRepo{err: errors.New("connection refused")},
		&fakeCatalogRepo{resources: []*domain.Resource{room(id, 5)}},
		domain.CapacityStatuses(false),
		nopLogger{},
	)
	_, err = uc.Execute(context.Background(), &Request{Type: domain.ResourceRoom, From: day(1), To: day(2)})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
