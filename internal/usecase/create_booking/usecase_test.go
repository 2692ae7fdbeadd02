package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	catalogRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/catalog"
	"github.com/m04kA/HMS-ReservationService/internal/integrations/guestservice"
	"github.com/m04kA/HMS-ReservationService/pkg/ptr"
	"github.com/m04kA/HMS-ReservationService/pkg/txmanager"
)

type fakeBookingRepo struct {
	existing  []*domain.BookingItem
	createErr error

	createdBooking *domain.Booking
	createdItems   []*domain.BookingItem
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking, items []*domain.BookingItem) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	for _, item := range items {
		item.ID = uuid.New()
		item.BookingID = b.ID
	}
	f.createdBooking = b
	f.createdItems = items
	return b, nil
}

func (f *fakeBookingRepo) GetOverlappingItems(_ context.Context, filter domain.LineItemFilter) ([]*domain.BookingItem, error) {
	var out []*domain.BookingItem
	for _, item := range f.existing {
		if filter.ResourceID != nil && item.ResourceID != *filter.ResourceID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

type fakeCatalogRepo struct {
	resources map[uuid.UUID]*domain.Resource
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Resource, error) {
	res, ok := f.resources[id]
	if !ok {
		return nil, catalogRepo.ErrResourceNotFound
	}
	return res, nil
}

type fakeGuestClient struct {
	guest *guestservice.Guest
	err   error
}

func (f *fakeGuestClient) GetGuestWithGracefulDegradation(_ context.Context, _ int64) (*guestservice.Guest, error) {
	return f.guest, f.err
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(d int) time.Time {
	return time.Date(2026, time.July, d, 0, 0, 0, 0, time.UTC)
}

func newUseCase(bookings *fakeBookingRepo, catalog *fakeCatalogRepo, guests *fakeGuestClient) *UseCase {
	return NewUseCase(bookings, catalog, guests, &fakeTxManager{}, domain.CapacityStatuses(false), nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	roomID := uuid.New()
	mealID := uuid.New()

	catalog := &fakeCatalogRepo{resources: map[uuid.UUID]*domain.Resource{
		roomID: {ID: roomID, Type: domain.ResourceRoom, Name: "Deluxe", TotalInventory: 3, Capacity: 2, Price: 100},
		mealID: {ID: mealID, Type: domain.ResourceMeal, Name: "Breakfast", TotalInventory: 10, Capacity: 1, Price: 20},
	}}
	bookings := &fakeBookingRepo{}
	guests := &fakeGuestClient{guest: &guestservice.Guest{ID: 42, Name: "Ivan Petrov", Email: "ivan@example.com"}}

	uc := newUseCase(bookings, catalog, guests)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   42,
		CheckIn:  day(1),
		CheckOut: day(4),
		Items: []ItemRequest{
			{Type: domain.ResourceRoom, ResourceID: roomID, Quantity: 1},
			{Type: domain.ResourceMeal, ResourceID: mealID, Quantity: 2, StartDate: ptr.Ptr(day(2)), EndDate: ptr.Ptr(day(3))},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.NotEqual(t, uuid.Nil, resp.ID)

	// комната: 3 ночи x 100; завтрак: 2 порции x 20
	assert.Equal(t, 340.0, resp.TotalPrice)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 300.0, resp.Items[0].Price)
	assert.Equal(t, 40.0, resp.Items[1].Price)

	// позиция без дат наследует интервал бронирования
	assert.Equal(t, day(1), resp.Items[0].StartDate)
	assert.Equal(t, day(4), resp.Items[0].EndDate)

	require.NotNil(t, resp.GuestName)
	assert.Equal(t, "Ivan Petrov", *resp.GuestName)

	require.NotNil(t, bookings.createdBooking)
	assert.Equal(t, int64(42), bookings.createdBooking.UserID)
}

func TestExecute_InsufficientCapacity(t *testing.T) {
	roomID := uuid.New()

	catalog := &fakeCatalogRepo{resources: map[uuid.UUID]*domain.Resource{
		roomID: {ID: roomID, Type: domain.ResourceRoom, Name: "Deluxe", TotalInventory: 2, Capacity: 2, Price: 100},
	}}
	bookings := &fakeBookingRepo{existing: []*domain.BookingItem{
		{ResourceType: domain.ResourceRoom, ResourceID: roomID, Quantity: 2, StartDate: day(2), EndDate: day(5)},
	}}

	uc := newUseCase(bookings, catalog, &fakeGuestClient{err: guestservice.ErrGuestNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   7,
		CheckIn:  day(1),
		CheckOut: day(4),
		Items:    []ItemRequest{{Type: domain.ResourceRoom, ResourceID: roomID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrInsufficientCapacity)

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, day(2), capErr.Day, "first day where both units are taken")
	assert.Equal(t, 0, capErr.Remaining)
	assert.Equal(t, "Deluxe", capErr.ResourceName)

	assert.Nil(t, bookings.createdBooking, "nothing must be inserted on a capacity failure")
}

func TestExecute_RoomCheckoutDayDoesNotBlock(t *testing.T) {
	roomID := uuid.New()

	catalog := &fakeCatalogRepo{resources: map[uuid.UUID]*domain.Resource{
		roomID: {ID: roomID, Type: domain.ResourceRoom, Name: "Single", TotalInventory: 1, Capacity: 1, Price: 80},
	}}
	// существующая бронь выезжает 4-го — заезд 4-го в тот же номер проходит
	bookings := &fakeBookingRepo{existing: []*domain.BookingItem{
		{ResourceType: domain.ResourceRoom, ResourceID: roomID, Quantity: 1, StartDate: day(1), EndDate: day(4)},
	}}

	uc := newUseCase(bookings, catalog, &fakeGuestClient{err: guestservice.ErrGuestNotFound})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   7,
		CheckIn:  day(4),
		CheckOut: day(6),
		Items:    []ItemRequest{{Type: domain.ResourceRoom, ResourceID: roomID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 160.0, resp.TotalPrice)
}

func TestExecute_SameResourceTwiceInOneBooking(t *testing.T) {
	mealID := uuid.New()

	catalog := &fakeCatalogRepo{resources: map[uuid.UUID]*domain.Resource{
		mealID: {ID: mealID, Type: domain.ResourceMeal, Name: "Dinner", TotalInventory: 3, Capacity: 1, Price: 30},
	}}
	bookings := &fakeBookingRepo{}

	uc := newUseCase(bookings, catalog, &fakeGuestClient{err: guestservice.ErrGuestNotFound})

	// две позиции на один ресурс в одном запросе: 2 + 2 > 3 на 2 июля
	_, err := uc.Execute(context.Background(), &Request{
		UserID:   7,
		CheckIn:  day(1),
		CheckOut: day(3),
		Items: []ItemRequest{
			{Type: domain.ResourceMeal, ResourceID: mealID, Quantity: 2, StartDate: ptr.Ptr(day(2)), EndDate: ptr.Ptr(day(2))},
			{Type: domain.ResourceMeal, ResourceID: mealID, Quantity: 2, StartDate: ptr.Ptr(day(2)), EndDate: ptr.Ptr(day(2))},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestExecute_GuestServiceDegraded(t *testing.T) {
	roomID := uuid.New()

	catalog := &fakeCatalogRepo{resources: map[uuid.UUID]*domain.Resource{
		roomID: {ID: roomID, Type: domain.ResourceRoom, Name: "Twin", TotalInventory: 2, Capacity: 2, Price: 90},
	}}
	bookings := &fakeBookingRepo{}
	guests := &fakeGuestClient{err: fmt.Errorf("%w: user_id=7", guestservice.ErrServiceDegraded)}

	uc := newUseCase(bookings, catalog, guests)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   7,
		CheckIn:  day(1),
		CheckOut: day(2),
		Items:    []ItemRequest{{Type: domain.ResourceRoom, ResourceID: roomID, Quantity: 1}},
	})
	require.NoError(t, err, "guest service outage must not block the booking")

	assert.Nil(t, resp.GuestName)
	assert.Nil(t, resp.GuestEmail)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{resources: map[uuid.UUID]*domain.Resource{}},
		&fakeGuestClient{err: guestservice.ErrGuestNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   7,
		CheckIn:  day(1),
		CheckOut: day(2),
		Items:    []ItemRequest{{Type: domain.ResourceRoom, ResourceID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_ResourceTypeMismatch(t *testing.T) {
	id := uuid.New()
	catalog := &fakeCatalogRepo{resources: map[uuid.UUID]*domain.Resource{
		id: {ID: id, Type: domain.ResourceMeal, Name: "Lunch", TotalInventory: 5, Capacity: 1, Price: 25},
	}}

	uc := newUseCase(&fakeBookingRepo{}, catalog, &fakeGuestClient{err: guestservice.ErrGuestNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   7,
		CheckIn:  day(1),
		CheckOut: day(2),
		Items:    []ItemRequest{{Type: domain.ResourceRoom, ResourceID: id, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SerializationConflict(t *testing.T) {
	roomID := uuid.New()
	catalog := &fakeCatalogRepo{resources: map[uuid.UUID]*domain.Resource{
		roomID: {ID: roomID, Type: domain.ResourceRoom, Name: "Twin", TotalInventory: 2, Capacity: 2, Price: 90},
	}}

	uc := NewUseCase(&fakeBookingRepo{}, catalog, &fakeGuestClient{err: guestservice.ErrGuestNotFound},
		&fakeTxManager{err: fmt.Errorf("%w: after 3 attempts", txmanager.ErrSerializationConflict)},
		domain.CapacityStatuses(false), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   7,
		CheckIn:  day(1),
		CheckOut: day(2),
		Items:    []ItemRequest{{Type: domain.ResourceRoom, ResourceID: roomID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrAvailabilityConflict)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{}, &fakeGuestClient{})

	cases := []struct {
		name string
		req  *Request
	}{
		{"no user", &Request{CheckIn: day(1), CheckOut: day(2),
			Items: []ItemRequest{{Type: domain.ResourceRoom, ResourceID: uuid.New(), Quantity: 1}}}},
		{"check_out before check_in", &Request{UserID: 7, CheckIn: day(5), CheckOut: day(2),
			Items: []ItemRequest{{Type: domain.ResourceRoom, ResourceID: uuid.New(), Quantity: 1}}}},
		{"same-day stay", &Request{UserID: 7, CheckIn: day(2), CheckOut: day(2),
			Items: []ItemRequest{{Type: domain.ResourceRoom, ResourceID: uuid.New(), Quantity: 1}}}},
		{"no items", &Request{UserID: 7, CheckIn: day(1), CheckOut: day(2)}},
		{"zero quantity", &Request{UserID: 7, CheckIn: day(1), CheckOut: day(2),
			Items: []ItemRequest{{Type: domain.ResourceRoom, ResourceID: uuid.New(), Quantity: 0}}}},
		{"quantity over limit", &Request{UserID: 7, CheckIn: day(1), CheckOut: day(2),
			Items: []ItemRequest{{Type: domain.ResourceRoom, ResourceID: uuid.New(), Quantity: domain.MaxQuantityPerItem + 1}}}},
		{"unknown type", &Request{UserID: 7, CheckIn: day(1), CheckOut: day(2),
			Items: []ItemRequest{{Type: "cabin", ResourceID: uuid.New(), Quantity: 1}}}},
		{"item dates reversed", &Request{UserID: 7, CheckIn: day(1), CheckOut: day(5),
			Items: []ItemRequest{{Type: domain.ResourceMeal, ResourceID: uuid.New(), Quantity: 1,
				StartDate: ptr.Ptr(day(4)), EndDate: ptr.Ptr(day(2))}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CreateFailurePropagates(t *testing.T) {
	roomID := uuid.New()
	catalog := &fakeCatalogRepo{resources: map[uuid.UUID]*domain.Resource{
		roomID: {ID: roomID, Type: domain.ResourceRoom, Name: "Twin", TotalInventory: 2, Capacity: 2, Price: 90},
	}}
	bookings := &fakeBookingRepo{createErr: errors.New("connection reset")}

	uc := newUseCase(bookings, catalog, &fakeGuestClient{err: guestservice.ErrGuestNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   7,
		CheckIn:  day(1),
		CheckOut: day(2),
		Items:    []ItemRequest{{Type: domain.ResourceRoom, ResourceID: roomID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInternal)
}
