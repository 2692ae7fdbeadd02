package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ValidStatus returns true for a known booking status
func ValidStatus(s BookingStatus) bool {
	return s == StatusConfirmed || s == StatusCancelled || s == StatusCompleted
}

// Booking represents a guest reservation covering one stay interval.
// Line items carry their own date coverage and quantities.
type Booking struct {
	ID         uuid.UUID
	UserID     int64
	CheckIn    time.Time
	CheckOut   time.Time
	Status     BookingStatus
	TotalPrice float64

	// Denormalized guest profile, best effort (see integrations/guestservice)
	GuestName  *string
	GuestEmail *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still consumes inventory
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// BookingItem is one resource entry within a booking: Quantity units of
// ResourceID are held for every day covered by [StartDate, EndDate] under the
// type-specific rule (rooms exclude the checkout day).
//
// Dates are always resolved by the time an item leaves the storage layer:
// legacy items without explicit dates inherit the parent booking's
// check-in/check-out there, so nothing downstream branches on nil dates.
type BookingItem struct {
	ID           uuid.UUID
	BookingID    uuid.UUID
	ResourceType ResourceType
	ResourceID   uuid.UUID
	Quantity     int
	Price        float64
	StartDate    time.Time
	EndDate      time.Time
}

// LineItemFilter фильтр выборки позиций бронирований для движка доступности
type LineItemFilter struct {
	ResourceType ResourceType
	ResourceID   *uuid.UUID      // nil = все ресурсы типа
	From         time.Time       // грубое окно пересечения (включительно)
	To           time.Time
	Statuses     []BookingStatus // какие статусы занимают ёмкость
}

// CapacityStatuses returns the booking statuses that consume inventory.
// Historically only confirmed bookings block capacity; the flag makes the
// completed-bookings-with-future-dates policy explicit instead of implicit.
func CapacityStatuses(completedBlocksCapacity bool) []BookingStatus {
	if completedBlocksCapacity {
		return []BookingStatus{StatusConfirmed, StatusCompleted}
	}
	return []BookingStatus{StatusConfirmed}
}
