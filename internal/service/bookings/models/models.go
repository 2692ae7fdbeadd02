package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования.
// Admin заполняется только админским middleware: админ может отменить
// чужое бронирование, пользователь — только своё.
type CancelBookingRequest struct {
	User               domain.UserContext
	Admin              *domain.AdminContext
	CancellationReason string
}

// UpdateStatusRequest запрос на обновление статуса бронирования.
// Операция доступна только админам, поэтому capability обязательна.
type UpdateStatusRequest struct {
	Admin  domain.AdminContext
	Status string
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	User   domain.UserContext
	Status *string
}

// Response модели

// BookingItemResponse позиция бронирования
type BookingItemResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceType string    `json:"resourceType"`
	ResourceID   uuid.UUID `json:"resourceId"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	StartDate    string    `json:"startDate"` // "2026-07-01"
	EndDate      string    `json:"endDate"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     int64     `json:"userId"`
	CheckIn    string    `json:"checkIn"`  // "2026-07-01"
	CheckOut   string    `json:"checkOut"` // "2026-07-04"
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`

	// Денормализованный профиль гостя
	GuestName  *string `json:"guestName,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`

	Items []BookingItemResponse `json:"items"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainItem конвертирует позицию бронирования в DTO
func FromDomainItem(item *domain.BookingItem) BookingItemResponse {
	return BookingItemResponse{
		ID:           item.ID,
		ResourceType: string(item.ResourceType),
		ResourceID:   item.ResourceID,
		Quantity:     item.Quantity,
		Price:        item.Price,
		StartDate:    item.StartDate.Format(domain.DateFormat),
		EndDate:      item.EndDate.Format(domain.DateFormat),
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, items []*domain.BookingItem) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		CheckIn:            b.CheckIn.Format(domain.DateFormat),
		CheckOut:           b.CheckOut.Format(domain.DateFormat),
		Status:             string(b.Status),
		TotalPrice:         b.TotalPrice,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		Items:              make([]BookingItemResponse, 0, len(items)),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, FromDomainItem(item))
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
