package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// ItemRequest одна позиция бронирования.
// Даты опциональны: позиция без дат наследует интервал бронирования
// (проживание на весь период, питание на все дни).
type ItemRequest struct {
	Type       domain.ResourceType // Тип ресурса (room / meal / activity)
	ResourceID uuid.UUID           // ID ресурса в каталоге
	Quantity   int                 // Количество единиц (номеров, порций, мест)
	StartDate  *time.Time          // Начало интервала позиции (опционально)
	EndDate    *time.Time          // Конец интервала позиции (опционально)
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID   int64         // ID пользователя
	CheckIn  time.Time     // Дата заезда
	CheckOut time.Time     // Дата выезда
	Items    []ItemRequest // Позиции бронирования
}

// ItemResponse позиция созданного бронирования
type ItemResponse struct {
	ID           uuid.UUID
	ResourceType domain.ResourceType
	ResourceID   uuid.UUID
	Quantity     int
	Price        float64 // Стоимость позиции, зафиксированная на момент брони
	StartDate    time.Time
	EndDate      time.Time
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID
	UserID     int64
	CheckIn    time.Time
	CheckOut   time.Time
	Status     domain.BookingStatus
	TotalPrice float64

	// Денормализованный профиль гостя (nil при недоступности GuestService)
	GuestName  *string
	GuestEmail *string

	Items []ItemResponse

	CreatedAt time.Time
	UpdatedAt time.Time
}
