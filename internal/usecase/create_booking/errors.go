package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrResourceNotFound возвращается, когда ресурс позиции не найден в каталоге
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrInsufficientCapacity возвращается, когда ёмкости ресурса не хватает
	// хотя бы на один день интервала позиции
	ErrInsufficientCapacity = errors.New("create_booking: insufficient capacity")

	// ErrAvailabilityConflict возвращается, когда сериализуемая транзакция
	// не прошла из-за конкурентного бронирования после всех ретраев.
	// Клиенту имеет смысл повторить запрос.
	ErrAvailabilityConflict = errors.New("create_booking: availability changed, please retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// CapacityError детализирует отказ по ёмкости: какой ресурс, в какой день
// и сколько единиц ещё доступно. Разворачивается в ErrInsufficientCapacity.
type CapacityError struct {
	ResourceID   uuid.UUID
	ResourceName string
	Day          time.Time
	Remaining    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: only %d units of %q available on %s",
		ErrInsufficientCapacity, e.Remaining, e.ResourceName, e.Day.Format(domain.DateFormat))
}

func (e *CapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}
