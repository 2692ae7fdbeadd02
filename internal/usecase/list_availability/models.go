package list_availability

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// Request модель запроса доступности ресурсов на диапазон дат.
// Диапазон [From, To] включительный; перевёрнутый диапазон означает
// отсутствие ограничений по занятости (ноль дней).
type Request struct {
	Type domain.ResourceType // Тип ресурса (room / meal / activity)
	From time.Time           // Начало диапазона (без времени)
	To   time.Time           // Конец диапазона (без времени)
}

// ResourceAvailability доступность одного ресурса на запрошенный диапазон
type ResourceAvailability struct {
	Resource *domain.Resource

	// Пиковая занятость: максимум занятых единиц по дням диапазона,
	// НЕ сумма по дням
	BookedCount int

	// Гарантированный остаток на весь диапазон (bottleneck)
	RemainingCount int
}

// Response модель ответа со списком ресурсов и их доступностью
type Response struct {
	Type      domain.ResourceType
	From      time.Time
	To        time.Time
	Resources []ResourceAvailability
}
