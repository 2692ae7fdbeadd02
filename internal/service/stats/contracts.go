package stats

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumRevenue(ctx context.Context, status domain.BookingStatus) (float64, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
	CountDistinctGuests(ctx context.Context) (int64, error)
	GetOverlappingItems(ctx context.Context, filter domain.LineItemFilter) ([]*domain.BookingItem, error)
}

// CatalogRepository интерфейс репозитория каталога ресурсов
type CatalogRepository interface {
	List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.Resource, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
